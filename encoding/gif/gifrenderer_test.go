package gif

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/gorgonia/katachi"
	"github.com/gorgonia/katachi/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, rank int, rows ...string) katachi.Entry {
	w, err := pattern.ParseWindow(rows...)
	require.NoError(t, err)
	return katachi.Entry{Rank: rank, Pattern: pattern.Canonicalize(w), Count: 10 - rank, Sources: 1}
}

func TestEncoder(t *testing.T) {
	var _ katachi.OutputEncoder = &Encoder{}

	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, 16)
	require.NoError(t, enc.Encode(entry(t, 1, "+++++", "+++++", "++X++", "++O++", "+++++")))
	require.NoError(t, enc.Encode(entry(t, 2, "../..", "../..", "//X//", "../++", "../++")))
	require.NoError(t, enc.Flush())

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, g.Image, 2)
	assert.Equal(t, enc.W, g.Image[0].Bounds().Dx())
	assert.Equal(t, enc.H, g.Image[1].Bounds().Dy())
	assert.Equal(t, []int{delay, delay}, g.Delay)
}

func TestEncoder_Empty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, 16)
	require.NoError(t, enc.Flush())
	assert.Zero(t, buf.Len(), "nothing is written without frames")
}
