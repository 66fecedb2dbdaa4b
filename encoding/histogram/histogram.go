// Package histogram draws histograms of integer samples as images.
package histogram

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/chewxy/math32"
	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

func init() {
	var err error
	if regular, err = truetype.Parse(goregular.TTF); err != nil {
		panic(err)
	}
}

// Options describes the chart.
type Options struct {
	Bins          int
	Width, Height int
	Title         string
	XLabel        string
	YLabel        string

	// bars are shaded from Low to High by height
	Low, High string // hex colours
}

// DefaultOptions is a chart of the distribution of the number of moves per game.
func DefaultOptions() Options {
	return Options{
		Bins:   20,
		Width:  800,
		Height: 600,
		Title:  "Distribution of Total Moves per Game",
		XLabel: "Number of Moves",
		YLabel: "Number of Games",
		Low:    "#9ecae1",
		High:   "#08306b",
	}
}

// Bins is a binned sample. Bin i covers [Lo + i*Width, Lo + (i+1)*Width); the last bin includes its upper bound.
type Bins struct {
	Lo, Width float32
	Counts    []int
}

// Bin sorts values into n bins of equal width spanning the smallest to the largest value.
func Bin(values []int, n int) Bins {
	if n < 1 {
		n = 1
	}
	b := Bins{Counts: make([]int, n), Width: 1}
	if len(values) == 0 {
		return b
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	b.Lo = float32(lo)
	if hi > lo {
		b.Width = float32(hi-lo) / float32(n)
	} else {
		b.Width = 1 / float32(n) // a single value still gets a bar of width 1
		b.Lo -= 0.5
	}
	for _, v := range values {
		i := int(math32.Floor((float32(v) - b.Lo) / b.Width))
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		b.Counts[i]++
	}
	return b
}

// Max is the largest count.
func (b Bins) Max() int {
	var retVal int
	for _, c := range b.Counts {
		if c > retVal {
			retVal = c
		}
	}
	return retVal
}

// Edge is the lower bound of bin i.
func (b Bins) Edge(i int) float32 { return b.Lo + float32(i)*b.Width }

// Render draws a histogram of values and saves it to path. The format follows the file extension.
func Render(path string, values []int, opts Options) error {
	img, err := Draw(values, opts)
	if err != nil {
		return err
	}
	return errors.Wrapf(imaging.Save(img, path), "Unable to save histogram to %q", path)
}

const (
	dpi      = 72.0
	fontsize = 14.0
	margin   = 60
	tick     = 5
)

// Draw draws a histogram of values.
func Draw(values []int, opts Options) (*image.RGBA, error) {
	if opts.Bins < 1 {
		return nil, errors.Errorf("Expected at least one bin. Got %d", opts.Bins)
	}
	if opts.Width < 3*margin || opts.Height < 3*margin {
		return nil, errors.Errorf("Image of %dx%d is too small", opts.Width, opts.Height)
	}
	lo, err := colorful.Hex(opts.Low)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad colour %q", opts.Low)
	}
	hi, err := colorful.Hex(opts.High)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad colour %q", opts.High)
	}

	bins := Bin(values, opts.Bins)
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	plot := image.Rect(margin, margin, opts.Width-margin/2, opts.Height-margin)
	top := bins.Max()
	if top == 0 {
		top = 1
	}
	barW := float32(plot.Dx()) / float32(opts.Bins)
	for i, c := range bins.Counts {
		if c == 0 {
			continue
		}
		h := round(float32(plot.Dy()) * float32(c) / float32(top))
		x0 := plot.Min.X + round(barW*float32(i))
		x1 := plot.Min.X + round(barW*float32(i+1))
		bar := image.Rect(x0, plot.Max.Y-h, x1, plot.Max.Y)
		fill := lo.BlendHcl(hi, float64(c)/float64(top)).Clamped()
		draw.Draw(img, bar, image.NewUniform(fill), image.Point{}, draw.Src)
		outline(img, bar, color.Black)
	}

	// axes
	hline(img, plot.Min.X, plot.Max.X, plot.Max.Y, color.Black)
	vline(img, plot.Min.X, plot.Min.Y, plot.Max.Y, color.Black)

	face := truetype.NewFace(regular, &truetype.Options{Size: fontsize, DPI: dpi, Hinting: font.HintingFull})
	defer face.Close()
	d := &font.Drawer{Dst: img, Src: image.Black, Face: face}
	dy := int(math.Ceil(fontsize * dpi / 72))

	centred(d, opts.Title, opts.Width/2, margin/2)
	centred(d, opts.XLabel, plot.Min.X+plot.Dx()/2, opts.Height-margin/4)
	d.Dot = fixed.P(4, margin-dy)
	d.DrawString(opts.YLabel)

	// ticks: the edges of the first and last bin and the middle one, and the largest count
	for _, i := range []int{0, opts.Bins / 2, opts.Bins} {
		x := plot.Min.X + round(barW*float32(i))
		vline(img, x, plot.Max.Y, plot.Max.Y+tick, color.Black)
		centred(d, fmt.Sprintf("%.0f", bins.Edge(i)), x, plot.Max.Y+tick+dy)
	}
	hline(img, plot.Min.X-tick, plot.Min.X, plot.Min.Y, color.Black)
	label := fmt.Sprintf("%d", top)
	d.Dot = fixed.P(plot.Min.X-tick-2-d.MeasureString(label).Ceil(), plot.Min.Y+dy/2)
	d.DrawString(label)
	return img, nil
}

func round(x float32) int { return int(math32.Floor(x + 0.5)) }

func centred(d *font.Drawer, s string, x, y int) {
	w := d.MeasureString(s).Ceil()
	d.Dot = fixed.P(x-w/2, y)
	d.DrawString(s)
}

func hline(img draw.Image, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img draw.Image, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

func outline(img draw.Image, r image.Rectangle, c color.Color) {
	hline(img, r.Min.X, r.Max.X-1, r.Min.Y, c)
	hline(img, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	vline(img, r.Min.X, r.Min.Y, r.Max.Y-1, c)
	vline(img, r.Max.X-1, r.Min.Y, r.Max.Y-1, c)
}
