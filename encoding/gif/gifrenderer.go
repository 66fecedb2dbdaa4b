package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/katachi"
	"github.com/gorgonia/katachi/pattern"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `99999 times in 99999 games`
	delay           = 150 // hundredths of a second per pattern
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var (
	wood     = color.RGBA{220, 179, 92, 255}
	offBoard = color.Gray{128}
)

var globPalette = color.Palette{
	color.Gray{0},
	color.Gray{253},
	wood,
	offBoard,
}

// Encoder draws ranked patterns into an animated GIF, one frame per pattern. It implements katachi.OutputEncoder.
type Encoder struct {
	H, W int
	font.Drawer

	out *gif.GIF
	io.Writer
	face font.Face

	cell        int // size of a point of the board in pixels
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewGifEncoder creates an encoder that writes to w when flushed. cell is the size of a board point in pixels.
func NewGifEncoder(w io.Writer, cell int) *Encoder {
	return &Encoder{
		H:      -1,
		W:      -1,
		cell:   cell,
		padH:   10,
		padW:   10,
		Writer: w,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: 0},
	}
}

func (enc *Encoder) init() {
	enc.face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	enc.Drawer.Face = enc.face

	textW := font.MeasureString(enc.face, dummyLongString).Ceil()
	boardW := pattern.Size * enc.cell
	w := textW
	if boardW > w {
		w = boardW
	}
	enc.W = w + 2*enc.padW
	enc.H = boardW + 2*enc.lineHeight() + 3*enc.padH // 2 lines of text under the board
	enc.initialized = true
}

func (enc *Encoder) lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }

// Encode adds a frame showing the pattern of e.
func (enc *Encoder) Encode(e katachi.Entry) error {
	if !enc.initialized {
		enc.init()
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	x0 := (enc.W - pattern.Size*enc.cell) / 2
	y0 := enc.padH
	enc.drawWindow(im, e.Pattern.Window(), x0, y0)

	dy := enc.lineHeight()
	y := y0 + pattern.Size*enc.cell + enc.padH + dy
	enc.Dst = im
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(fmt.Sprintf("#%d", e.Rank))
	y += dy
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(fmt.Sprintf("%d times in %d games", e.Count, e.Sources))

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

func (enc *Encoder) drawWindow(im *image.Paletted, w pattern.Window, x0, y0 int) {
	c := enc.cell
	half := c / 2
	for i, row := range w {
		for j, cell := range row {
			r := image.Rect(x0+j*c, y0+i*c, x0+(j+1)*c, y0+(i+1)*c)
			if cell == pattern.OffBoard {
				draw.Draw(im, r, image.NewUniform(offBoard), image.Point{}, draw.Src)
				continue
			}
			draw.Draw(im, r, image.NewUniform(wood), image.Point{}, draw.Src)
			cx, cy := r.Min.X+half, r.Min.Y+half

			// the lines of the board. A point on the edge has no line towards the outside
			for x := r.Min.X; x < r.Max.X; x++ {
				if (x < cx && !open(w, i, j-1)) || (x > cx && !open(w, i, j+1)) {
					continue
				}
				im.Set(x, cy, color.Black)
			}
			for y := r.Min.Y; y < r.Max.Y; y++ {
				if (y < cy && !open(w, i-1, j)) || (y > cy && !open(w, i+1, j)) {
					continue
				}
				im.Set(cx, y, color.Black)
			}

			switch cell {
			case pattern.Black:
				disc(im, cx, cy, half-1, color.Black, color.Black)
			case pattern.White:
				disc(im, cx, cy, half-1, color.White, color.Black)
			}
		}
	}
}

// open reports whether the line of the board continues into window cell (i, j).
func open(w pattern.Window, i, j int) bool {
	if i < 0 || j < 0 || i >= pattern.Size || j >= pattern.Size {
		return true
	}
	return w[i][j] != pattern.OffBoard
}

func disc(im *image.Paletted, cx, cy, r int, fill, edge color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			d := x*x + y*y
			switch {
			case d <= (r-1)*(r-1):
				im.Set(cx+x, cy+y, fill)
			case d <= r*r:
				im.Set(cx+x, cy+y, edge)
			}
		}
	}
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if len(enc.out.Image) == 0 {
		return nil
	}
	return gif.EncodeAll(enc.Writer, enc.out)
}
