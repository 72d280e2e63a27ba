package img

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is an RGB color with 8 bits per channel.
type Pixel struct {
	R, G, B uint8
}

// Black and White are the two colors produced by the thresholding
// transforms.
var (
	Black = Pixel{0, 0, 0}
	White = Pixel{255, 255, 255}
)

// RGBA implements color.Color. Pixels are always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R)
	r |= r << 8
	g = uint32(p.G)
	g |= g << 8
	b = uint32(p.B)
	b |= b << 8
	a = 0xffff
	return
}

// PixelModel converts any color to a Pixel, discarding alpha.
var PixelModel color.Model = color.ModelFunc(pixelModel)

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return Pixel{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// BoundsError is raised, as a panic, when a coordinate falls outside
// of an image.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("pixel (%d,%d) out of bounds for %dx%d image",
		e.X, e.Y, e.Width, e.Height)
}

// Image is a grid of RGB pixels. Pixels are stored in a single buffer,
// row by row, in R, G, B order. The origin (0,0) is the top-left corner.
//
// Image implements draw.Image so it can be handed to the standard
// encoders, but transforms should use PixelAt and SetPixel.
type Image struct {
	pix    []uint8
	width  int
	height int
}

// NewImage returns a black image of the given dimensions. It panics
// if a dimension is negative.
func NewImage(width, height int) *Image {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("img: invalid image size %dx%d", width, height))
	}
	return &Image{
		pix:    make([]uint8, width*height*3),
		width:  width,
		height: height,
	}
}

// Width returns the image width.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height.
func (m *Image) Height() int {
	return m.height
}

func (m *Image) offset(x, y int) int {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		panic(&BoundsError{X: x, Y: y, Width: m.width, Height: m.height})
	}
	return (y*m.width + x) * 3
}

// PixelAt returns a copy of the pixel at (x, y).
func (m *Image) PixelAt(x, y int) Pixel {
	i := m.offset(x, y)
	s := m.pix[i : i+3 : i+3]
	return Pixel{s[0], s[1], s[2]}
}

// SetPixel sets the pixel at (x, y).
func (m *Image) SetPixel(x, y int, p Pixel) {
	i := m.offset(x, y)
	s := m.pix[i : i+3 : i+3]
	s[0], s[1], s[2] = p.R, p.G, p.B
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	res := &Image{
		pix:    make([]uint8, len(m.pix)),
		width:  m.width,
		height: m.height,
	}
	copy(res.pix, m.pix)
	return res
}

// Equal reports whether both images have the same dimensions and
// pixels.
func (m *Image) Equal(o *Image) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return PixelModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	return m.PixelAt(x, y)
}

// Set implements draw.Image.
func (m *Image) Set(x, y int, c color.Color) {
	m.SetPixel(x, y, PixelModel.Convert(c).(Pixel))
}
