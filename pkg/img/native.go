package img

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"image/gif"    // GIF decoder and encoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	_ "github.com/biessek/golang-ico" // ICO decoder
	_ "golang.org/x/image/bmp"        // BMP decoder
	"golang.org/x/image/tiff"         // TIFF decoder and encoder
	_ "golang.org/x/image/webp"       // WEBP decoder

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// DefaultLoader is the loader used by Load.
const DefaultLoader = "native"

// MaxPixels is the largest image surface, in pixels, that Decode
// accepts.
var MaxPixels = 30000000

// ErrImageTooBig is returned when an image exceeds MaxPixels.
var ErrImageTooBig = errors.New("image is too big")

func init() {
	AddLoader(DefaultLoader, Decode)
}

// LoadError is returned when an image file can't be opened
// or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("can't load %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned by Encode for an unknown
// output format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported image format %q", e.Format)
}

// Load reads and decodes the image file at path.
func Load(path string) (*Image, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{path, err}
	}
	defer fd.Close() // nolint:errcheck

	m, _, err := New(DefaultLoader, fd)
	if err != nil {
		return nil, &LoadError{path, err}
	}
	return m, nil
}

// Decode decodes an image in any of the registered formats. The image
// is rotated according to its EXIF orientation, if any.
func Decode(r io.Reader) (*Image, string, error) {
	// We need to grab the format first, hence this two pass thing
	var buf bytes.Buffer
	tee := io.TeeReader(r, &buf)

	c, format, err := image.DecodeConfig(tee)
	if err != nil {
		return nil, "", err
	}

	if c.Width*c.Height > MaxPixels {
		return nil, "", ErrImageTooBig
	}

	m, err := imaging.Decode(
		io.MultiReader(&buf, r),
		imaging.AutoOrientation(true),
	)
	if err != nil {
		return nil, "", err
	}

	return FromImage(m), format, nil
}

// FromImage converts any image to an Image. Transparent pixels
// are composited over black.
func FromImage(src image.Image) *Image {
	rgba := clone.AsRGBA(src)
	b := rgba.Bounds()
	res := NewImage(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			res.SetPixel(x, y, Pixel{rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2]})
		}
	}
	return res
}

var formats = []string{"png", "jpeg", "gif", "bmp", "tiff"}

// Formats returns the list of formats Encode supports.
func Formats() []string {
	res := make([]string, len(formats))
	copy(res, formats)
	return res
}

// NormalizeFormat returns the canonical name of a format.
func NormalizeFormat(format string) string {
	switch format {
	case "":
		return "png"
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return format
}

// Extension returns the file extension, without a dot,
// for the given format.
func Extension(format string) string {
	if f := NormalizeFormat(format); f != "jpeg" {
		return f
	}
	return "jpg"
}

// Encode encodes the image to w. An empty format falls back to PNG.
// The quality only applies to JPEG encoding. It returns the format
// that was used.
func Encode(w io.Writer, m *Image, format string, quality int) (string, error) {
	format = NormalizeFormat(format)

	var err error
	switch format {
	case "png":
		err = imgio.PNGEncoder()(w, m)
	case "jpeg":
		err = imgio.JPEGEncoder(quality)(w, m)
	case "bmp":
		err = imgio.BMPEncoder()(w, m)
	case "gif":
		err = gif.Encode(w, m, &gif.Options{NumColors: 256})
	case "tiff":
		err = tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return "", &UnsupportedFormatError{format}
	}

	return format, err
}
