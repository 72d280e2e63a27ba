package img

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestLoad(t *testing.T) {
	src := randomImage(5, 6, 4)

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := Encode(&buf, src, "png", 0)
		require.NoError(t, err)

		m, err := Load(writeFile(t, "img.png", buf.Bytes()))
		require.NoError(t, err)
		assert.True(t, m.Equal(src))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nowhere.png"))
		var le *LoadError
		require.True(t, errors.As(err, &le))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		assert.True(t, strings.HasSuffix(le.Path, "nowhere.png"))

		_, err = Load(writeFile(t, "bogus.png", []byte("not an image")))
		require.True(t, errors.As(err, &le))
		assert.True(t, errors.Is(err, image.ErrFormat))
		assert.Contains(t, err.Error(), "image: unknown format")
	})

	t.Run("too big", func(t *testing.T) {
		old := MaxPixels
		MaxPixels = 10
		defer func() { MaxPixels = old }()

		var buf bytes.Buffer
		_, err := Encode(&buf, src, "png", 0)
		require.NoError(t, err)

		_, err = Load(writeFile(t, "img.png", buf.Bytes()))
		assert.True(t, errors.Is(err, ErrImageTooBig))
	})
}

func TestLoader(t *testing.T) {
	_, _, err := New("bogus", strings.NewReader(""))
	assert.EqualError(t, err, "loader bogus not found")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))

	m, format, err := New(DefaultLoader, &buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 2, m.Width())
}

func TestFromImage(t *testing.T) {
	t.Run("offset bounds", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
		src.Set(10, 20, color.NRGBA{1, 2, 3, 255})
		src.Set(12, 21, color.NRGBA{4, 5, 6, 255})

		m := FromImage(src)
		assert.Equal(t, 3, m.Width())
		assert.Equal(t, 2, m.Height())
		assert.Equal(t, Pixel{1, 2, 3}, m.PixelAt(0, 0))
		assert.Equal(t, Pixel{4, 5, 6}, m.PixelAt(2, 1))
	})

	t.Run("transparent", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		src.Set(0, 0, color.NRGBA{200, 100, 50, 0})
		assert.Equal(t, Black, FromImage(src).PixelAt(0, 0))
	})

	t.Run("gray", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 1, 1))
		src.SetGray(0, 0, color.Gray{Y: 42})
		assert.Equal(t, Pixel{42, 42, 42}, FromImage(src).PixelAt(0, 0))
	})
}

func TestEncode(t *testing.T) {
	src := randomImage(9, 8, 5)

	tests := []struct {
		format   string
		expected string
		lossless bool
	}{
		{"", "png", true},
		{"png", "png", true},
		{"bmp", "bmp", true},
		{"tiff", "tiff", true},
		{"tif", "tiff", true},
		{"jpeg", "jpeg", false},
		{"jpg", "jpeg", false},
		{"gif", "gif", false},
	}

	for _, x := range tests {
		t.Run(x.format, func(t *testing.T) {
			var buf bytes.Buffer
			f, err := Encode(&buf, src, x.format, 90)
			require.NoError(t, err)
			assert.Equal(t, x.expected, f)

			m, format, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, x.expected, format)
			assert.Equal(t, src.Width(), m.Width())
			assert.Equal(t, src.Height(), m.Height())
			if x.lossless {
				assert.True(t, m.Equal(src))
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := Encode(&bytes.Buffer{}, src, "webp", 0)
		var ue *UnsupportedFormatError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, "webp", ue.Format)
	})
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"png", "jpeg", "gif", "bmp", "tiff"}, Formats())
	assert.Equal(t, "jpg", Extension("jpeg"))
	assert.Equal(t, "jpg", Extension("jpg"))
	assert.Equal(t, "png", Extension(""))
	assert.Equal(t, "tiff", Extension("tif"))
}
