package img

// BlackAndWhiteThreshold is the average intensity from which
// BlackAndWhite produces a white pixel.
const BlackAndWhiteThreshold = 128

// AverageIntensity returns the unweighted mean of the pixel's channels,
// rounded down.
func AverageIntensity(p Pixel) int {
	return (int(p.R) + int(p.G) + int(p.B)) / 3
}

// Grayscale returns a copy of src where every pixel's channels are set
// to the pixel's average intensity.
func Grayscale(src *Image) *Image {
	dst := NewImage(src.Width(), src.Height())
	for x := 0; x < src.Width(); x++ {
		for y := 0; y < src.Height(); y++ {
			v := uint8(AverageIntensity(src.PixelAt(x, y)))
			dst.SetPixel(x, y, Pixel{v, v, v})
		}
	}
	return dst
}

// BlackAndWhite returns a two-color copy of src. Pixels with an average
// intensity below BlackAndWhiteThreshold become black, the others white.
func BlackAndWhite(src *Image) *Image {
	dst := NewImage(src.Width(), src.Height())
	for x := 0; x < src.Width(); x++ {
		for y := 0; y < src.Height(); y++ {
			if AverageIntensity(src.PixelAt(x, y)) < BlackAndWhiteThreshold {
				dst.SetPixel(x, y, Black)
			} else {
				dst.SetPixel(x, y, White)
			}
		}
	}
	return dst
}

// EdgeDetection returns an outline of src. Each pixel is compared with
// its left and below neighbors; when the difference of average
// intensities with either of them is lower than threshold, the pixel
// becomes white, otherwise black. A missing neighbor on the image border
// counts as identical to the current pixel.
//
// Note that smooth regions are white and edges are black.
func EdgeDetection(src *Image, threshold int) *Image {
	w, h := src.Width(), src.Height()
	dst := NewImage(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			cur := AverageIntensity(src.PixelAt(x, y))

			left := cur
			if x > 0 {
				left = AverageIntensity(src.PixelAt(x-1, y))
			}
			below := cur
			if y < h-1 {
				below = AverageIntensity(src.PixelAt(x, y+1))
			}

			if abs(cur-left) < threshold || abs(cur-below) < threshold {
				dst.SetPixel(x, y, White)
			} else {
				dst.SetPixel(x, y, Black)
			}
		}
	}
	return dst
}

// Reflect returns src mirrored across its vertical axis. On an odd
// width, the middle column stays in place.
func Reflect(src *Image) *Image {
	dst := src.Clone()
	w := dst.Width()
	for x := 0; x < w/2; x++ {
		for y := 0; y < dst.Height(); y++ {
			left := dst.PixelAt(x, y)
			right := dst.PixelAt(w-1-x, y)
			dst.SetPixel(x, y, right)
			dst.SetPixel(w-1-x, y, left)
		}
	}
	return dst
}

// RotateClockwise returns src rotated by 90 degrees clockwise. The
// result's width is src's height and its height is src's width.
func RotateClockwise(src *Image) *Image {
	w, h := src.Width(), src.Height()
	dst := NewImage(h, w)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			dst.SetPixel(h-1-y, x, src.PixelAt(x, y))
		}
	}
	return dst
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
