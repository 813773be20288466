package imaging

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// A4LongEdgeInches is the long edge of an A4 page, used to estimate the
// resolution a page was rendered at.
const A4LongEdgeInches = 11.69

// DPI clamp range for implausible estimates.
const (
	MinDPI = 75
	MaxDPI = 1200
)

// DefaultTargetDPI is the canonical resolution the detector's pixel
// thresholds are tuned for.
const DefaultTargetDPI = 400

// EstimateDPI estimates the rendering resolution of a page image from
// its longest pixel dimension, assuming an A4 long edge. The estimate is
// clamped to [MinDPI, MaxDPI].
func EstimateDPI(width, height int) float64 {
	long := width
	if height > long {
		long = height
	}
	dpi := float64(long) / A4LongEdgeInches
	if dpi < MinDPI {
		return MinDPI
	}
	if dpi > MaxDPI {
		return MaxDPI
	}
	return dpi
}

// NormalizeResolution rescales a page image so its estimated DPI matches
// targetDPI. Images already within 1% of the target are returned
// unchanged; the tolerance absorbs the rounding of pixel dimensions, so
// re-normalizing at the same target is a no-op.
func NormalizeResolution(img image.Image, targetDPI int) image.Image {
	if targetDPI <= 0 {
		return img
	}
	b := img.Bounds()
	estimated := EstimateDPI(b.Dx(), b.Dy())
	target := float64(targetDPI)

	diff := estimated - target
	if diff < 0 {
		diff = -diff
	}
	if diff/target < 0.01 {
		return img
	}

	scale := target / estimated
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}

// ScaleUp magnifies an image by an integer factor using bicubic
// interpolation, used to make small glyphs more prominent before a
// digit-restricted OCR pass.
func ScaleUp(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}
