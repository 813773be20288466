package imaging

import (
	"image"
	"image/draw"
)

// ToGray converts an image to 8-bit grayscale. Images that are already
// *image.Gray are returned unchanged.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// Crop returns the sub-image of gray covered by r, re-based to a zero
// origin so downstream coordinates are local to the crop.
func Crop(gray *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(gray.Bounds())
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), gray, r.Min, draw.Src)
	return out
}

// Bitmap is a binary foreground mask. Pix is row-major; true marks a
// foreground (ink) pixel.
type Bitmap struct {
	W, H int
	Pix  []bool
}

// NewBitmap allocates an all-background mask.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, Pix: make([]bool, w*h)}
}

// Get reports whether (x, y) is foreground. Out-of-bounds coordinates
// are background.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.Pix[y*b.W+x]
}

// Set marks (x, y) as foreground or background.
func (b *Bitmap) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.Pix[y*b.W+x] = v
}

// InkCount returns the number of foreground pixels.
func (b *Bitmap) InkCount() int {
	n := 0
	for _, v := range b.Pix {
		if v {
			n++
		}
	}
	return n
}

// Union returns the pixel-wise union of two masks of equal size.
func Union(a, b *Bitmap) *Bitmap {
	out := NewBitmap(a.W, a.H)
	for i := range a.Pix {
		out.Pix[i] = a.Pix[i] || b.Pix[i]
	}
	return out
}

