package imaging

// OpenRect performs morphological opening with a w×h rectangular kernel:
// iterations erosions followed by the same number of dilations. Opening
// with a wide flat kernel keeps only long horizontal structures; a tall
// thin kernel keeps vertical ones.
func OpenRect(b *Bitmap, kw, kh, iterations int) *Bitmap {
	out := b
	for i := 0; i < iterations; i++ {
		out = erodeRect(out, kw, kh)
	}
	for i := 0; i < iterations; i++ {
		out = dilateRect(out, kw, kh)
	}
	return out
}

// erodeRect erodes with a kw×kh kernel. Rectangular kernels are
// separable, so the pass runs horizontally then vertically.
func erodeRect(b *Bitmap, kw, kh int) *Bitmap {
	return runVertical(runHorizontal(b, kw, false), kh, false)
}

// dilateRect dilates with a kw×kh kernel.
func dilateRect(b *Bitmap, kw, kh int) *Bitmap {
	return runVertical(runHorizontal(b, kw, true), kh, true)
}

// runHorizontal applies a 1×k min (erode) or max (dilate) filter along
// each row using a sliding window count.
func runHorizontal(b *Bitmap, k int, dilate bool) *Bitmap {
	if k <= 1 {
		return b
	}
	out := NewBitmap(b.W, b.H)
	left := (k - 1) / 2
	right := k - 1 - left
	for y := 0; y < b.H; y++ {
		count := 0
		// Prime the window for x = 0.
		for x := -left; x <= right; x++ {
			if b.Get(x, y) {
				count++
			}
		}
		for x := 0; x < b.W; x++ {
			window := min(b.W-1, x+right) - max(0, x-left) + 1
			if dilate {
				out.Pix[y*b.W+x] = count > 0
			} else {
				out.Pix[y*b.W+x] = count == window
			}
			if b.Get(x-left, y) {
				count--
			}
			if b.Get(x+right+1, y) {
				count++
			}
		}
	}
	return out
}

// runVertical applies a k×1 min or max filter along each column.
func runVertical(b *Bitmap, k int, dilate bool) *Bitmap {
	if k <= 1 {
		return b
	}
	out := NewBitmap(b.W, b.H)
	up := (k - 1) / 2
	down := k - 1 - up
	for x := 0; x < b.W; x++ {
		count := 0
		for y := -up; y <= down; y++ {
			if b.Get(x, y) {
				count++
			}
		}
		for y := 0; y < b.H; y++ {
			window := min(b.H-1, y+down) - max(0, y-up) + 1
			if dilate {
				out.Pix[y*b.W+x] = count > 0
			} else {
				out.Pix[y*b.W+x] = count == window
			}
			if b.Get(x, y-up) {
				count--
			}
			if b.Get(x, y+down+1) {
				count++
			}
		}
	}
	return out
}
