package imaging

import "image"

// ThresholdInv produces an inverted binary mask: pixels darker than the
// cutoff become foreground. This is the fixed-cutoff strategy used to
// isolate rule lines from paper.
func ThresholdInv(gray *image.Gray, cutoff uint8) *Bitmap {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	out := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := 0; x < w; x++ {
			if row[x] < cutoff {
				out.Pix[y*w+x] = true
			}
		}
	}
	return out
}

// AdaptiveThresholdInv produces an inverted binary mask using a local
// mean threshold: a pixel becomes foreground if it is darker than the
// mean of its window-sized neighborhood minus the constant c. The window
// should be odd; even values are rounded up.
func AdaptiveThresholdInv(gray *image.Gray, window int, c int) *Bitmap {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	out := NewBitmap(w, h)
	if w == 0 || h == 0 {
		return out
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2

	// Integral image for O(1) window means.
	integral := make([]int64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := 0; x < w; x++ {
			rowSum += int64(row[x])
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		y0 := max(0, y-half)
		y1 := min(h-1, y+half)
		for x := 0; x < w; x++ {
			x0 := max(0, x-half)
			x1 := min(w-1, x+half)
			area := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*(w+1)+x1+1] - integral[y0*(w+1)+x1+1] -
				integral[(y1+1)*(w+1)+x0] + integral[y0*(w+1)+x0]
			mean := sum / area
			if int64(row[x]) < mean-int64(c) {
				out.Pix[y*w+x] = true
			}
		}
	}
	return out
}
