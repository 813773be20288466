package imaging

import (
	"image"
	"math"
	"sort"
)

// EdgeMap computes a binary edge mask with Sobel gradients: a pixel is
// an edge if its gradient magnitude exceeds the threshold.
func EdgeMap(gray *image.Gray, threshold float64) *Bitmap {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	out := NewBitmap(w, h)

	at := func(x, y int) int {
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		if x >= w {
			x = w - 1
		}
		if y >= h {
			y = h - 1
		}
		return int(gray.Pix[y*gray.Stride+x])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			if math.Hypot(float64(gx), float64(gy)) > threshold {
				out.Pix[y*w+x] = true
			}
		}
	}
	return out
}

// Segment is a traced near-horizontal line segment.
type Segment struct {
	X1, X2 int // inclusive x range
	Y      int // representative y position (midpoint of the traced rows)
}

// Length returns the segment's horizontal extent.
func (s Segment) Length() int {
	return s.X2 - s.X1 + 1
}

// MidX returns the x coordinate of the segment's midpoint.
func (s Segment) MidX() int {
	return (s.X1 + s.X2) / 2
}

// FindHorizontalSegments traces near-horizontal line segments in the
// edge mask, restricted to rows [yMin, yMax). Runs of edge pixels within
// a row are bridged across gaps up to maxGap; runs on adjacent rows with
// overlapping x ranges are merged into one segment. Merged segments are
// kept only if their total vertical drift stays within maxSlope of their
// length (maxSlope = tan of the allowed deviation from horizontal) and
// their length is at least minLength.
func FindHorizontalSegments(edges *Bitmap, yMin, yMax, minLength, maxGap int, maxSlope float64) []Segment {
	type run struct {
		x1, x2, y1, y2 int
	}
	var open []run

	if yMin < 0 {
		yMin = 0
	}
	if yMax > edges.H {
		yMax = edges.H
	}

	var closed []run
	for y := yMin; y < yMax; y++ {
		// Collect gap-bridged runs on this row.
		var rows []run
		x := 0
		for x < edges.W {
			if !edges.Get(x, y) {
				x++
				continue
			}
			start := x
			end := x
			for x < edges.W {
				if edges.Get(x, y) {
					end = x
					x++
					continue
				}
				// Bridge short gaps.
				gapEnd := x
				for gapEnd < edges.W && gapEnd-x < maxGap && !edges.Get(gapEnd, y) {
					gapEnd++
				}
				if gapEnd < edges.W && gapEnd-x < maxGap && edges.Get(gapEnd, y) {
					x = gapEnd
					continue
				}
				break
			}
			rows = append(rows, run{x1: start, x2: end, y1: y, y2: y})
		}

		// Merge with open runs from the previous rows.
		var next []run
		for _, r := range rows {
			merged := false
			for i := range open {
				o := &open[i]
				if r.y1-o.y2 <= 1 && r.x1 <= o.x2+maxGap && o.x1 <= r.x2+maxGap {
					o.x1 = min(o.x1, r.x1)
					o.x2 = max(o.x2, r.x2)
					o.y2 = r.y1
					merged = true
					break
				}
			}
			if !merged {
				next = append(next, r)
			}
		}
		// Retire runs that did not continue on this row.
		var still []run
		for _, o := range open {
			if y-o.y2 > 1 {
				closed = append(closed, o)
			} else {
				still = append(still, o)
			}
		}
		open = append(still, next...)
	}
	closed = append(closed, open...)

	var segments []Segment
	for _, r := range closed {
		length := r.x2 - r.x1 + 1
		if length < minLength {
			continue
		}
		drift := float64(r.y2 - r.y1)
		if drift/float64(length) > maxSlope {
			continue
		}
		segments = append(segments, Segment{X1: r.x1, X2: r.x2, Y: (r.y1 + r.y2) / 2})
	}

	sort.Slice(segments, func(i, j int) bool {
		if segments[i].Y != segments[j].Y {
			return segments[i].Y < segments[j].Y
		}
		return segments[i].X1 < segments[j].X1
	})
	return segments
}
