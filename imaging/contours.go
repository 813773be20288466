package imaging

import (
	"image"
	"math"

	"github.com/mhenke/cellula/model"
)

// Contour is one external contour of the mask: a connected foreground
// component with its pixel area, the area enclosed by its outer
// boundary, its bounding region, and its boundary points (foreground
// pixels with at least one background 4-neighbor).
type Contour struct {
	// Area is the number of foreground pixels in the component. For a
	// hollow shape such as a table outline or a "0" glyph this counts
	// only the stroke.
	Area int

	// Filled approximates the area enclosed by the outer boundary,
	// computed from per-row horizontal spans. For a table outline this
	// is the area of the table, holes included.
	Filled int

	Bounds   model.Region
	Boundary []image.Point
}

// Circularity returns 4·π·filled / perimeter², with the outer perimeter
// approximated by the bounding rectangle. A disk or ring scores around
// 0.6-0.8, a square ~0.79, elongated shapes near zero.
func (c Contour) Circularity() float64 {
	p := float64(2 * (c.Bounds.Width + c.Bounds.Height))
	if p == 0 {
		return 0
	}
	return 4 * math.Pi * float64(c.Filled) / (p * p)
}

// Spans returns the horizontal extent of the contour on each row it
// occupies, keyed by y as half-open [Start, End) bands. The boundary
// holds the leftmost and rightmost pixel of every occupied row, so the
// spans describe the same filled extent Filled is computed from.
func (c Contour) Spans() map[int]model.Band {
	spans := make(map[int]model.Band, c.Bounds.Height)
	for _, p := range c.Boundary {
		s, ok := spans[p.Y]
		if !ok {
			spans[p.Y] = model.Band{Start: p.X, End: p.X + 1}
			continue
		}
		s.Start = min(s.Start, p.X)
		s.End = max(s.End, p.X+1)
		spans[p.Y] = s
	}
	return spans
}

// FindContours extracts the external contours of the mask as 8-connected
// components, in scan order of their first pixel.
func FindContours(b *Bitmap) []Contour {
	var contours []Contour
	visited := make([]bool, len(b.Pix))
	var stack []image.Point

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			idx := y*b.W + x
			if !b.Pix[idx] || visited[idx] {
				continue
			}

			var c Contour
			minX, minY, maxX, maxY := x, y, x, y
			var pixels []image.Point
			visited[idx] = true
			stack = append(stack[:0], image.Pt(x, y))

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				c.Area++
				pixels = append(pixels, p)

				minX = min(minX, p.X)
				minY = min(minY, p.Y)
				maxX = max(maxX, p.X)
				maxY = max(maxY, p.Y)

				if isBoundary(b, p.X, p.Y) {
					c.Boundary = append(c.Boundary, p)
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= b.W || ny >= b.H {
							continue
						}
						nidx := ny*b.W + nx
						if b.Pix[nidx] && !visited[nidx] {
							visited[nidx] = true
							stack = append(stack, image.Pt(nx, ny))
						}
					}
				}
			}

			c.Bounds = model.NewRegion(minX, minY, maxX-minX+1, maxY-minY+1)
			c.Filled = rowSpanArea(pixels, minY, maxY)
			contours = append(contours, c)
		}
	}
	return contours
}

// rowSpanArea sums the horizontal span of the component on each row it
// occupies, approximating the area enclosed by the outer boundary.
func rowSpanArea(pixels []image.Point, minY, maxY int) int {
	rows := maxY - minY + 1
	spanMin := make([]int, rows)
	spanMax := make([]int, rows)
	for i := range spanMin {
		spanMin[i] = math.MaxInt
		spanMax[i] = math.MinInt
	}
	for _, p := range pixels {
		r := p.Y - minY
		spanMin[r] = min(spanMin[r], p.X)
		spanMax[r] = max(spanMax[r], p.X)
	}
	area := 0
	for i := 0; i < rows; i++ {
		if spanMax[i] >= spanMin[i] {
			area += spanMax[i] - spanMin[i] + 1
		}
	}
	return area
}

// isBoundary reports whether the foreground pixel at (x, y) touches
// background through a 4-neighbor. Image edges count as background.
func isBoundary(b *Bitmap, x, y int) bool {
	return !b.Get(x-1, y) || !b.Get(x+1, y) || !b.Get(x, y-1) || !b.Get(x, y+1)
}
