package model

import "image"

// Region is an axis-aligned rectangle in pixel space, relative to the
// page image it was detected on.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRegion creates a region from an origin and dimensions.
func NewRegion(x, y, width, height int) Region {
	return Region{X: x, Y: y, Width: width, Height: height}
}

// RegionFromRect converts a stdlib image.Rectangle to a Region.
func RegionFromRect(r image.Rectangle) Region {
	return Region{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect converts the region to a stdlib image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Left returns the left edge X coordinate.
func (r Region) Left() int {
	return r.X
}

// Right returns the right edge X coordinate (exclusive).
func (r Region) Right() int {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate.
func (r Region) Top() int {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate (exclusive).
func (r Region) Bottom() int {
	return r.Y + r.Height
}

// Area returns the area of the region in pixels.
func (r Region) Area() int {
	return r.Width * r.Height
}

// Contains reports whether the point (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom()
}

// ContainsRegion reports whether other lies entirely inside the region.
func (r Region) ContainsRegion(other Region) bool {
	return other.Left() >= r.Left() && other.Right() <= r.Right() &&
		other.Top() >= r.Top() && other.Bottom() <= r.Bottom()
}

// Intersects reports whether two regions overlap.
func (r Region) Intersects(other Region) bool {
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}

// IsEmpty returns true if the region has no area.
func (r Region) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Band is a half-open [Start, End) interval along one image axis. Row
// bands run along the Y axis, cell bands along the X axis.
type Band struct {
	Start int
	End   int
}

// Size returns the extent of the band.
func (b Band) Size() int {
	return b.End - b.Start
}

// IsEmpty returns true if the band has no extent.
func (b Band) IsEmpty() bool {
	return b.End <= b.Start
}

// Overlaps reports whether two bands share any coordinate.
func (b Band) Overlaps(other Band) bool {
	return b.Start < other.End && other.Start < b.End
}
