package detect

import (
	"image"
	"sort"

	"github.com/mhenke/cellula/imaging"
	"github.com/mhenke/cellula/model"
)

// Detector locates tables, row and cell bands, and signature/date
// evidence regions in page images. The zero value is not usable; create
// one with New or NewWithConfig.
type Detector struct {
	config Config
}

// New creates a detector with the default configuration.
func New() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewWithConfig creates a detector with custom parameters.
func NewWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config {
	return d.config
}

// DetectTables finds table-shaped regions in a page image. It isolates
// horizontal and vertical rule lines by morphological opening of an
// adaptively thresholded image, combines them into a structure mask, and
// keeps external contours above the minimum area. Nested candidates
// produced by a table's internal grid lines are removed by the
// containment filter. Regions are returned in detection order.
func (d *Detector) DetectTables(img image.Image) []model.Region {
	gray := imaging.ToGray(img)
	thresh := imaging.AdaptiveThresholdInv(gray, d.config.AdaptiveWindow, d.config.AdaptiveC)

	horizontal := imaging.OpenRect(thresh, d.config.HorizontalKernel, 1, d.config.MorphIterations)
	vertical := imaging.OpenRect(thresh, 1, d.config.VerticalKernel, d.config.MorphIterations)
	mask := imaging.Union(horizontal, vertical)

	var candidates []imaging.Contour
	for _, c := range imaging.FindContours(mask) {
		if c.Filled > d.config.MinTableArea {
			candidates = append(candidates, c)
		}
	}

	survivors := filterContained(candidates, d.config.ContainmentRatio)

	regions := make([]model.Region, 0, len(survivors))
	for _, c := range survivors {
		regions = append(regions, c.Bounds)
	}
	return regions
}

// filterContained discards candidates whose boundary lies mostly inside
// a larger candidate. Candidates are compared largest first so a nested
// contour is always tested against every contour that could contain it.
func filterContained(candidates []imaging.Contour, ratio float64) []imaging.Contour {
	if len(candidates) < 2 {
		return candidates
	}

	byArea := make([]imaging.Contour, len(candidates))
	copy(byArea, candidates)
	sort.SliceStable(byArea, func(i, j int) bool { return byArea[i].Filled > byArea[j].Filled })

	discarded := make([]bool, len(byArea))
	for i := 1; i < len(byArea); i++ {
		for j := 0; j < i; j++ {
			if discarded[j] {
				continue
			}
			if interiorFraction(byArea[i], byArea[j]) > ratio {
				discarded[i] = true
				break
			}
		}
	}

	keep := make(map[model.Region]bool)
	for i, c := range byArea {
		if !discarded[i] {
			keep[c.Bounds] = true
		}
	}

	var out []imaging.Contour
	for _, c := range candidates {
		if keep[c.Bounds] {
			out = append(out, c)
		}
	}
	return out
}

// interiorFraction returns the fraction of inner's boundary points that
// fall inside outer's filled extent. Containment is tested against the
// outer contour's per-row spans rather than its bounding box, so a
// non-convex candidate cannot swallow a neighbor sitting in its notch.
func interiorFraction(inner, outer imaging.Contour) float64 {
	if len(inner.Boundary) == 0 {
		return 0
	}
	spans := outer.Spans()
	interior := 0
	for _, p := range inner.Boundary {
		if s, ok := spans[p.Y]; ok && p.X >= s.Start && p.X < s.End {
			interior++
		}
	}
	return float64(interior) / float64(len(inner.Boundary))
}
