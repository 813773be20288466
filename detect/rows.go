package detect

import (
	"image"
	"sort"

	"github.com/mhenke/cellula/imaging"
	"github.com/mhenke/cellula/model"
)

// DetectRows finds row bands within a cropped table image by locating
// long horizontal separator lines and synthesizing bands between them.
// If no separators are found, or every synthesized band is filtered out,
// the whole table is returned as a single band.
func (d *Detector) DetectRows(table image.Image) []model.Band {
	gray := imaging.ToGray(table)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil
	}
	whole := []model.Band{{Start: 0, End: h}}

	binary := d.binarize(gray)
	lines := imaging.OpenRect(binary, d.config.RowKernelWidth, 1, d.config.MorphIterations)

	// Keep wide, flat contours: true separators, not blocks of text.
	minWidth := int(float64(w) * d.config.RowMinWidthFrac)
	var positions []int
	for _, c := range imaging.FindContours(lines) {
		if c.Bounds.Width > minWidth && c.Bounds.Height < d.config.RowMaxLineHeight {
			positions = append(positions, c.Bounds.Y)
		}
	}
	if len(positions) == 0 {
		return whole
	}
	sort.Ints(positions)

	var bands []model.Band
	if positions[0] > d.config.RowMinGap {
		bands = append(bands, model.Band{Start: 0, End: positions[0]})
	}
	for i := 0; i < len(positions)-1; i++ {
		if positions[i+1]-positions[i] > d.config.RowMinGap {
			bands = append(bands, model.Band{Start: positions[i], End: positions[i+1]})
		}
	}
	if h-positions[len(positions)-1] > d.config.RowMinGap {
		bands = append(bands, model.Band{Start: positions[len(positions)-1], End: h})
	}

	minHeight := d.config.RowMinHeight
	if frac := int(float64(h) * d.config.RowMinHeightFrac); frac > minHeight {
		minHeight = frac
	}
	var filtered []model.Band
	for _, b := range bands {
		if b.Size() >= minHeight {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == 0 {
		return whole
	}
	return filtered
}

// binarize applies the configured threshold strategy.
func (d *Detector) binarize(gray *image.Gray) *imaging.Bitmap {
	if d.config.Strategy == ThresholdAdaptive {
		return imaging.AdaptiveThresholdInv(gray, d.config.AdaptiveWindow, d.config.AdaptiveC)
	}
	return imaging.ThresholdInv(gray, d.config.DarkCutoff)
}
