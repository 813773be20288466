package detect

import (
	"image"
	"sort"

	"github.com/mhenke/cellula/imaging"
	"github.com/mhenke/cellula/model"
)

// DetectCells finds cell bands within a cropped row image by locating
// vertical separator lines and synthesizing bands between them, trimmed
// by an inward margin so separator ink is not clipped into the cell.
// If no separators are found, or every synthesized band is filtered out,
// the whole row (minus margins) is returned as a single band.
func (d *Detector) DetectCells(row image.Image) []model.Band {
	gray := imaging.ToGray(row)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil
	}
	margin := d.config.CellMargin
	whole := []model.Band{{Start: margin, End: w - margin}}
	if w <= 2*margin {
		return []model.Band{{Start: 0, End: w}}
	}

	binary := d.binarize(gray)

	// Kernel height scales with the row so short rows still detect
	// their separators.
	kernel := int(float64(h) * d.config.CellKernelFrac)
	if kernel < d.config.CellMinKernel {
		kernel = d.config.CellMinKernel
	}
	lines := imaging.OpenRect(binary, 1, kernel, d.config.MorphIterations)

	minHeight := float64(h) * d.config.CellMinLineFrac
	var positions []int
	for _, c := range imaging.FindContours(lines) {
		if float64(c.Bounds.Height) > minHeight {
			positions = append(positions, c.Bounds.X)
		}
	}
	if len(positions) == 0 {
		return whole
	}
	sort.Ints(positions)

	var bands []model.Band
	if positions[0] > d.config.CellMinWidth {
		bands = append(bands, model.Band{Start: margin, End: positions[0] - margin})
	}
	for i := 0; i < len(positions)-1; i++ {
		if positions[i+1]-positions[i] > d.config.CellMinWidth {
			bands = append(bands, model.Band{Start: positions[i] + margin, End: positions[i+1] - margin})
		}
	}
	if w-positions[len(positions)-1] > d.config.CellMinWidth {
		bands = append(bands, model.Band{Start: positions[len(positions)-1] + margin, End: w - margin})
	}

	if len(bands) == 0 {
		return whole
	}
	return bands
}
