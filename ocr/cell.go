package ocr

import (
	"image"
	"sort"
	"strings"

	"github.com/mhenke/cellula/imaging"
)

// CellConfig holds tunables for the digit-recovery pass.
type CellConfig struct {
	// RecoveryCutoff is the grayscale threshold separating glyph ink
	// from paper when isolating candidate glyphs.
	RecoveryCutoff uint8

	// MinGlyphSize is the minimum width and height of a contour for it
	// to count as a glyph rather than noise.
	MinGlyphSize int

	// UpscaleFactor is the magnification applied to isolated glyphs
	// before the digit-only OCR pass.
	UpscaleFactor int

	// FillRatioMin and FillRatioMax bound the ink-to-bounding-box ratio
	// of a ring-shaped glyph. A "0" fills roughly half its box; a solid
	// blob or a thin stroke falls outside the band.
	FillRatioMin float64
	FillRatioMax float64

	// MinCircularity is the minimum roundness for the ring heuristic.
	MinCircularity float64

	// MinInk and MaxInk bound the whole-cell ink pixel count for the
	// last-resort fallback: a cell with only a faint small mark reads
	// as "0".
	MinInk int
	MaxInk int
}

// DefaultCellConfig returns the recovery settings tuned for 400 DPI
// scans of printed forms.
func DefaultCellConfig() CellConfig {
	return CellConfig{
		RecoveryCutoff: 200,
		MinGlyphSize:   3,
		UpscaleFactor:  3,
		FillRatioMin:   0.3,
		FillRatioMax:   0.7,
		MinCircularity: 0.4,
		MinInk:         5,
		MaxInk:         100,
	}
}

// CellReader reads the text of a single table cell. When the general
// OCR pass returns nothing for a cell that visibly contains ink, it
// re-reads each glyph in isolation with a digit-only pass and falls
// back to shape heuristics that recognize the "0" glyphs Tesseract
// tends to drop on faint scans.
type CellReader struct {
	reader TextReader
	config CellConfig
}

// NewCellReader wraps a TextReader with the default recovery settings.
func NewCellReader(reader TextReader) *CellReader {
	return NewCellReaderWithConfig(reader, DefaultCellConfig())
}

// NewCellReaderWithConfig wraps a TextReader with explicit settings.
func NewCellReaderWithConfig(reader TextReader, config CellConfig) *CellReader {
	return &CellReader{reader: reader, config: config}
}

// ReadCell returns the text of a cell image. Engine errors propagate to
// the caller; an empty string with a nil error means the cell is blank.
func (c *CellReader) ReadCell(img image.Image) (string, error) {
	text, err := c.reader.ReadText(img)
	if err != nil {
		return "", err
	}
	if text = strings.TrimSpace(text); text != "" {
		return text, nil
	}
	return c.recoverDigits(img)
}

// recoverDigits re-reads each glyph-sized contour of a blank-scoring
// cell in isolation, left to right.
func (c *CellReader) recoverDigits(img image.Image) (string, error) {
	gray := imaging.ToGray(img)
	mask := imaging.ThresholdInv(gray, c.config.RecoveryCutoff)

	var glyphs []imaging.Contour
	for _, contour := range imaging.FindContours(mask) {
		if contour.Bounds.Width > c.config.MinGlyphSize && contour.Bounds.Height > c.config.MinGlyphSize {
			glyphs = append(glyphs, contour)
		}
	}
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i].Bounds.X < glyphs[j].Bounds.X })

	var recovered strings.Builder
	for _, glyph := range glyphs {
		crop := imaging.Crop(gray, glyph.Bounds.Rect())
		digits, err := c.reader.ReadDigits(imaging.ScaleUp(crop, c.config.UpscaleFactor))
		if err != nil {
			return "", err
		}
		if digits = strings.TrimSpace(digits); digits != "" {
			recovered.WriteString(digits)
			continue
		}
		if c.looksLikeZero(glyph) {
			recovered.WriteString("0")
		}
	}
	if recovered.Len() > 0 {
		return recovered.String(), nil
	}

	// Last resort: the cell holds a trace of ink but nothing glyph-sized
	// or readable. A small total ink count means a faint stray mark, and
	// the form prints "0" for empty positions.
	if ink := mask.InkCount(); ink >= c.config.MinInk && ink <= c.config.MaxInk {
		return "0", nil
	}
	return "", nil
}

// looksLikeZero applies the ring heuristic for a "0" the digit pass
// still missed: a round shape filling about half its bounding box.
func (c *CellReader) looksLikeZero(glyph imaging.Contour) bool {
	box := glyph.Bounds.Width * glyph.Bounds.Height
	if box == 0 {
		return false
	}
	ratio := float64(glyph.Area) / float64(box)
	return ratio >= c.config.FillRatioMin && ratio <= c.config.FillRatioMax &&
		glyph.Circularity() > c.config.MinCircularity
}
