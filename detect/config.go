package detect

// ThresholdStrategy selects how row/cell images are binarized before
// line morphology. Fixed cutoff is the default; the adaptive strategy
// holds up better on unevenly lit scans.
type ThresholdStrategy int

const (
	// ThresholdFixed binarizes at a fixed dark-pixel cutoff.
	ThresholdFixed ThresholdStrategy = iota

	// ThresholdAdaptive binarizes against a local neighborhood mean.
	ThresholdAdaptive
)

// Config holds the structural detector's tunable parameters. All pixel
// values assume images normalized to the canonical resolution.
type Config struct {
	// Table detection.
	AdaptiveWindow   int // neighborhood size for the adaptive threshold
	AdaptiveC        int // constant subtracted from the neighborhood mean
	HorizontalKernel int // wide-flat kernel width for horizontal rule lines
	VerticalKernel   int // tall-thin kernel height for vertical rule lines
	MorphIterations  int
	MinTableArea     int // minimum contour area for a table candidate

	// ContainmentRatio is the fraction of a candidate's boundary points
	// that must fall inside a larger candidate before it is discarded as
	// a nested false positive.
	ContainmentRatio float64

	// Row/cell detection.
	Strategy          ThresholdStrategy
	DarkCutoff        uint8   // fixed-threshold ink cutoff
	RowKernelWidth    int     // wide-flat kernel for row separator lines
	RowMinWidthFrac   float64 // separator must span this fraction of table width
	RowMaxLineHeight  int     // separators taller than this are content, not lines
	RowMinGap         int     // minimum gap before a band is synthesized
	RowMinHeightFrac  float64 // minimum band height as fraction of table height
	RowMinHeight      int     // absolute minimum band height
	CellKernelFrac    float64 // vertical kernel height as fraction of row height
	CellMinKernel     int     // lower bound on the vertical kernel height
	CellMinLineFrac   float64 // separator must span this fraction of row height
	CellMargin        int     // inward margin trimmed from each cell band
	CellMinWidth      int     // minimum gap between separators to form a cell

	// Signature/date evidence.
	EdgeThreshold        float64 // Sobel gradient magnitude cutoff
	SegmentMaxGap        int     // bridged gap when tracing line segments
	SegmentMaxSlope      float64 // tan of the allowed deviation from horizontal
	SignatureMinDivisor  float64 // min signature line width = width/SignatureMinDivisor
	SignatureMaxDivisor  float64 // max signature line width = width/SignatureMaxDivisor
	DateMinDivisor       float64
	DateMaxDivisor       float64
	SignatureRegionFrac  int // region height = page height / SignatureRegionFrac
	DateRegionFrac       int
	SignatureMinDensity  float64
	SignatureMinContours int
	DateMinDensity       float64
	DateMinContours      int
	EvidenceMinArea      int // minimum contour area counted as a mark
}

// DefaultConfig returns the parameters tuned for 400 DPI A4 pages.
func DefaultConfig() Config {
	return Config{
		AdaptiveWindow:   15,
		AdaptiveC:        10,
		HorizontalKernel: 25,
		VerticalKernel:   40,
		MorphIterations:  2,
		MinTableArea:     10000,
		ContainmentRatio: 0.5,

		Strategy:         ThresholdFixed,
		DarkCutoff:       180,
		RowKernelWidth:   40,
		RowMinWidthFrac:  0.3,
		RowMaxLineHeight: 10,
		RowMinGap:        10,
		RowMinHeightFrac: 0.03,
		RowMinHeight:     10,
		CellKernelFrac:   0.5,
		CellMinKernel:    20,
		CellMinLineFrac:  0.5,
		CellMargin:       5,
		CellMinWidth:     20,

		EdgeThreshold:        100,
		SegmentMaxGap:        5,
		SegmentMaxSlope:      0.0875, // tan(5°)
		SignatureMinDivisor:  2.8,
		SignatureMaxDivisor:  2.2,
		DateMinDivisor:       20,
		DateMaxDivisor:       5,
		SignatureRegionFrac:  15,
		DateRegionFrac:       22,
		SignatureMinDensity:  0.01,
		SignatureMinContours: 3,
		DateMinDensity:       0.003,
		DateMinContours:      2,
		EvidenceMinArea:      25,
	}
}
