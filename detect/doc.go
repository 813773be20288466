// Package detect implements the structural detector: locating tables,
// row bands, and cell bands in rendered page images using line
// morphology and contour analysis, and locating signature and date
// evidence regions using edge detection and horizontal line tracing.
//
// # Table detection
//
// [Detector.DetectTables] thresholds the page adaptively, opens the mask
// with a wide-flat kernel (horizontal rule lines) and a tall-thin kernel
// (vertical rule lines), combines the two line masks, and keeps external
// contours above a minimum area. A containment filter removes nested
// candidates produced by a table's internal grid lines.
//
// # Rows and cells
//
// [Detector.DetectRows] and [Detector.DetectCells] mirror each other
// along opposite axes: find long separator lines, synthesize bands
// between them, and drop bands too small to hold content. Both degrade
// to a single whole-extent band when no separators are found, so an
// unruled region is treated as a single-row (or single-cell) table
// rather than an error.
//
// # Evidence regions
//
// Signature and date fields sit above rule lines in the bottom quarter
// of the form's final page. [Detector.HasSignature] and
// [Detector.HasDate] test ink density and mark count inside the detected
// (or default) regions; date thresholds are sparser since a date is just
// a few digits.
//
// All pixel parameters in [Config] assume images normalized to the
// canonical resolution (see the imaging package).
package detect
