package detect

import (
	"image"

	"github.com/mhenke/cellula/imaging"
	"github.com/mhenke/cellula/model"
)

// DetectSignatureRegions finds candidate handwriting regions above
// signature rule lines in the bottom quarter of a page. Signature lines
// are near-horizontal segments whose width falls between width/2.8 and
// width/2.2, preferring lines in the right half of the page where
// signature fields conventionally sit. An empty list means no line was
// found; callers fall back to a default proportional region.
func (d *Detector) DetectSignatureRegions(img image.Image) []model.Region {
	gray := imaging.ToGray(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()

	minLen := int(float64(w) / d.config.SignatureMinDivisor)
	maxLen := int(float64(w) / d.config.SignatureMaxDivisor)
	regionHeight := h / d.config.SignatureRegionFrac

	var regions []model.Region
	for _, s := range d.bottomSegments(gray, minLen) {
		if s.Length() < minLen || s.Length() > maxLen {
			continue
		}
		if s.MidX() < w/2 {
			continue
		}
		regions = appendRegionAbove(regions, s, regionHeight, w)
	}
	return regions
}

// DetectDateRegions finds candidate date-field regions above short rule
// lines in the bottom-left quarter of a page. Date lines are much
// shorter than signature lines, between width/20 and width/5.
func (d *Detector) DetectDateRegions(img image.Image) []model.Region {
	gray := imaging.ToGray(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()

	minLen := int(float64(w) / d.config.DateMinDivisor)
	maxLen := int(float64(w) / d.config.DateMaxDivisor)
	regionHeight := h / d.config.DateRegionFrac

	var regions []model.Region
	for _, s := range d.bottomSegments(gray, minLen) {
		if s.Length() < minLen || s.Length() > maxLen {
			continue
		}
		if s.MidX() >= w/2 {
			continue
		}
		regions = appendRegionAbove(regions, s, regionHeight, w)
	}
	return regions
}

// bottomSegments traces near-horizontal segments in the bottom quarter
// of the page.
func (d *Detector) bottomSegments(gray *image.Gray, minLen int) []imaging.Segment {
	h := gray.Bounds().Dy()
	edges := imaging.EdgeMap(gray, d.config.EdgeThreshold)
	return imaging.FindHorizontalSegments(edges, h*3/4, h, minLen,
		d.config.SegmentMaxGap, d.config.SegmentMaxSlope)
}

// appendRegionAbove adds the region sitting directly above a rule line,
// merging with an existing region when the same physical line produced
// two edge segments (top and bottom edge of the stroke).
func appendRegionAbove(regions []model.Region, s imaging.Segment, height, pageWidth int) []model.Region {
	y := s.Y - height
	if y < 0 {
		y = 0
	}
	r := model.NewRegion(s.X1, y, s.Length(), height)
	if r.Right() > pageWidth {
		r.Width = pageWidth - r.X
	}
	for _, existing := range regions {
		if existing.Intersects(r) {
			return regions
		}
	}
	return append(regions, r)
}

// HasSignature reports whether a signature-like mark is present. If no
// candidate regions are supplied they are auto-detected; when detection
// yields nothing, a default region covering the bottom-right of the page
// is tested. A region qualifies when the ink density and the count of
// significant contours both exceed the signature thresholds.
func (d *Detector) HasSignature(img image.Image, regions []model.Region) bool {
	gray := imaging.ToGray(img)
	if regions == nil {
		regions = d.DetectSignatureRegions(gray)
	}
	if len(regions) == 0 {
		regions = []model.Region{defaultSignatureRegion(gray)}
	}
	for _, r := range regions {
		if d.regionHasInk(gray, r, d.config.SignatureMinDensity, d.config.SignatureMinContours) {
			return true
		}
	}
	return false
}

// HasDate reports whether a date-like mark is present, using the sparser
// date thresholds.
func (d *Detector) HasDate(img image.Image, regions []model.Region) bool {
	gray := imaging.ToGray(img)
	if regions == nil {
		regions = d.DetectDateRegions(gray)
	}
	if len(regions) == 0 {
		regions = []model.Region{defaultDateRegion(gray)}
	}
	for _, r := range regions {
		if d.regionHasInk(gray, r, d.config.DateMinDensity, d.config.DateMinContours) {
			return true
		}
	}
	return false
}

// regionHasInk crops the region, thresholds it, and tests ink density
// plus the number of contours above the minimum mark area.
func (d *Detector) regionHasInk(gray *image.Gray, r model.Region, minDensity float64, minContours int) bool {
	if r.IsEmpty() {
		return false
	}
	crop := imaging.Crop(gray, r.Rect())
	w, h := crop.Bounds().Dx(), crop.Bounds().Dy()
	if w == 0 || h == 0 {
		return false
	}

	mask := imaging.ThresholdInv(crop, d.config.DarkCutoff)
	density := float64(mask.InkCount()) / float64(w*h)
	if density <= minDensity {
		return false
	}

	significant := 0
	for _, c := range imaging.FindContours(mask) {
		if c.Area > d.config.EvidenceMinArea {
			significant++
		}
	}
	return significant >= minContours
}

func defaultSignatureRegion(gray *image.Gray) model.Region {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	return model.NewRegion(w/2, h*3/4, w/2, h/4)
}

func defaultDateRegion(gray *image.Gray) model.Region {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	return model.NewRegion(0, h*3/4, w/2, h/4)
}
