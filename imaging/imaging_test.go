package imaging

import (
	"image"
	"testing"
)

// whitePage creates a blank (paper-white) grayscale image.
func whitePage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// fillRect paints a rectangle with the given intensity.
func fillRect(img *image.Gray, x, y, w, h int, v uint8) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if xx >= 0 && yy >= 0 && xx < img.Bounds().Dx() && yy < img.Bounds().Dy() {
				img.Pix[yy*img.Stride+xx] = v
			}
		}
	}
}

func TestToGrayPassThrough(t *testing.T) {
	g := whitePage(10, 10)
	if ToGray(g) != g {
		t.Error("ToGray should return *image.Gray unchanged")
	}
}

func TestToGrayConverts(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	g := ToGray(rgba)
	if g.Bounds().Dx() != 4 || g.Bounds().Dy() != 4 {
		t.Errorf("unexpected bounds: %v", g.Bounds())
	}
}

func TestThresholdInv(t *testing.T) {
	img := whitePage(10, 10)
	fillRect(img, 2, 2, 3, 3, 0) // ink block

	mask := ThresholdInv(img, 180)

	if !mask.Get(3, 3) {
		t.Error("dark pixel should be foreground")
	}
	if mask.Get(0, 0) {
		t.Error("paper pixel should be background")
	}
	if mask.InkCount() != 9 {
		t.Errorf("expected 9 ink pixels, got %d", mask.InkCount())
	}
}

func TestAdaptiveThresholdInv(t *testing.T) {
	img := whitePage(50, 50)
	fillRect(img, 10, 10, 20, 2, 0) // dark line

	mask := AdaptiveThresholdInv(img, 15, 10)

	if !mask.Get(15, 10) {
		t.Error("line pixel should be foreground")
	}
	if mask.Get(40, 40) {
		t.Error("uniform paper should stay background")
	}
}

func TestAdaptiveThresholdInvBlankImage(t *testing.T) {
	mask := AdaptiveThresholdInv(whitePage(30, 30), 15, 10)
	if mask.InkCount() != 0 {
		t.Errorf("blank page produced %d foreground pixels", mask.InkCount())
	}
}

func TestOpenRectKeepsLongLines(t *testing.T) {
	img := whitePage(100, 60)
	fillRect(img, 10, 20, 80, 2, 0) // long horizontal line
	fillRect(img, 50, 40, 4, 4, 0)  // small text-like blob

	mask := ThresholdInv(img, 180)
	opened := OpenRect(mask, 25, 1, 2)

	if !opened.Get(50, 20) {
		t.Error("long horizontal line should survive wide-flat opening")
	}
	if opened.Get(52, 42) {
		t.Error("small blob should be removed by wide-flat opening")
	}
}

func TestOpenRectVerticalKernel(t *testing.T) {
	img := whitePage(60, 100)
	fillRect(img, 20, 5, 2, 80, 0)  // tall vertical line
	fillRect(img, 40, 40, 10, 2, 0) // short horizontal stroke

	mask := ThresholdInv(img, 180)
	opened := OpenRect(mask, 1, 40, 2)

	if !opened.Get(20, 50) {
		t.Error("tall vertical line should survive tall-thin opening")
	}
	if opened.Get(44, 40) {
		t.Error("horizontal stroke should be removed by tall-thin opening")
	}
}

func TestUnion(t *testing.T) {
	a := NewBitmap(4, 4)
	b := NewBitmap(4, 4)
	a.Set(1, 1, true)
	b.Set(2, 2, true)

	u := Union(a, b)
	if !u.Get(1, 1) || !u.Get(2, 2) {
		t.Error("union should contain pixels from both masks")
	}
	if u.InkCount() != 2 {
		t.Errorf("expected 2 pixels, got %d", u.InkCount())
	}
}

func TestFindContoursTwoComponents(t *testing.T) {
	img := whitePage(60, 60)
	fillRect(img, 5, 5, 10, 10, 0)
	fillRect(img, 30, 30, 20, 8, 0)

	contours := FindContours(ThresholdInv(img, 180))
	if len(contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(contours))
	}

	first := contours[0]
	if first.Area != 100 {
		t.Errorf("expected area 100, got %d", first.Area)
	}
	if first.Bounds.Width != 10 || first.Bounds.Height != 10 {
		t.Errorf("unexpected bounds: %+v", first.Bounds)
	}

	second := contours[1]
	if second.Area != 160 {
		t.Errorf("expected area 160, got %d", second.Area)
	}
}

func TestFindContoursFilledArea(t *testing.T) {
	// A hollow rectangle outline: pixel area is just the stroke, filled
	// area covers the enclosed region.
	img := whitePage(100, 80)
	fillRect(img, 10, 10, 60, 2, 0)  // top
	fillRect(img, 10, 48, 60, 2, 0)  // bottom
	fillRect(img, 10, 10, 2, 40, 0)  // left
	fillRect(img, 68, 10, 2, 40, 0)  // right

	contours := FindContours(ThresholdInv(img, 180))
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	c := contours[0]
	if c.Filled != 60*40 {
		t.Errorf("expected filled area 2400, got %d", c.Filled)
	}
	if c.Area >= c.Filled {
		t.Errorf("stroke area %d should be well below filled area %d", c.Area, c.Filled)
	}
}

func TestContourSpans(t *testing.T) {
	// A hollow outline spans its full width on every row, walls and
	// interior alike.
	img := whitePage(100, 80)
	fillRect(img, 10, 10, 60, 2, 0)
	fillRect(img, 10, 48, 60, 2, 0)
	fillRect(img, 10, 10, 2, 40, 0)
	fillRect(img, 68, 10, 2, 40, 0)

	contours := FindContours(ThresholdInv(img, 180))
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}

	spans := contours[0].Spans()
	if len(spans) != 40 {
		t.Fatalf("expected a span on each of 40 rows, got %d", len(spans))
	}
	for y := 10; y < 50; y++ {
		s, ok := spans[y]
		if !ok {
			t.Fatalf("row %d has no span", y)
		}
		if s.Start != 10 || s.End != 70 {
			t.Errorf("row %d span = [%d, %d), want [10, 70)", y, s.Start, s.End)
		}
	}
}

func TestFindContoursEmptyMask(t *testing.T) {
	if contours := FindContours(NewBitmap(20, 20)); len(contours) != 0 {
		t.Errorf("empty mask produced %d contours", len(contours))
	}
}

func TestCircularity(t *testing.T) {
	// A filled square: circularity = 4π·a² / (4a)² = π/4 ≈ 0.785.
	img := whitePage(40, 40)
	fillRect(img, 10, 10, 16, 16, 0)

	contours := FindContours(ThresholdInv(img, 180))
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	c := contours[0].Circularity()
	if c < 0.6 || c > 1.2 {
		t.Errorf("square circularity out of range: %f", c)
	}

	// A thin line scores far lower.
	img2 := whitePage(100, 20)
	fillRect(img2, 5, 10, 90, 1, 0)
	line := FindContours(ThresholdInv(img2, 180))[0]
	if line.Circularity() > 0.2 {
		t.Errorf("line circularity too high: %f", line.Circularity())
	}
}

func TestEstimateDPI(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          float64
	}{
		{"a4 at 400dpi", 3307, 4676, 400.0},
		{"tiny clamps low", 100, 100, MinDPI},
		{"huge clamps high", 40000, 30000, MaxDPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDPI(tt.width, tt.height)
			if got < tt.want-1 || got > tt.want+1 {
				t.Errorf("EstimateDPI(%d, %d) = %f, want ~%f", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestNormalizeResolutionNoOp(t *testing.T) {
	img := whitePage(3307, 4676) // already ~400 DPI
	if NormalizeResolution(img, 400) != image.Image(img) {
		t.Error("image at target DPI should be returned unchanged")
	}
}

func TestNormalizeResolutionRescales(t *testing.T) {
	img := whitePage(827, 1169) // ~100 DPI
	out := NormalizeResolution(img, 400)

	b := out.Bounds()
	if b.Dy() < 4600 || b.Dy() > 4750 {
		t.Errorf("long edge should be near 4676, got %d", b.Dy())
	}
}

func TestNormalizeResolutionIdempotent(t *testing.T) {
	img := whitePage(1700, 2300)
	once := NormalizeResolution(img, 400)
	twice := NormalizeResolution(once, 400)

	if once.Bounds() != twice.Bounds() {
		t.Errorf("re-normalizing changed dimensions: %v vs %v", once.Bounds(), twice.Bounds())
	}
	if once != twice {
		t.Error("re-normalizing at the same target should be a no-op")
	}
}

func TestNormalizeResolutionDisabled(t *testing.T) {
	img := whitePage(100, 100)
	if NormalizeResolution(img, 0) != image.Image(img) {
		t.Error("non-positive target should disable normalization")
	}
}

func TestFindHorizontalSegments(t *testing.T) {
	img := whitePage(400, 200)
	fillRect(img, 50, 150, 200, 2, 0) // line in the bottom quarter

	edges := EdgeMap(img, 100)
	segments := FindHorizontalSegments(edges, 150-5, 200, 100, 5, 0.1)

	if len(segments) == 0 {
		t.Fatal("expected at least one segment")
	}
	s := segments[0]
	if s.Length() < 190 {
		t.Errorf("segment too short: %d", s.Length())
	}
	if s.Y < 145 || s.Y > 156 {
		t.Errorf("segment y out of range: %d", s.Y)
	}
}

func TestFindHorizontalSegmentsBlank(t *testing.T) {
	edges := EdgeMap(whitePage(100, 100), 100)
	if segs := FindHorizontalSegments(edges, 0, 100, 10, 3, 0.1); len(segs) != 0 {
		t.Errorf("blank image produced %d segments", len(segs))
	}
}

func TestScaleUp(t *testing.T) {
	img := whitePage(10, 8)
	out := ScaleUp(img, 3)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 24 {
		t.Errorf("unexpected scaled bounds: %v", out.Bounds())
	}
	if ScaleUp(img, 1) != image.Image(img) {
		t.Error("factor 1 should return the image unchanged")
	}
}
