package reconcile

import (
	"errors"
	"testing"

	"github.com/mhenke/cellula/model"
)

func TestNormalizeNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"plain integer", "1234", 1234},
		{"thousands separator", "1.000.000", 1000000},
		{"decimal comma truncates", "12,5", 12},
		{"thousands and decimal", "1.234,56", 1234},
		{"surrounding whitespace", " 500 ", 500},
		{"zero", "0", 0},
		{"negative", "-250", -250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeNumeric(tt.input)
			if err != nil {
				t.Fatalf("NormalizeNumeric(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeNumeric(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNumericRejectsNonNumeric(t *testing.T) {
	for _, input := range []string{"", "abc", "12a4", "1,2,3", "--5"} {
		if _, err := NormalizeNumeric(input); !errors.Is(err, ErrNotNumeric) {
			t.Errorf("NormalizeNumeric(%q) should return ErrNotNumeric, got %v", input, err)
		}
	}
}

// columnMap is a test stand-in for the pattern table.
type columnMap map[model.FieldCode]int

func (m columnMap) Column(code model.FieldCode) (int, bool) {
	c, ok := m[code]
	return c, ok
}

func testColumns() columnMap {
	m := make(columnMap)
	for i, code := range model.AllFieldCodes() {
		m[code] = i + 1 // column 0 is the record key
	}
	return m
}

func extracted(raw string, normalized int64, key string) *model.FieldValue {
	return &model.FieldValue{Raw: raw, Key: key, Normalized: normalized, State: model.FieldExtracted}
}

func TestReconcileAllRequiredMatch(t *testing.T) {
	values := model.NewAuditValues()
	values.Set(model.FieldP033, extracted("500", 500, "Position 033"))
	values.Set(model.FieldP034, extracted("1.200", 1200, "Position 034"))

	ref := make(model.ReferenceRecord, 16)
	ref[1] = 500
	ref[2] = 1200

	required := []model.FieldCode{model.FieldP033, model.FieldP034}
	report := Reconcile(values, ref, testColumns(), required)

	if !report.Passed {
		t.Error("expected pass when every required field matches")
	}
	if len(report.Matches) != 2 || len(report.Mismatches) != 0 {
		t.Errorf("got %d matches / %d mismatches, want 2 / 0",
			len(report.Matches), len(report.Mismatches))
	}
	if report.MatchPercentage != 100 {
		t.Errorf("match percentage = %v, want 100", report.MatchPercentage)
	}
	if !values.Get(model.FieldP033).Matched {
		t.Error("matched flag not set on p033")
	}
}

func TestReconcileMissingRequiredFails(t *testing.T) {
	values := model.NewAuditValues()
	values.Set(model.FieldP033, extracted("500", 500, "Position 033"))

	ref := make(model.ReferenceRecord, 16)
	ref[1] = 500
	ref[5] = 42

	required := []model.FieldCode{model.FieldP033, model.FieldAb2S1N01}
	report := Reconcile(values, ref, testColumns(), required)

	if report.Passed {
		t.Error("missing required field must fail the document")
	}
	if report.MissingRequired != 1 {
		t.Errorf("MissingRequired = %d, want 1", report.MissingRequired)
	}
	if len(report.Mismatches) != 1 || !report.Mismatches[0].Missing {
		t.Fatalf("expected one missing-marker mismatch, got %+v", report.Mismatches)
	}
	if fv := values.Get(model.FieldAb2S1N01); fv == nil || !fv.Missing {
		t.Error("missing flag not set on ab2s1n01")
	}
	if report.MatchPercentage != 50 {
		t.Errorf("match percentage = %v, want 50", report.MatchPercentage)
	}
}

func TestReconcileValueMismatchFails(t *testing.T) {
	values := model.NewAuditValues()
	values.Set(model.FieldP033, extracted("999", 999, "Position 033"))

	ref := make(model.ReferenceRecord, 16)
	ref[1] = 500

	report := Reconcile(values, ref, testColumns(), []model.FieldCode{model.FieldP033})
	if report.Passed {
		t.Error("value mismatch on a required field must fail the document")
	}
	m := report.Mismatches[0]
	if m.Missing || m.Extracted != 999 || m.Reference != 500 {
		t.Errorf("mismatch should carry both values, got %+v", m)
	}
}

func TestReconcileNonRequiredMismatchDoesNotBlock(t *testing.T) {
	values := model.NewAuditValues()
	values.Set(model.FieldP033, extracted("500", 500, "Position 033"))
	values.Set(model.FieldP036, extracted("7", 7, "Position 036")) // wrong, not required

	ref := make(model.ReferenceRecord, 16)
	ref[1] = 500
	ref[4] = 999

	report := Reconcile(values, ref, testColumns(), []model.FieldCode{model.FieldP033})
	if !report.Passed {
		t.Error("non-required mismatch must not block a pass")
	}
	if len(report.Mismatches) != 1 {
		t.Errorf("non-required mismatch should still be reported, got %d", len(report.Mismatches))
	}
}

func TestReconcileNonRequiredMissingIgnored(t *testing.T) {
	values := model.NewAuditValues()
	values.Set(model.FieldP033, extracted("500", 500, "Position 033"))

	ref := make(model.ReferenceRecord, 16)
	ref[1] = 500

	report := Reconcile(values, ref, testColumns(), []model.FieldCode{model.FieldP033})
	if !report.Passed || len(report.Mismatches) != 0 {
		t.Errorf("absent non-required fields should be ignored entirely, got %+v", report.Mismatches)
	}
}

func TestReconcileParseErrorFailsWhenRequired(t *testing.T) {
	values := model.NewAuditValues()
	values.Set(model.FieldP033, &model.FieldValue{
		Raw: "n/a", Key: "Position 033", State: model.FieldParseError,
	})

	ref := make(model.ReferenceRecord, 16)
	ref[1] = 500

	report := Reconcile(values, ref, testColumns(), []model.FieldCode{model.FieldP033})
	if report.Passed {
		t.Error("required field with a parse error must fail the document")
	}
	if len(report.Mismatches) != 1 || !report.Mismatches[0].ParseError {
		t.Fatalf("expected a parse-error mismatch, got %+v", report.Mismatches)
	}
}

func TestReconcileNoRequiredFields(t *testing.T) {
	values := model.NewAuditValues()
	ref := make(model.ReferenceRecord, 16)

	report := Reconcile(values, ref, testColumns(), nil)
	if !report.Passed {
		t.Error("a document with no required fields always passes")
	}
	if report.MatchPercentage != 100 {
		t.Errorf("match percentage = %v, want 100", report.MatchPercentage)
	}
}

func TestReconcileShortReferenceRecordSkipsColumns(t *testing.T) {
	values := model.NewAuditValues()
	values.Set(model.FieldAb2S1N11, extracted("5", 5, "Nr. 11"))

	ref := make(model.ReferenceRecord, 3) // columns 5..15 absent

	report := Reconcile(values, ref, testColumns(), nil)
	if len(report.Matches)+len(report.Mismatches) != 0 {
		t.Error("fields without a reference column should be skipped")
	}
}
