package reconcile

import (
	"github.com/mhenke/cellula/model"
)

// ColumnMap resolves a field code to its column position in the
// reference record.
type ColumnMap interface {
	Column(code model.FieldCode) (int, bool)
}

// Comparison records the outcome for a single field code.
type Comparison struct {
	Code model.FieldCode

	// Key and Raw identify where the document value came from. Empty
	// for missing fields.
	Key string
	Raw string

	// Extracted is the normalized document value; Reference is the
	// value from the reference record.
	Extracted int64
	Reference int64

	// Missing marks a required field that was never extracted, as
	// opposed to one that was extracted with the wrong value.
	Missing bool

	// ParseError marks a field whose raw text could not be normalized.
	ParseError bool
}

// Report is the outcome of reconciling one document against its
// reference record.
type Report struct {
	Matches    []Comparison
	Mismatches []Comparison

	TotalRequired      int
	MatchedRequired    int
	MissingRequired    int
	MismatchedRequired int

	// MatchPercentage is MatchedRequired over TotalRequired. A document
	// with no required fields scores 100.
	MatchPercentage float64

	// Passed is true iff no required field mismatched, was missing, or
	// failed to parse. Fields outside the required set never block a
	// pass, even when extracted and wrong.
	Passed bool
}

// Reconcile compares the extracted values against the reference record,
// fills in the per-field Matched/Missing flags on values, and returns
// the report. Field codes without a column in the map or without a
// value in the reference record are skipped.
func Reconcile(values *model.AuditValues, ref model.ReferenceRecord, columns ColumnMap, required []model.FieldCode) Report {
	requiredSet := make(map[model.FieldCode]bool, len(required))
	for _, code := range required {
		requiredSet[code] = true
	}

	var report Report
	report.TotalRequired = len(required)

	for _, code := range model.AllFieldCodes() {
		column, ok := columns.Column(code)
		if !ok {
			continue
		}
		refValue, ok := ref.Value(column)
		if !ok {
			continue
		}

		fv := values.Get(code)
		switch {
		case fv == nil || fv.State == model.FieldMissing:
			// Absent fields only matter when required.
			if !requiredSet[code] {
				continue
			}
			if fv == nil {
				fv = &model.FieldValue{State: model.FieldMissing}
				values.Set(code, fv)
			}
			fv.Missing = true
			report.Mismatches = append(report.Mismatches, Comparison{
				Code:      code,
				Reference: refValue,
				Missing:   true,
			})
			report.MissingRequired++

		case fv.State == model.FieldParseError:
			report.Mismatches = append(report.Mismatches, Comparison{
				Code:       code,
				Key:        fv.Key,
				Raw:        fv.Raw,
				Reference:  refValue,
				ParseError: true,
			})
			if requiredSet[code] {
				report.MismatchedRequired++
			}

		case fv.Normalized == refValue:
			fv.Matched = true
			report.Matches = append(report.Matches, Comparison{
				Code:      code,
				Key:       fv.Key,
				Raw:       fv.Raw,
				Extracted: fv.Normalized,
				Reference: refValue,
			})
			if requiredSet[code] {
				report.MatchedRequired++
			}

		default:
			report.Mismatches = append(report.Mismatches, Comparison{
				Code:      code,
				Key:       fv.Key,
				Raw:       fv.Raw,
				Extracted: fv.Normalized,
				Reference: refValue,
			})
			if requiredSet[code] {
				report.MismatchedRequired++
			}
		}
	}

	if report.TotalRequired > 0 {
		report.MatchPercentage = float64(report.MatchedRequired) / float64(report.TotalRequired) * 100
	} else {
		report.MatchPercentage = 100
	}
	report.Passed = report.MissingRequired == 0 && report.MismatchedRequired == 0
	return report
}
