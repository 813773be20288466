package model

import "sort"

// FieldCode identifies one reconciled financial figure on the reporting
// form. The codes follow the column names of the reference data set.
type FieldCode string

// Canonical field codes in reference-record column order.
const (
	FieldP033     FieldCode = "p033"
	FieldP034     FieldCode = "p034"
	FieldP035     FieldCode = "p035"
	FieldP036     FieldCode = "p036"
	FieldAb2S1N01 FieldCode = "ab2s1n01"
	FieldAb2S1N02 FieldCode = "ab2s1n02"
	FieldAb2S1N03 FieldCode = "ab2s1n03"
	FieldAb2S1N04 FieldCode = "ab2s1n04"
	FieldAb2S1N05 FieldCode = "ab2s1n05"
	FieldAb2S1N06 FieldCode = "ab2s1n06"
	FieldAb2S1N07 FieldCode = "ab2s1n07"
	FieldAb2S1N08 FieldCode = "ab2s1n08"
	FieldAb2S1N09 FieldCode = "ab2s1n09"
	FieldAb2S1N10 FieldCode = "ab2s1n10"
	FieldAb2S1N11 FieldCode = "ab2s1n11"
)

// AllFieldCodes returns the canonical field codes in reference-record
// column order.
func AllFieldCodes() []FieldCode {
	return []FieldCode{
		FieldP033, FieldP034, FieldP035, FieldP036,
		FieldAb2S1N01, FieldAb2S1N02, FieldAb2S1N03, FieldAb2S1N04,
		FieldAb2S1N05, FieldAb2S1N06, FieldAb2S1N07, FieldAb2S1N08,
		FieldAb2S1N09, FieldAb2S1N10, FieldAb2S1N11,
	}
}

// FieldState describes what happened to a field during extraction.
type FieldState int

const (
	// FieldMissing means no attribute key matched the field's patterns.
	FieldMissing FieldState = iota

	// FieldExtracted means the field was found and parsed to a number.
	FieldExtracted

	// FieldParseError means the field was found but its value could not
	// be parsed as a number.
	FieldParseError
)

// String returns a short label for the state.
func (s FieldState) String() string {
	switch s {
	case FieldExtracted:
		return "extracted"
	case FieldParseError:
		return "parse error"
	default:
		return "missing"
	}
}

// FieldValue holds one extracted field: the raw OCR text, the attribute
// key it came from, the normalized numeric value, and the flags the
// reconciler fills in.
type FieldValue struct {
	Raw        string
	Key        string
	Normalized int64
	State      FieldState

	// Set during reconciliation.
	Matched bool
	Missing bool
}

// AuditValues accumulates extracted fields for one document, keyed by
// field code, plus the domain identifier if one was found.
type AuditValues struct {
	Identifier    int
	HasIdentifier bool
	Fields        map[FieldCode]*FieldValue
}

// NewAuditValues returns an empty accumulator.
func NewAuditValues() *AuditValues {
	return &AuditValues{Fields: make(map[FieldCode]*FieldValue)}
}

// Get returns the value for a field code, or nil if it was not extracted.
func (a *AuditValues) Get(code FieldCode) *FieldValue {
	return a.Fields[code]
}

// Set records a field value, replacing any earlier extraction.
func (a *AuditValues) Set(code FieldCode, v *FieldValue) {
	a.Fields[code] = v
}

// Codes returns the extracted field codes in lexical order.
func (a *AuditValues) Codes() []FieldCode {
	codes := make([]FieldCode, 0, len(a.Fields))
	for code := range a.Fields {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Attributes is the per-document key/value set accumulated from OCR'd
// table rows. Keys are unique; a later write for the same key replaces
// the earlier value.
type Attributes map[string]string

// Add records a key/value pair.
func (a Attributes) Add(key, value string) {
	a[key] = value
}

// Keys returns the attribute keys in lexical order, so that iteration
// over the set is deterministic.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReferenceRecord is the canonical row of values fetched by identifier
// lookup. The core treats it as an opaque ordered tuple owned by the
// persistence layer; column 0 is the record's own key, the field values
// start at column 1.
type ReferenceRecord []int64

// Value returns the value at the given column position.
func (r ReferenceRecord) Value(column int) (int64, bool) {
	if column < 0 || column >= len(r) {
		return 0, false
	}
	return r[column], true
}

// LookupFunc resolves a reference record by 8-digit domain identifier.
// It returns false if no record exists for the identifier.
type LookupFunc func(identifier int) (ReferenceRecord, bool)
