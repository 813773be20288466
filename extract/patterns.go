package extract

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/mhenke/cellula/model"
)

//go:embed patterns.json
var defaultPatternsJSON []byte

// patternSpec is the JSON shape of one pattern-table entry.
type patternSpec struct {
	Column   int      `json:"column"`
	Patterns []string `json:"patterns"`
}

type fieldEntry struct {
	column   int
	patterns []*regexp.Regexp
}

// PatternTable maps canonical field codes to the regex patterns that
// recognize them inside attribute keys, and to their column position in
// the reference record. Tables are immutable once loaded and safe for
// concurrent use.
type PatternTable struct {
	entries map[model.FieldCode]fieldEntry
}

// LoadPatternTable reads and validates a JSON pattern table. A table
// that is malformed, empty, or names an unknown field code is rejected
// outright rather than degrading into an empty mapping.
func LoadPatternTable(r io.Reader) (*PatternTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern table: %w", err)
	}
	return ParsePatternTable(data)
}

// ParsePatternTable parses and validates a JSON pattern table.
func ParsePatternTable(data []byte) (*PatternTable, error) {
	var specs map[model.FieldCode]patternSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("malformed pattern table: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("pattern table is empty")
	}

	known := make(map[model.FieldCode]bool)
	for _, code := range model.AllFieldCodes() {
		known[code] = true
	}

	table := &PatternTable{entries: make(map[model.FieldCode]fieldEntry, len(specs))}
	for code, spec := range specs {
		if !known[code] {
			return nil, fmt.Errorf("pattern table names unknown field code %q", code)
		}
		if spec.Column < 1 {
			return nil, fmt.Errorf("field %q: column %d out of range", code, spec.Column)
		}
		if len(spec.Patterns) == 0 {
			return nil, fmt.Errorf("field %q has no patterns", code)
		}
		entry := fieldEntry{column: spec.Column}
		for _, p := range spec.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("field %q: invalid pattern %q: %w", code, p, err)
			}
			entry.patterns = append(entry.patterns, re)
		}
		table.entries[code] = entry
	}
	return table, nil
}

// DefaultPatternTable returns the table shipped with the package,
// covering the standard reporting form.
func DefaultPatternTable() *PatternTable {
	table, err := ParsePatternTable(defaultPatternsJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded pattern table is invalid: %v", err))
	}
	return table
}

// Match returns the first field code, in canonical order, whose pattern
// set matches the attribute key.
func (t *PatternTable) Match(key string) (model.FieldCode, bool) {
	for _, code := range model.AllFieldCodes() {
		entry, ok := t.entries[code]
		if !ok {
			continue
		}
		for _, re := range entry.patterns {
			if re.MatchString(key) {
				return code, true
			}
		}
	}
	return "", false
}

// Column returns the reference-record column for a field code.
func (t *PatternTable) Column(code model.FieldCode) (int, bool) {
	entry, ok := t.entries[code]
	if !ok {
		return 0, false
	}
	return entry.column, true
}

// Codes returns the field codes present in the table, in canonical
// order.
func (t *PatternTable) Codes() []model.FieldCode {
	var codes []model.FieldCode
	for _, code := range model.AllFieldCodes() {
		if _, ok := t.entries[code]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
