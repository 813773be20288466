// Package reconcile compares extracted form values against a reference
// record and produces a structured match/mismatch report.
package reconcile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when a raw value cannot be normalized to a
// number.
var ErrNotNumeric = errors.New("value is not numeric")

// NormalizeNumeric parses a European-formatted numeric string to an
// integer. Dots are thousands separators and are stripped; a comma is
// the decimal separator, and any fractional part is truncated:
//
//	"1.234,56" -> 1234
//	"12,5"     -> 12
//	"1234"     -> 1234
func NormalizeNumeric(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrNotNumeric)
	}

	s = strings.ReplaceAll(s, ".", "")
	if strings.Contains(s, ",") {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, raw)
		}
		return int64(f), nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, raw)
	}
	return n, nil
}
