package extract

import (
	"strings"

	"github.com/mhenke/cellula/model"
)

// maxSingleCellLength is the cutoff above which a lone cell is treated
// as running text rather than a key/value row.
const maxSingleCellLength = 100

// ProcessRow folds one OCR'd table row into the attribute set. Rows
// with two or more non-empty cells become a key/value pair: the last
// cell is the value, the cells before it joined with spaces form the
// key. A row with a single cell is scanned for the registration
// identifier and then split at its first colon; colon-less single cells
// and overlong cells are dropped.
//
// The returned identifier is non-zero only when this row contained one;
// callers keep the first identifier they see.
func ProcessRow(attrs model.Attributes, cells []string) (int, bool) {
	var filled []string
	for _, cell := range cells {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			filled = append(filled, trimmed)
		}
	}

	switch len(filled) {
	case 0:
		return 0, false

	case 1:
		content := filled[0]
		if len(content) > maxSingleCellLength {
			return 0, false
		}
		id, found := ExtractIdentifier(content)
		if key, value, ok := strings.Cut(content, ":"); ok {
			attrs.Add(strings.TrimSpace(key), strings.TrimSpace(value))
		}
		return id, found

	default:
		value := filled[len(filled)-1]
		keyParts := filled[:len(filled)-1]
		attrs.Add(strings.Join(keyParts, " "), value)
		return 0, false
	}
}
