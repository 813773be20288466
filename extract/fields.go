package extract

import (
	"github.com/mhenke/cellula/model"
	"github.com/mhenke/cellula/reconcile"
)

// ExtractFields maps each attribute to a canonical field code through
// the pattern table and normalizes its value. The first attribute key
// matching a code wins; later keys matching the same code are ignored.
// A value that will not normalize is recorded with a parse-error state
// so the reconciler can surface it instead of silently skipping the
// field.
func ExtractFields(attrs model.Attributes, table *PatternTable) *model.AuditValues {
	values := model.NewAuditValues()
	for _, key := range attrs.Keys() {
		code, ok := table.Match(key)
		if !ok {
			continue
		}
		if values.Get(code) != nil {
			continue
		}

		fv := &model.FieldValue{Raw: attrs[key], Key: key}
		if n, err := reconcile.NormalizeNumeric(fv.Raw); err != nil {
			fv.State = model.FieldParseError
		} else {
			fv.Normalized = n
			fv.State = model.FieldExtracted
		}
		values.Set(code, fv)
	}
	return values
}
