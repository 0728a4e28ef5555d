// Package transform implements the per-batch record transformations: class
// row expansion, field normalization, issue annotation, and record cleaning.
package transform

import (
	"strings"

	"github.com/recalltrack/cfia-pipeline/internal/types"
)

// classDelimiter joins composite classification values such as
// "Class 1 - Class 2".
const classDelimiter = " - "

// legacyClassTokens maps obsolete classification spellings to their modern
// labels.
var legacyClassTokens = map[string]string{
	"Type II": "Class 2",
}

// ExpandClasses emits one row per classification token. A row whose
// "Recall class" cell holds a composite value becomes one full copy of the
// row per token, all other cells unchanged and token order preserved;
// single-token rows pass through 1:1. Legacy class spellings are mapped to
// their modern labels as tokens are emitted.
func ExpandClasses(t *types.Table) (*types.Table, error) {
	classIdx, ok := t.ColumnIndex(types.ColRecallClass)
	if !ok {
		return nil, &SchemaError{Column: types.ColRecallClass}
	}

	out := &types.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if classIdx >= len(row) {
			out.Rows = append(out.Rows, row)
			continue
		}
		for _, token := range strings.Split(row[classIdx], classDelimiter) {
			token = canonicalClass(token)
			expanded := make([]string, len(row))
			copy(expanded, row)
			expanded[classIdx] = token
			out.Rows = append(out.Rows, expanded)
		}
	}
	return out, nil
}

// canonicalClass trims a class token and maps legacy spellings.
func canonicalClass(token string) string {
	token = strings.TrimSpace(token)
	if modern, ok := legacyClassTokens[token]; ok {
		return modern
	}
	return token
}
