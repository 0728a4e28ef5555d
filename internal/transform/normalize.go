package transform

import (
	"strings"

	"github.com/recalltrack/cfia-pipeline/internal/parsing"
	"github.com/recalltrack/cfia-pipeline/internal/types"
)

// requiredColumns must be present in the input header for a batch to be
// processable at all. Missing them aborts the batch with a SchemaError.
var requiredColumns = []string{types.ColIssue, types.ColRecallClass}

// NormalizeFields maps external column names onto RecallRecord fields,
// coerces the archived flag to a boolean, and backfills missing product
// names from the title via the text extractor. A product name that is
// present is never overwritten, and a backfill that matches no pattern
// leaves the product empty; both are handled conditions, not errors.
func NormalizeFields(t *types.Table) ([]types.RecallRecord, error) {
	for _, col := range requiredColumns {
		if _, ok := t.ColumnIndex(col); !ok {
			return nil, &SchemaError{Column: col}
		}
	}

	records := make([]types.RecallRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := types.RecallRecord{
			NID:         strings.TrimSpace(t.Cell(row, types.ColNID)),
			Title:       t.Cell(row, types.ColTitle),
			URL:         t.Cell(row, types.ColURL),
			Product:     t.Cell(row, types.ColProduct),
			Issue:       t.Cell(row, types.ColIssue),
			Category:    t.Cell(row, types.ColCategory),
			Class:       t.Cell(row, types.ColRecallClass),
			LastUpdated: t.Cell(row, types.ColLastUpdated),
			IsArchived:  parseArchived(t.Cell(row, types.ColArchived)),
		}

		if rec.Product == "" {
			if name, ok := parsing.DeriveProductName(rec.Title); ok {
				rec.Product = name
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

// AnnotateIssues rewrites non-standard issue strings and fills the derived
// hazard fields on every record. It must run after NormalizeFields;
// decomposition requires the rewritten issue form.
func AnnotateIssues(records []types.RecallRecord) {
	for i := range records {
		records[i].Issue = parsing.RewriteIssue(records[i].Issue)
		main, secondary, subtype := parsing.DecomposeIssue(records[i].Issue)
		records[i].MainIssue = main
		records[i].SecondaryIssue = secondary
		records[i].BacteriaSubtype = subtype
	}
}

// parseArchived coerces the archived flag column to a boolean. The source
// data writes it as 0/1; textual spellings are accepted for robustness.
func parseArchived(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "y":
		return true
	default:
		return false
	}
}
