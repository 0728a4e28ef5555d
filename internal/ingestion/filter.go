package ingestion

import (
	"strings"

	"github.com/recalltrack/cfia-pipeline/internal/transform"
	"github.com/recalltrack/cfia-pipeline/internal/types"
)

// hazardKeywords select the food-safety issues this pipeline tracks.
var hazardKeywords = []string{"Salmonella", "Listeria", "E. Coli"}

// medicalDeviceIssue tags Listeria notices about medical devices, which are
// not food recalls despite matching the keyword.
const medicalDeviceIssue = "listeria - medical devices"

// FilterFoodRecalls keeps only rows whose issue mentions one of the tracked
// bacterial hazards, excluding the medical-device Listeria category. The
// issue column must be present in the header.
func FilterFoodRecalls(t *types.Table) (*types.Table, error) {
	issueIdx, ok := t.ColumnIndex(types.ColIssue)
	if !ok {
		return nil, &transform.SchemaError{Column: types.ColIssue}
	}

	out := &types.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if issueIdx >= len(row) {
			continue
		}
		issue := row[issueIdx]
		if !containsHazard(issue) {
			continue
		}
		if strings.Contains(strings.ToLower(issue), medicalDeviceIssue) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func containsHazard(issue string) bool {
	for _, keyword := range hazardKeywords {
		if strings.Contains(issue, keyword) {
			return true
		}
	}
	return false
}
