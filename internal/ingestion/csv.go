// Package ingestion handles batch file I/O for the recall pipeline: reading
// and writing the delimited CFIA dataset, isolating food-safety records, and
// resolving the dated batch filenames.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/recalltrack/cfia-pipeline/internal/types"
)

// ReadTable parses a delimited file into an in-memory table. The first row
// is the header; remaining rows keep source order.
func ReadTable(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // header defines the layout; short rows are tolerated

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("batch file %s is empty", filepath.Base(path))
	}

	return &types.Table{Columns: rows[0], Rows: rows[1:]}, nil
}

// WriteTable persists a table as a delimited file, creating the parent
// directory if needed.
func WriteTable(path string, t *types.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// RecordsTable renders normalized records back into tabular form using the
// canonical column names, for the processed batch file.
func RecordsTable(records []types.RecallRecord) *types.Table {
	t := &types.Table{
		Columns: []string{
			types.ColNID, types.ColTitle, types.ColURL, types.ColProduct,
			types.ColIssue, "Main issue", "Secondary issue", "Bacteria subtype",
			types.ColCategory, types.ColRecallClass, types.ColLastUpdated, types.ColArchived,
		},
	}
	for _, rec := range records {
		archived := "0"
		if rec.IsArchived {
			archived = "1"
		}
		t.Rows = append(t.Rows, []string{
			rec.NID, rec.Title, rec.URL, rec.Product,
			rec.Issue, rec.MainIssue, rec.SecondaryIssue, rec.BacteriaSubtype,
			rec.Category, rec.Class, rec.LastUpdated, archived,
		})
	}
	return t
}
