package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recalltrack/cfia-pipeline/internal/types"
)

func TestReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	content := "NID,Title,Issue\n100,\"Brand X, Deluxe recalled\",Salmonella\n101,Listeria in Brand Y,Listeria\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"NID", "Title", "Issue"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Brand X, Deluxe recalled", table.Cell(table.Rows[0], "Title"))
	assert.Equal(t, "Listeria", table.Cell(table.Rows[1], "Issue"))
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestReadTable_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestWriteTable_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.csv")

	original := &types.Table{
		Columns: []string{"NID", "Issue"},
		Rows: [][]string{
			{"100", "Salmonella"},
			{"101", "Listeria - Food"},
		},
	}
	require.NoError(t, WriteTable(path, original))

	reread, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, original.Columns, reread.Columns)
	assert.Equal(t, original.Rows, reread.Rows)
}

func TestRecordsTable(t *testing.T) {
	records := []types.RecallRecord{
		{
			NID: "100", Title: "Brand X recalled", Product: "Brand X",
			Issue: "E. Coli - O157:H7", MainIssue: "E. Coli", BacteriaSubtype: "O157:H7",
			Class: "Class 1", IsArchived: true,
		},
	}

	table := RecordsTable(records)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "O157:H7", table.Cell(table.Rows[0], "Bacteria subtype"))
	assert.Equal(t, "E. Coli", table.Cell(table.Rows[0], "Main issue"))
	assert.Equal(t, "1", table.Cell(table.Rows[0], types.ColArchived))
	assert.Equal(t, "Class 1", table.Cell(table.Rows[0], types.ColRecallClass))
}
