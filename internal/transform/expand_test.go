package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recalltrack/cfia-pipeline/internal/types"
)

func TestExpandClasses(t *testing.T) {
	table := &types.Table{
		Columns: []string{types.ColNID, types.ColIssue, types.ColRecallClass},
		Rows: [][]string{
			{"100", "Salmonella", "Class 1 - Class 2"},
			{"101", "Listeria", "Class 1"},
			{"102", "E. Coli", "Type II"},
			{"103", "Salmonella", "--"},
		},
	}

	expanded, err := ExpandClasses(table)
	require.NoError(t, err)
	require.Len(t, expanded.Rows, 5)

	// Composite class becomes one row per token, token order preserved,
	// other cells unchanged.
	assert.Equal(t, []string{"100", "Salmonella", "Class 1"}, expanded.Rows[0])
	assert.Equal(t, []string{"100", "Salmonella", "Class 2"}, expanded.Rows[1])

	// Single-token rows pass through 1:1.
	assert.Equal(t, []string{"101", "Listeria", "Class 1"}, expanded.Rows[2])

	// Legacy spelling maps to the modern label.
	assert.Equal(t, []string{"102", "E. Coli", "Class 2"}, expanded.Rows[3])

	// The unassigned placeholder survives expansion; the cleaner owns it.
	assert.Equal(t, []string{"103", "Salmonella", "--"}, expanded.Rows[4])
}

func TestExpandClasses_MissingClassColumn(t *testing.T) {
	table := &types.Table{
		Columns: []string{types.ColNID, types.ColIssue},
		Rows:    [][]string{{"100", "Salmonella"}},
	}

	_, err := ExpandClasses(table)
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, types.ColRecallClass, schemaErr.Column)
}

func TestExpandClasses_EmptyTable(t *testing.T) {
	table := &types.Table{Columns: []string{types.ColRecallClass}}

	expanded, err := ExpandClasses(table)
	require.NoError(t, err)
	assert.Empty(t, expanded.Rows)
}
