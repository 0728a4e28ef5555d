package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recalltrack/cfia-pipeline/internal/types"
)

func TestClean(t *testing.T) {
	records := []types.RecallRecord{
		{NID: "100", Issue: "Salmonella", Class: "Class 1"},
		{NID: "100", Issue: "Salmonella", Class: "Class 1"}, // exact duplicate
		{NID: "100", Issue: "Salmonella", Class: "Class 2"}, // same id, different class: kept
		{NID: "101", Issue: "Listeria", Class: "--"},        // unassigned placeholder
		{NID: "102", Issue: "E. Coli", Class: ""},           // missing class
		{NID: "103", Issue: "Listeria", Class: "Class 1"},
	}

	cleaned, stats := Clean(records)

	require.Len(t, cleaned, 3)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 2, stats.Unclassified)

	// Source order is preserved.
	assert.Equal(t, "Class 1", cleaned[0].Class)
	assert.Equal(t, "Class 2", cleaned[1].Class)
	assert.Equal(t, "103", cleaned[2].NID)
}

func TestClean_ZeroSurvivors(t *testing.T) {
	records := []types.RecallRecord{
		{NID: "100", Class: "--"},
		{NID: "101", Class: "--"},
	}

	cleaned, stats := Clean(records)

	assert.Empty(t, cleaned)
	assert.Equal(t, 2, stats.Unclassified)
	assert.Equal(t, 0, stats.Duplicates)
}

func TestClean_Empty(t *testing.T) {
	cleaned, stats := Clean(nil)
	assert.Empty(t, cleaned)
	assert.Zero(t, stats.Duplicates)
	assert.Zero(t, stats.Unclassified)
}
