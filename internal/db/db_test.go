package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recalltrack/cfia-pipeline/internal/types"
)

func TestRecordRow_MatchesColumnOrder(t *testing.T) {
	rec := types.RecallRecord{
		NID:             "100",
		Title:           "Brand X recalled",
		URL:             "https://example.org/100",
		Product:         "Brand X",
		Issue:           "E. Coli - O157:H7",
		MainIssue:       "E. Coli",
		SecondaryIssue:  "",
		BacteriaSubtype: "O157:H7",
		Category:        "Food",
		Class:           "Class 1",
		LastUpdated:     "2025-06-02",
		IsArchived:      true,
	}

	row := recordRow(rec)
	require.Len(t, row, len(recallColumns))

	assert.Equal(t, "100", row[0])         // nid
	assert.Equal(t, "E. Coli", row[5])     // main_issue
	assert.Equal(t, "O157:H7", row[7])     // bacteria_subtype
	assert.Equal(t, "Class 1", row[9])     // class
	assert.Equal(t, true, row[len(row)-1]) // is_archived
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PersistenceError{Op: "append records", Cause: cause}

	assert.Contains(t, err.Error(), "append records")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)

	bare := &PersistenceError{Op: "init schema"}
	assert.Equal(t, "persistence error: init schema", bare.Error())
}
