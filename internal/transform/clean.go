package transform

import "github.com/recalltrack/cfia-pipeline/internal/types"

// classPlaceholder marks a recall whose class has not yet been assigned.
// Such rows are unusable for downstream analysis and are dropped.
const classPlaceholder = "--"

// CleanStats reports how many rows each cleaning step removed.
type CleanStats struct {
	Duplicates   int
	Unclassified int
}

// Clean removes exact full-record duplicates and records whose class is
// empty or still the unassigned placeholder, preserving source order.
// Zero survivors is a valid outcome; callers must treat an empty result as
// nothing to process, not an error.
func Clean(records []types.RecallRecord) ([]types.RecallRecord, CleanStats) {
	var stats CleanStats
	seen := make(map[types.RecallRecord]struct{}, len(records))
	cleaned := make([]types.RecallRecord, 0, len(records))

	for _, rec := range records {
		if _, dup := seen[rec]; dup {
			stats.Duplicates++
			continue
		}
		seen[rec] = struct{}{}

		if rec.Class == "" || rec.Class == classPlaceholder {
			stats.Unclassified++
			continue
		}
		cleaned = append(cleaned, rec)
	}
	return cleaned, stats
}
