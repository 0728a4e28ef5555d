// Package merge implements the idempotent comparison of a candidate batch
// against the set of recall ids already persisted.
package merge

import "github.com/recalltrack/cfia-pipeline/internal/types"

// Reconcile partitions candidates by membership in knownIDs and returns only
// the unseen subset, in candidate order. Presence of an id alone is enough
// to discard a candidate; changed versions of an already-recorded recall are
// never re-inserted. knownIDs is read-only and an empty set on either side
// is safe.
func Reconcile(candidates []types.RecallRecord, knownIDs map[string]struct{}) []types.RecallRecord {
	unseen := make([]types.RecallRecord, 0, len(candidates))
	for _, rec := range candidates {
		if _, exists := knownIDs[rec.NID]; exists {
			continue
		}
		unseen = append(unseen, rec)
	}
	return unseen
}
