// Package types provides type definitions for structured data used throughout the recall pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// External column names as they appear in the CFIA open-data CSV header.
const (
	ColNID         = "NID"
	ColTitle       = "Title"
	ColURL         = "URL"
	ColProduct     = "Product"
	ColIssue       = "Issue"
	ColCategory    = "Category"
	ColRecallClass = "Recall class"
	ColLastUpdated = "Last updated"
	ColArchived    = "Archived"
)

// RecallRecord represents one normalized row of the recall dataset.
// All fields are plain values so records can be compared for exact-duplicate
// removal and used as map keys.
type RecallRecord struct {
	NID             string `json:"nid"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	Product         string `json:"product"`
	Issue           string `json:"issue"`
	MainIssue       string `json:"main_issue"`
	SecondaryIssue  string `json:"secondary_issue,omitempty"`
	BacteriaSubtype string `json:"bacteria_subtype,omitempty"`
	Category        string `json:"category"`
	Class           string `json:"class"`
	LastUpdated     string `json:"last_updated"`
	IsArchived      bool   `json:"is_archived"`
}
