// Package parsing provides the free-text heuristics that derive structured
// recall fields: product names from notice titles and hazard decompositions
// from issue descriptions.
package parsing

import (
	"regexp"
	"strings"
)

// inPattern captures everything after the first word-boundary "in " in a title.
var inPattern = regexp.MustCompile(`(?i)\bin (.*)`)

// productTriggers are the phrases that separate a product name from the rest
// of a recall title. Order matters only for documentation; the earliest match
// in the title wins regardless of list position.
var productTriggers = []string{
	"recalled due to",
	"recalled",
	"may contain",
	"may be contaminated with",
	"due to",
	"possible contamination with",
	"possible presence of",
	"may be unsafe",
}

// DeriveProductName attempts to extract a product name from a recall title.
// It first looks for the pattern "in <remainder>" anywhere in the title and
// takes the remainder; otherwise it takes the text preceding the earliest
// trigger phrase. The second return value is false when neither strategy
// matched, which callers must treat as a missing product name, not an error.
func DeriveProductName(title string) (string, bool) {
	if m := inPattern.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	lower := strings.ToLower(title)
	earliest := -1
	for _, trigger := range productTriggers {
		idx := strings.Index(lower, trigger)
		if idx >= 0 && (earliest < 0 || idx < earliest) {
			earliest = idx
		}
	}
	if earliest >= 0 {
		return strings.TrimSpace(title[:earliest]), true
	}
	return "", false
}
