package parsing

import "strings"

// issueDelimiter separates the hazard parts of an issue description.
const issueDelimiter = " - "

// RewriteIssue standardizes issue strings that omit the hazard delimiter.
// The dataset writes the O157:H7 serotype both with and without a dash;
// the undashed form must be rewritten before decomposition so the subtype
// branch fires.
func RewriteIssue(issue string) string {
	if issue == "E. Coli O157:H7" {
		return "E. Coli - O157:H7"
	}
	return issue
}

// DecomposeIssue splits an issue description into the main hazard, an
// optional co-occurring secondary hazard, and an optional bacterial subtype.
//
// The string is split on " - " and each part trimmed. The first part is
// always the main issue. "Listeria - Food" carries no additional signal and
// yields an empty secondary issue. For "E. Coli" issues the second part is
// the serotype subtype and a third part, when present, is the secondary
// issue. In all other multi-part cases the second part is the secondary
// issue; only E. Coli records carry a subtype.
func DecomposeIssue(issue string) (mainIssue, secondaryIssue, subtype string) {
	parts := strings.Split(issue, issueDelimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	mainIssue = parts[0]
	if len(parts) < 2 {
		return mainIssue, "", ""
	}

	switch {
	case strings.EqualFold(mainIssue, "Listeria") && strings.EqualFold(parts[1], "Food"):
		// Defined as carrying no additional signal.
	case strings.HasPrefix(strings.ToLower(mainIssue), "e. coli"):
		subtype = parts[1]
		if len(parts) > 2 {
			secondaryIssue = parts[2]
		}
	default:
		secondaryIssue = parts[1]
	}
	return mainIssue, secondaryIssue, subtype
}
