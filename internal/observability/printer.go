// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/recalltrack/cfia-pipeline/internal/transform"
	"github.com/recalltrack/cfia-pipeline/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxRecordsToShow is the default number of records to display in previews
	maxRecordsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCleanStats outputs the rows removed by each cleaning step.
func (p *Printer) PrintCleanStats(stats transform.CleanStats, before, after int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows in:            %d\n", before))
	sb.WriteString(fmt.Sprintf("Exact duplicates:   %d\n", stats.Duplicates))
	sb.WriteString(fmt.Sprintf("Unclassified rows:  %d\n", stats.Unclassified))
	sb.WriteString(fmt.Sprintf("Rows out:           %d", after))
	p.printBox("Record Cleaning", sb.String())
}

// PrintRecordPreview outputs the title and derived product of the leading
// records, mirroring the transform stage's sanity check.
func (p *Printer) PrintRecordPreview(records []types.RecallRecord) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(records), maxRecordsToShow)
	for i := 0; i < count; i++ {
		product := records[i].Product
		if product == "" {
			product = "(no product name)"
		}
		sb.WriteString(fmt.Sprintf("• %s → %s\n", records[i].Title, product))
	}
	if len(records) > maxRecordsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(records)-maxRecordsToShow))
	}
	p.printBox("Normalized Records", strings.TrimRight(sb.String(), "\n"))
}

// PrintBatchSummary outputs the per-stage row counts for a completed batch.
func (p *Printer) PrintBatchSummary(batchDate string, filtered, expanded, cleaned, unseen, inserted int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch date:       %s\n", batchDate))
	sb.WriteString(fmt.Sprintf("Filtered rows:    %d\n", filtered))
	sb.WriteString(fmt.Sprintf("After expansion:  %d\n", expanded))
	sb.WriteString(fmt.Sprintf("After cleaning:   %d\n", cleaned))
	sb.WriteString(fmt.Sprintf("New records:      %d\n", unseen))
	sb.WriteString(fmt.Sprintf("Inserted:         %d", inserted))
	p.printBox("Batch Summary", sb.String())
}
