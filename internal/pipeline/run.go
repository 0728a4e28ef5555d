// Package pipeline provides the high-level orchestration for one dated batch
// of the recall ingestion process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/recalltrack/cfia-pipeline/internal/fetch"
	"github.com/recalltrack/cfia-pipeline/internal/ingestion"
	"github.com/recalltrack/cfia-pipeline/internal/merge"
	"github.com/recalltrack/cfia-pipeline/internal/observability"
	"github.com/recalltrack/cfia-pipeline/internal/transform"
	"github.com/recalltrack/cfia-pipeline/internal/types"
)

// Store is the persistence collaborator the coordinator consumes. Appends
// are expected to be atomic: a failed append must leave no partial rows.
type Store interface {
	FetchKnownIDs(ctx context.Context) (map[string]struct{}, error)
	AppendRecords(ctx context.Context, records []types.RecallRecord) (int, error)
}

// RunOptions holds configuration for running one batch through the pipeline.
type RunOptions struct {
	BatchDate  time.Time
	DataURL    string // Remote CSV to download
	SourceFile string // Local raw file used instead of downloading, when set
	DataDir    string
	FilePrefix string
	Fetch      *fetch.Options
	Verbose    bool
	Store      Store
}

// Result reports the per-stage row counts for a completed batch.
type Result struct {
	BatchDate     string
	BatchFile     string
	ProcessedFile string
	Filtered      int
	Expanded      int
	Cleaned       int
	Unseen        int
	Inserted      int
	CleanStats    transform.CleanStats
}

// RunPipeline processes one dated batch end to end: download, hazard filter,
// class expansion, field normalization, issue annotation, cleaning, merge
// against the known-id set, and persistence of the unseen subset. Any fatal
// stage error abandons the batch with no partial persistence; the error
// carries the batch date and stage for diagnosis. The coordinator performs
// no retries itself.
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("pipeline: store is required")
	}
	if opts.DataURL == "" && opts.SourceFile == "" {
		return nil, fmt.Errorf("pipeline: either a data URL or a source file is required")
	}
	if opts.FilePrefix == "" {
		opts.FilePrefix = ingestion.DefaultFilePrefix
	}
	if opts.BatchDate.IsZero() {
		opts.BatchDate = ingestion.BatchDate(time.Now())
	}

	batchDate := opts.BatchDate.Format("2006-01-02")
	printer := observability.NewPrinter(os.Stdout)

	stageErr := func(stage string, err error) error {
		return fmt.Errorf("batch %s: %s: %w", batchDate, stage, err)
	}

	// Step 1/6: acquire the raw dataset and the known-id set. These are the
	// two external collaborators and independent of each other, so they run
	// concurrently; the transform core below stays strictly sequential.
	fmt.Printf("Step 1/6: Downloading raw dataset and fetching known ids...\n")

	rawPath := opts.SourceFile
	var knownIDs map[string]struct{}

	g, gCtx := errgroup.WithContext(ctx)
	if rawPath == "" {
		rawPath = filepath.Join(opts.DataDir, ingestion.RawFilename)
		g.Go(func() error {
			if err := fetch.Download(gCtx, opts.DataURL, rawPath, opts.Fetch); err != nil {
				return stageErr("download", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		ids, err := opts.Store.FetchKnownIDs(gCtx)
		if err != nil {
			return stageErr("fetch known ids", err)
		}
		knownIDs = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Step 2/6: isolate food-safety records and write the dated batch file.
	fmt.Printf("Step 2/6: Filtering food recalls...\n")
	raw, err := ingestion.ReadTable(rawPath)
	if err != nil {
		return nil, stageErr("read raw dataset", err)
	}
	filtered, err := ingestion.FilterFoodRecalls(raw)
	if err != nil {
		return nil, stageErr("hazard filter", err)
	}
	fmt.Printf("Found %d food recalls.\n", len(filtered.Rows))

	batchFile := ingestion.BatchFilename(opts.BatchDate, opts.FilePrefix, ingestion.DefaultFileSuffix)
	batchPath := filepath.Join(opts.DataDir, batchFile)
	if err := ingestion.WriteTable(batchPath, filtered); err != nil {
		return nil, stageErr("write batch file", err)
	}

	// Step 3/6: expand composite classifications into one row per class.
	fmt.Printf("Step 3/6: Expanding classification rows...\n")
	expanded, err := transform.ExpandClasses(filtered)
	if err != nil {
		return nil, stageErr("expand classes", err)
	}

	// Step 4/6: normalize fields and derive the hazard decomposition.
	fmt.Printf("Step 4/6: Normalizing fields...\n")
	records, err := transform.NormalizeFields(expanded)
	if err != nil {
		return nil, stageErr("normalize fields", err)
	}
	transform.AnnotateIssues(records)
	if opts.Verbose {
		printer.PrintRecordPreview(records)
	}

	// Step 5/6: drop duplicates and unclassified rows.
	fmt.Printf("Step 5/6: Cleaning records...\n")
	cleaned, stats := transform.Clean(records)
	if opts.Verbose {
		printer.PrintCleanStats(stats, len(records), len(cleaned))
	}

	processedFile := ingestion.ProcessedFilename(batchFile)
	processedPath := filepath.Join(opts.DataDir, processedFile)
	if err := ingestion.WriteTable(processedPath, ingestion.RecordsTable(cleaned)); err != nil {
		return nil, stageErr("write processed file", err)
	}

	// Step 6/6: persist only records the store has not seen. An empty
	// cleaned or unseen set is "nothing to process", not a failure.
	fmt.Printf("Step 6/6: Merging against %d known ids...\n", len(knownIDs))
	unseen := merge.Reconcile(cleaned, knownIDs)

	inserted := 0
	if len(unseen) > 0 {
		inserted, err = opts.Store.AppendRecords(ctx, unseen)
		if err != nil {
			return nil, stageErr("persist records", err)
		}
		fmt.Printf("%d records inserted successfully.\n", inserted)
	} else {
		fmt.Printf("No new records to insert.\n")
	}

	result := &Result{
		BatchDate:     batchDate,
		BatchFile:     batchFile,
		ProcessedFile: processedFile,
		Filtered:      len(filtered.Rows),
		Expanded:      len(expanded.Rows),
		Cleaned:       len(cleaned),
		Unseen:        len(unseen),
		Inserted:      inserted,
		CleanStats:    stats,
	}
	if opts.Verbose {
		printer.PrintBatchSummary(batchDate, result.Filtered, result.Expanded, result.Cleaned, result.Unseen, result.Inserted)
	}
	return result, nil
}

// FetchBatch performs only the extract phase: download the raw dataset,
// apply the hazard filter, and write the dated batch file. Used by the
// fetch subcommand; RunPipeline repeats the filter itself so the two stay
// independently runnable.
func FetchBatch(ctx context.Context, opts RunOptions) (string, int, error) {
	if opts.DataURL == "" {
		return "", 0, fmt.Errorf("pipeline: a data URL is required")
	}
	if opts.FilePrefix == "" {
		opts.FilePrefix = ingestion.DefaultFilePrefix
	}
	if opts.BatchDate.IsZero() {
		opts.BatchDate = ingestion.BatchDate(time.Now())
	}
	batchDate := opts.BatchDate.Format("2006-01-02")

	rawPath := filepath.Join(opts.DataDir, ingestion.RawFilename)
	if err := fetch.Download(ctx, opts.DataURL, rawPath, opts.Fetch); err != nil {
		return "", 0, fmt.Errorf("batch %s: download: %w", batchDate, err)
	}

	raw, err := ingestion.ReadTable(rawPath)
	if err != nil {
		return "", 0, fmt.Errorf("batch %s: read raw dataset: %w", batchDate, err)
	}
	filtered, err := ingestion.FilterFoodRecalls(raw)
	if err != nil {
		return "", 0, fmt.Errorf("batch %s: hazard filter: %w", batchDate, err)
	}

	batchPath := filepath.Join(opts.DataDir, ingestion.BatchFilename(opts.BatchDate, opts.FilePrefix, ingestion.DefaultFileSuffix))
	if err := ingestion.WriteTable(batchPath, filtered); err != nil {
		return "", 0, fmt.Errorf("batch %s: write batch file: %w", batchDate, err)
	}
	return batchPath, len(filtered.Rows), nil
}
