package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/recalltrack/cfia-pipeline/internal/config"
	"github.com/recalltrack/cfia-pipeline/internal/db"
	"github.com/recalltrack/cfia-pipeline/internal/fetch"
	"github.com/recalltrack/cfia-pipeline/internal/ingestion"
	"github.com/recalltrack/cfia-pipeline/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full ingestion pipeline end-to-end for one batch",
	Long: `Downloads the CFIA dataset, filters food recalls, normalizes and cleans the records, and appends records not yet in the database.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runDate        string
	runDataURL     string
	runDataDir     string
	runSourceFile  string
	runFilePrefix  string
	runChunkSize   int
	runMaxRetries  int
	runDatabaseURL string
	runVerbose     bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVar(&runDate, "date", "", "Batch date as YYYY-MM-DD (defaults to yesterday)")
	runCommand.Flags().StringVar(&runDataURL, "data-url", "", "Remote CSV to ingest (defaults to the CFIA open-data URL)")
	runCommand.Flags().StringVarP(&runDataDir, "data-dir", "d", "", "Directory for batch files (default \"recalls\")")
	runCommand.Flags().StringVar(&runSourceFile, "source-file", "", "Local raw CSV to process instead of downloading")
	runCommand.Flags().StringVar(&runFilePrefix, "file-prefix", "", "Dated batch filename prefix (default \"cfia_food_recalls_\")")
	runCommand.Flags().IntVar(&runChunkSize, "chunk-size", 0, "Download copy-buffer size in bytes")
	runCommand.Flags().IntVar(&runMaxRetries, "max-retries", 0, "Retry ceiling for transient download failures")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for persistence (defaults to DATABASE_URL env var)
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

// mergedConfig loads the optional config file and applies flag overrides,
// env fallbacks, and defaults, in that priority order.
func mergedConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Command-line args take priority; only override if the flag was set.
	if cmd.Flags().Changed("data-url") {
		cfg.DataURL = runDataURL
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = runDataDir
	}
	if cmd.Flags().Changed("file-prefix") {
		cfg.FilePrefix = runFilePrefix
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = runChunkSize
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = runMaxRetries
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// batchDate resolves the --date flag, defaulting to yesterday.
func batchDate() (time.Time, error) {
	if runDate == "" {
		return ingestion.BatchDate(time.Now()), nil
	}
	date, err := time.Parse("2006-01-02", runDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", runDate, err)
	}
	return date, nil
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("a database URL is required: set --db-url, DATABASE_URL, or database_url in the config file")
	}

	date, err := batchDate()
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.StartRun(ctx, date.Format("2006-01-02"))
	if err != nil {
		return err
	}

	result, err := pipeline.RunPipeline(ctx, pipeline.RunOptions{
		BatchDate:  date,
		DataURL:    cfg.DataURL,
		SourceFile: runSourceFile,
		DataDir:    cfg.DataDir,
		FilePrefix: cfg.FilePrefix,
		Fetch: &fetch.Options{
			ChunkSize:  cfg.ChunkSize,
			MaxRetries: cfg.MaxRetries,
		},
		Verbose: cfg.Verbose,
		Store:   database,
	})
	if err != nil {
		_ = database.CompleteRun(ctx, runID, "failed", 0)
		return err
	}

	if err := database.CompleteRun(ctx, runID, "completed", result.Inserted); err != nil {
		return err
	}

	fmt.Printf("Pipeline completed successfully: %d new records for batch %s.\n", result.Inserted, result.BatchDate)
	return nil
}
