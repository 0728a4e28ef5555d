package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recalltrack/cfia-pipeline/internal/fetch"
	"github.com/recalltrack/cfia-pipeline/internal/pipeline"
)

var fetchCommand = &cobra.Command{
	Use:   "fetch",
	Short: "Download the raw dataset and write the filtered batch file only",
	Long:  "Performs the extract phase without transforming or loading: downloads the CFIA dataset and writes the dated, hazard-filtered batch file.",
	RunE:  fetchBatchCmd,
}

func init() {
	fetchCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	fetchCommand.Flags().StringVar(&runDate, "date", "", "Batch date as YYYY-MM-DD (defaults to yesterday)")
	fetchCommand.Flags().StringVar(&runDataURL, "data-url", "", "Remote CSV to ingest (defaults to the CFIA open-data URL)")
	fetchCommand.Flags().StringVarP(&runDataDir, "data-dir", "d", "", "Directory for batch files (default \"recalls\")")
	fetchCommand.Flags().StringVar(&runFilePrefix, "file-prefix", "", "Dated batch filename prefix (default \"cfia_food_recalls_\")")
	fetchCommand.Flags().IntVar(&runChunkSize, "chunk-size", 0, "Download copy-buffer size in bytes")
	fetchCommand.Flags().IntVar(&runMaxRetries, "max-retries", 0, "Retry ceiling for transient download failures")
	fetchCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(fetchCommand)
}

func fetchBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}

	date, err := batchDate()
	if err != nil {
		return err
	}

	path, rows, err := pipeline.FetchBatch(context.Background(), pipeline.RunOptions{
		BatchDate:  date,
		DataURL:    cfg.DataURL,
		DataDir:    cfg.DataDir,
		FilePrefix: cfg.FilePrefix,
		Fetch: &fetch.Options{
			ChunkSize:  cfg.ChunkSize,
			MaxRetries: cfg.MaxRetries,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Found %d food recalls; batch saved as %s\n", rows, path)
	return nil
}
