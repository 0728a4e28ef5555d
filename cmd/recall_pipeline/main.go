// Package main provides the entry point for the CFIA recall pipeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recall_pipeline",
	Short: "CFIA food recall ingestion pipeline",
	Long:  "recall_pipeline downloads the CFIA recall open dataset, isolates food-safety records, normalizes the free-text hazard fields, and loads new records into PostgreSQL without duplication.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
