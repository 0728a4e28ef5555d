package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recalltrack/cfia-pipeline/internal/db"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingest runs",
	RunE:  listRunsCmd,
}

var runsLimit int

func init() {
	runsCommand.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	rootCmd.AddCommand(runsCommand)
}

func listRunsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No ingest runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-10s  %-9s  %8s  %s\n", "ID", "BATCH", "STATUS", "INSERTED", "STARTED")
	for _, run := range runs {
		fmt.Printf("%-36s  %-10s  %-9s  %8d  %s\n",
			run.ID, run.BatchDate, run.Status, run.RowsInserted, run.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

var initCommand = &cobra.Command{
	Use:   "init",
	Short: "Create the database tables used by the pipeline",
	RunE:  initSchemaCmd,
}

func init() {
	rootCmd.AddCommand(initCommand)
}

func initSchemaCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.InitSchema(ctx); err != nil {
		return err
	}
	fmt.Println("Schema initialized.")
	return nil
}
