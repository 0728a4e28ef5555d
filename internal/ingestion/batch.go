package ingestion

import "time"

// Default batch naming, matching the upstream publication schedule: the
// dataset is refreshed at 02:00 for the current date, so a run processes the
// prior calendar day's file.
const (
	DefaultFilePrefix = "cfia_food_recalls_"
	DefaultFileSuffix = ".csv"

	// RawFilename is where the unfiltered download lands before filtering.
	RawFilename = "cfia_recalls_raw.csv"

	// processedPrefix marks the transformed output for a batch.
	processedPrefix = "processed_"

	batchDateLayout = "2006_01_02"
)

// BatchDate returns the calendar day a run executed at now should process.
func BatchDate(now time.Time) time.Time {
	return now.AddDate(0, 0, -1)
}

// BatchFilename builds the deterministic dated filename for a batch.
func BatchFilename(date time.Time, prefix, suffix string) string {
	return prefix + date.Format(batchDateLayout) + suffix
}

// ProcessedFilename names the transformed output for a given batch file.
func ProcessedFilename(batchFile string) string {
	return processedPrefix + batchFile
}
