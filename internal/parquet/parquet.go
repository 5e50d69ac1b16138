// Package parquet provides data structures and functions for exporting hotspot
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bekerk/hotspot/schema"
	"github.com/parquet-go/parquet-go"
)

// HotspotRow represents one ranked file of a hotspot analysis.
type HotspotRow struct {
	// Rank is the 1-based position in the ranked output
	Rank int32 `parquet:"rank,snappy"`

	// FilePath is the repository-relative path of the file
	FilePath string `parquet:"file_path,snappy"`

	// Score is the accumulated decayed-fix score
	Score float64 `parquet:"score,snappy"`

	// Label is the criticality label relative to the top score
	Label string `parquet:"label,snappy"`

	// Fixes is the number of fix commits that touched the file
	Fixes int32 `parquet:"fixes,snappy"`

	// LastFix is the time of the most recent fix touching the file (nullable)
	LastFix *time.Time `parquet:"last_fix,optional,snappy"`

	// Ref is the reference the history was read from
	Ref string `parquet:"ref,snappy"`

	// Marker is the fix marker used for classification
	Marker string `parquet:"marker,snappy"`

	// AnalysisTime is the "now" the scores were computed against
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`
}

// RunMetadata identifies the analysis a set of rows came from.
type RunMetadata struct {
	Ref    string
	Marker string
	Now    time.Time
}

// ConvertFileResults converts ranked file results to HotspotRow records.
func ConvertFileResults(files []schema.FileResult, meta RunMetadata) []HotspotRow {
	enriched := schema.EnrichFiles(files)
	result := make([]HotspotRow, len(enriched))
	for i, f := range enriched {
		var lastFix *time.Time
		if !f.LastFix.IsZero() {
			t := f.LastFix
			lastFix = &t
		}
		result[i] = HotspotRow{
			Rank:         int32(f.Rank),
			FilePath:     f.Path,
			Score:        f.Score,
			Label:        f.Label,
			Fixes:        int32(f.Fixes),
			LastFix:      lastFix,
			Ref:          meta.Ref,
			Marker:       meta.Marker,
			AnalysisTime: meta.Now,
		}
	}
	return result
}

// WriteHotspotRows writes HotspotRow records to w.
func WriteHotspotRows(w io.Writer, data []HotspotRow) error {
	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the HotspotRow struct tags
	writer := parquet.NewGenericWriter[HotspotRow](w)

	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteHotspotRowsParquet writes HotspotRow records to a Parquet file at outputPath.
func WriteHotspotRowsParquet(data []HotspotRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteHotspotRows(file, data)
}
