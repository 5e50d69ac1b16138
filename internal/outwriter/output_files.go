package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/internal/parquet"
	"github.com/bekerk/hotspot/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteFileResults outputs the ranked hotspots, dispatching based on the output format configured.
func WriteFileResults(output *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	files := output.FileResults

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForFiles(w, files)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFiles(w, files, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetResultsForFiles(output, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFileTable(output, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeFileTable generates and writes the human-readable table.
func writeFileTable(output *schema.AnalysisOutput, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	files := output.FileResults
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Path", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Fixes", "Last Fix")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	label := schema.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	maxWidth := GetMaxTablePathWidth(cfg)
	top := schema.MaxScore(files)

	var data [][]string
	for i, f := range files {
		// Prepare the row data as a slice of strings
		row := []string{
			strconv.Itoa(i + 1),                       // Rank
			contract.TruncatePath(f.Path, maxWidth),   // File
			fmtFloat(f.Score),                         // Score
			label(schema.RelativeScore(f.Score, top)), // Label
		}
		if cfg.Detail {
			row = append(
				row,
				fmt.Sprintf(intFmt, f.Fixes), // Fixes
				formatTime(f.LastFix),        // Last Fix
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary footer
	if _, err := fmt.Fprintf(writer, "Showing %d files (fix commits: %d, skipped: %d)\n", len(files), output.FixCommits, output.Skipped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForFiles writes the ranked results in CSV format.
func writeCSVResultsForFiles(w io.Writer, files []schema.FileResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "file", "score", "label", "fixes", "last_fix"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range schema.EnrichFiles(files) {
			rec := []string{
				strconv.Itoa(f.Rank),         // Rank
				f.Path,                       // File Path
				fmtFloat(f.Score),            // Score
				f.Label,                      // Label
				fmt.Sprintf(intFmt, f.Fixes), // Fixes
				formatTime(f.LastFix),        // Last Fix
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForFiles writes the ranked results in JSON format with rank and label added.
func writeJSONResultsForFiles(w io.Writer, files []schema.FileResult) error {
	return writeJSON(w, schema.EnrichFiles(files))
}

// writeParquetResultsForFiles writes the ranked results to the configured Parquet file.
func writeParquetResultsForFiles(output *schema.AnalysisOutput, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires an output file")
	}
	rows := parquet.ConvertFileResults(output.FileResults, parquet.RunMetadata{
		Ref:    cfg.Ref,
		Marker: cfg.Marker,
		Now:    output.Window.NowTime(),
	})
	if err := parquet.WriteHotspotRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}
