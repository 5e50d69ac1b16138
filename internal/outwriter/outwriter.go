// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"
	"time"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteHeader prints the analysis header.
func (ow *OutWriter) WriteHeader(w io.Writer, cfg *contract.Config, window schema.TimeWindow) {
	WriteAnalysisHeader(w, cfg, window)
}

// WriteFiles prints ranked hotspot results using the configured output format.
func (ow *OutWriter) WriteFiles(output *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	return WriteFileResults(output, cfg, duration)
}

// WriteCheck prints a policy check result.
func (ow *OutWriter) WriteCheck(w io.Writer, result *schema.CheckResult, duration time.Duration) error {
	return WriteCheckResult(w, result, duration)
}

// GetMaxTablePathWidth calculates the maximum width for file paths in table output
// based on terminal width and table configuration.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 30 // Rank + Score + Label with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 35 // Fixes + Last Fix with formatting
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	// Calculate available space for path
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
