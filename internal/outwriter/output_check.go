package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/bekerk/hotspot/schema"
)

// maxViolationsShown caps how many failing files are listed.
const maxViolationsShown = 10

// WriteCheckResult prints the check result in a concise format suitable for CI/CD.
func WriteCheckResult(w io.Writer, result *schema.CheckResult, duration time.Duration) error {
	if err := writeCheckHeader(w, result, duration); err != nil {
		return err
	}
	if result.Passed {
		return writeCheckSuccess(w, result)
	}
	return writeCheckFailure(w, result)
}

// writeCheckHeader prints the common header information for check results.
func writeCheckHeader(w io.Writer, result *schema.CheckResult, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, "Policy Check Results:"); err != nil {
		return err
	}

	// Define labels and values for dynamic padding
	labels := []string{"Ref:", "Marker:", "Threshold:"}
	values := []any{
		result.Ref,
		fmt.Sprintf("%q", result.Marker),
		fmt.Sprintf("%.2f", result.Threshold),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nChecked %d files from %d fix commits in %v\n\n", result.TotalFiles, result.FixCommits, duration)
	return err
}

// writeCheckSuccess prints the success case output.
func writeCheckSuccess(w io.Writer, result *schema.CheckResult) error {
	if _, err := fmt.Fprintf(w, "✅ All files passed policy checks\n\n"); err != nil {
		return err
	}
	if result.TotalFiles == 0 {
		_, err := fmt.Fprintln(w, "No fix activity observed")
		return err
	}
	_, err := fmt.Fprintf(w, "Scores observed: max=%.2f (%s), avg=%.2f\n", result.MaxScore, result.MaxPath, result.AvgScore)
	return err
}

// writeCheckFailure prints the failure case output.
// FailedFiles arrive ranked, so the first entries are the worst offenders.
func writeCheckFailure(w io.Writer, result *schema.CheckResult) error {
	if _, err := fmt.Fprintf(w, "❌ Policy check failed: %d violation(s) found across %d files\n\n", len(result.FailedFiles), result.TotalFiles); err != nil {
		return err
	}

	for i, f := range result.FailedFiles {
		if i >= maxViolationsShown {
			if _, err := fmt.Fprintf(w, "  ... and %d more\n", len(result.FailedFiles)-i); err != nil {
				return err
			}
			break
		}
		if _, err := fmt.Fprintf(w, "  - %s (score: %.2f >= threshold: %.2f, fixes: %d)\n", f.Path, f.Score, f.Threshold, f.Fixes); err != nil {
			return err
		}
	}
	return nil
}
