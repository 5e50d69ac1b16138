package schema

import "math"

// Scoring label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// LabelScoreFloor is the decayed contribution of a single fix halfway through the window.
// Files scoring below it are labelled Low whatever the top score is.
var LabelScoreFloor = 1 / (1 + math.Exp(12))

// RelativeScore expresses score as a percentage (0-100) of maxScore.
// Decayed-fix totals are unbounded, so labels are assigned relative to the top file.
// Scores under LabelScoreFloor map to 0 so a repository of stale fixes has no Critical files.
func RelativeScore(score, maxScore float64) float64 {
	if maxScore <= 0 || score < LabelScoreFloor {
		return 0
	}
	return score / maxScore * 100
}

// GetPlainLabel returns a plain text label indicating the criticality level
// based on a relative score in the range 0-100. This is the core logic used for
// CSV, JSON, Parquet and table printing.
func GetPlainLabel(relative float64) string {
	switch {
	case relative >= 80:
		return CriticalValue
	case relative >= 60:
		return HighValue
	case relative >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// MaxScore returns the largest score in files, or 0 for an empty slice.
func MaxScore(files []FileResult) float64 {
	var top float64
	for _, f := range files {
		if f.Score > top {
			top = f.Score
		}
	}
	return top
}

// EnrichedFileResult adds rank and label to a FileResult for machine-readable output.
type EnrichedFileResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	FileResult
}

// EnrichFiles attaches 1-based ranks and relative labels to already ranked files.
func EnrichFiles(files []FileResult) []EnrichedFileResult {
	top := MaxScore(files)
	out := make([]EnrichedFileResult, len(files))
	for i, f := range files {
		out[i] = EnrichedFileResult{
			Rank:       i + 1,
			Label:      GetPlainLabel(RelativeScore(f.Score, top)),
			FileResult: f,
		}
	}
	return out
}
