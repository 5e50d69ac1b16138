package algo

import (
	"math"
	"time"

	"github.com/bekerk/hotspot/schema"
)

// Decay transform tuning. A steepness of 24 makes the transform close to a
// step function: fixes near now count about 0.5 per touch, older ones almost nothing.
const (
	DecaySteepness = 24.0
	DecayMidpoint  = 1.0
)

// RecencyScore maps a fix timestamp (ms) onto the window: 1 at now, 0 at the oldest fix.
// A window with no width scores 1 so the division never produces NaN or Inf.
func RecencyScore(fixTime float64, w schema.TimeWindow) float64 {
	span := w.Span()
	if span <= 0 {
		return 1
	}
	return 1 - (w.Now-fixTime)/span
}

// DecayContribution applies the logistic decay transform to a recency score.
func DecayContribution(score float64) float64 {
	return 1 / (1 + math.Exp(-DecaySteepness*score+DecaySteepness*DecayMidpoint))
}

// Accumulator maps a file path to its summed decayed contributions.
type Accumulator map[string]float64

// Add sums contribution into path, creating the entry on first use.
func (a Accumulator) Add(path string, contribution float64) {
	a[path] += contribution
}

// Merge sums every entry of other into a.
func (a Accumulator) Merge(other Accumulator) {
	for path, v := range other {
		a[path] += v
	}
}

// ScoreHotspots accumulates the decayed contribution of every fix for every path it touched.
func ScoreHotspots(fixes []schema.FixCommit, w schema.TimeWindow) Accumulator {
	acc := make(Accumulator)
	for _, f := range fixes {
		contribution := DecayContribution(RecencyScore(f.TimeMillis(), w))
		for _, p := range f.Files {
			acc.Add(p, contribution)
		}
	}
	return acc
}

// BuildFileResults turns an accumulator into unranked results, counting how many
// fixes touched each path and when the latest of them happened.
func BuildFileResults(acc Accumulator, fixes []schema.FixCommit) []schema.FileResult {
	fixCounts := make(map[string]int, len(acc))
	lastFix := make(map[string]time.Time, len(acc))
	for _, f := range fixes {
		for _, p := range f.Files {
			fixCounts[p]++
			if f.Time.After(lastFix[p]) {
				lastFix[p] = f.Time
			}
		}
	}

	results := make([]schema.FileResult, 0, len(acc))
	for path, score := range acc {
		results = append(results, schema.FileResult{
			Path:    path,
			Score:   score,
			Fixes:   fixCounts[path],
			LastFix: lastFix[path],
		})
	}
	return results
}
