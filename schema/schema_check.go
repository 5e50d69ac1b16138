package schema

// CheckResult holds the results of a policy check.
type CheckResult struct {
	Passed      bool
	FailedFiles []CheckFailedFile
	TotalFiles  int
	FixCommits  int
	Ref         string
	Marker      string
	Threshold   float64
	MaxScore    float64
	MaxPath     string
	AvgScore    float64
}

// CheckFailedFile represents a file that failed the policy check.
type CheckFailedFile struct {
	Path      string
	Score     float64
	Fixes     int
	Threshold float64
}
