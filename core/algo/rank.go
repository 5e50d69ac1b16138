package algo

import (
	"sort"

	"github.com/bekerk/hotspot/schema"
)

// RankFiles sorts files by score in descending order, breaking ties by path,
// and returns the top 'limit' files. A limit of zero or less keeps every file.
func RankFiles(files []schema.FileResult, limit int) []schema.FileResult {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Score != files[j].Score {
			return files[i].Score > files[j].Score
		}
		return files[i].Path < files[j].Path
	})
	if limit > 0 && len(files) > limit {
		return files[:limit]
	}
	return files
}
