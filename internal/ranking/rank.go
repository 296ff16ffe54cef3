// Package ranking orders scored matches and scores batches in parallel.
package ranking

import (
	"sort"

	"github.com/jonathan/teammatch/internal/types"
)

// Rank sorts matches by score (descending), breaking ties by the number of
// shared skills (descending), and returns the first topK. Matches equal on
// both keys keep their input order. topK <= 0 returns every match.
func Rank(matches []types.Match, topK int) []types.Match {
	ranked := make([]types.Match, len(matches))
	copy(ranked, matches)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return len(ranked[i].SharedSkills) > len(ranked[j].SharedSkills)
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
