package recommendation

import (
	"mediapick/types/models"
)

// maxCandidatePool bounds how many of a page's (already blacklist-filtered)
// results are eligible for the final random pick, keeping the choice
// weighted toward the strategy's sort order while adding variety.
const maxCandidatePool = 20

// CandidateFilter applies the blacklist and the post-query selection policy
// to a single strategy page's raw results. It never inspects rating or vote
// count — those are enforced by the catalog query itself.
type CandidateFilter struct {
	random Random
}

// NewCandidateFilter builds a CandidateFilter using the given Random seam
// for the final uniform pick.
func NewCandidateFilter(random Random) *CandidateFilter {
	if random == nil {
		random = NewSystemRandom()
	}
	return &CandidateFilter{random: random}
}

// Select removes blacklisted items from results, then chooses uniformly
// from the first min(len, 20) survivors. It returns false if nothing
// survives blacklisting.
func (f *CandidateFilter) Select(results []models.MediaItem, blacklist map[models.Key]struct{}) (models.MediaItem, bool) {
	survivors := make([]models.MediaItem, 0, len(results))
	for _, item := range results {
		if _, blocked := blacklist[item.Key()]; blocked {
			continue
		}
		survivors = append(survivors, item)
	}
	if len(survivors) == 0 {
		return models.MediaItem{}, false
	}

	pool := survivors
	if len(pool) > maxCandidatePool {
		pool = pool[:maxCandidatePool]
	}
	return pool[f.random.IntN(len(pool))], true
}
