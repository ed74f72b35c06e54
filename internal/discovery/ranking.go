// internal/discovery/ranking.go

package discovery

import "sort"

// RankCandidates orders the fully scored list: boosted profiles first, then
// overall score descending, then profile recency descending. The sort is
// stable so equal candidates keep their retrieval order.
func RankCandidates(candidates []RankedCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsBoosted != b.IsBoosted {
			return a.IsBoosted
		}
		if a.Score.Overall != b.Score.Overall {
			return a.Score.Overall > b.Score.Overall
		}
		return a.Profile.CreatedAt.After(b.Profile.CreatedAt)
	})
}

// PageSlice cuts one page out of the ranked list. Pages are 1-based; a page
// past the end yields an empty slice.
func PageSlice(candidates []RankedCandidate, page, limit int) []RankedCandidate {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(candidates) {
		return []RankedCandidate{}
	}
	end := start + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[start:end]
}

// TotalPages is the page count for a total at the given limit
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
