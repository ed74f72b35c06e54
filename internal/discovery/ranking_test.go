package discovery

import (
	"testing"
	"time"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

func rankedWith(id int64, overall int, boosted bool, createdAt time.Time) RankedCandidate {
	return RankedCandidate{
		Profile:   &profile.Profile{ID: id, CreatedAt: createdAt},
		Score:     Score{Overall: overall},
		IsBoosted: boosted,
	}
}

func TestRankCandidatesBoostedFirst(t *testing.T) {
	now := time.Now()
	candidates := []RankedCandidate{
		rankedWith(1, 95, false, now),
		rankedWith(2, 12, true, now),
		rankedWith(3, 80, false, now),
	}

	RankCandidates(candidates)

	if candidates[0].Profile.ID != 2 {
		t.Errorf("boosted candidate with a low score must rank first, got %d", candidates[0].Profile.ID)
	}
	if candidates[1].Profile.ID != 1 || candidates[2].Profile.ID != 3 {
		t.Error("unboosted candidates should follow in score order")
	}
}

func TestRankCandidatesScoreThenRecency(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []RankedCandidate{
		rankedWith(1, 70, false, older),
		rankedWith(2, 70, false, newer),
		rankedWith(3, 90, false, older),
	}

	RankCandidates(candidates)

	wantOrder := []int64{3, 2, 1}
	for i, want := range wantOrder {
		if candidates[i].Profile.ID != want {
			t.Errorf("position %d: got %d, want %d", i, candidates[i].Profile.ID, want)
		}
	}
}

func TestRankCandidatesStable(t *testing.T) {
	now := time.Now()
	candidates := []RankedCandidate{
		rankedWith(10, 50, false, now),
		rankedWith(11, 50, false, now),
		rankedWith(12, 50, false, now),
	}

	RankCandidates(candidates)

	wantOrder := []int64{10, 11, 12}
	for i, want := range wantOrder {
		if candidates[i].Profile.ID != want {
			t.Errorf("equal candidates must keep retrieval order, position %d: got %d", i, candidates[i].Profile.ID)
		}
	}
}

func TestPageSlice(t *testing.T) {
	now := time.Now()
	candidates := make([]RankedCandidate, 5)
	for i := range candidates {
		candidates[i] = rankedWith(int64(i+1), 50, false, now)
	}

	first := PageSlice(candidates, 1, 2)
	if len(first) != 2 || first[0].Profile.ID != 1 {
		t.Errorf("unexpected first page: %+v", first)
	}

	last := PageSlice(candidates, 3, 2)
	if len(last) != 1 || last[0].Profile.ID != 5 {
		t.Errorf("unexpected last page: %+v", last)
	}

	if got := PageSlice(candidates, 4, 2); len(got) != 0 {
		t.Errorf("page past the end should be empty, got %d entries", len(got))
	}

	if got := PageSlice(candidates, 0, 2); len(got) != 2 || got[0].Profile.ID != 1 {
		t.Error("page below 1 should clamp to the first page")
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 20, 0}, {1, 20, 1}, {20, 20, 1}, {21, 20, 2}, {45, 20, 3}, {5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
