// internal/discovery/models.go

package discovery

import (
	"time"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// FilterSpec is the parsed, immutable set of explicit filters for one
// discovery request. A nil field means the caller did not supply it; stored
// preferences fill those gaps, dealbreakers are merged in on top.
type FilterSpec struct {
	Name          *string
	MinAge        *int
	MaxAge        *int
	City          *string
	Postcode      *string
	Gender        *string
	MaxDistanceKM *float64
	MinHeightCM   *int
	MaxHeightCM   *int

	Smoking   []string
	Drinking  []string
	Children  []string
	Education []string
	Religion  []string
	Ethnicity []string
	Languages []string
	Sports    []string
	Interests []string

	VerifiedOnly   bool
	RecentlyOnline bool

	Page  int
	Limit int
}

// CompatibilityBreakdown holds the seven named sub-scores, each 0-100
type CompatibilityBreakdown struct {
	Interest     int `json:"interest"`
	Bio          int `json:"bio"`
	Location     int `json:"location"`
	Activity     int `json:"activity"`
	Personality  int `json:"personality"`
	LoveLanguage int `json:"love_language"`
	Lifestyle    int `json:"lifestyle"`
}

// Score is the full compatibility result for one pair
type Score struct {
	Overall      int                    `json:"overall"`
	Breakdown    CompatibilityBreakdown `json:"breakdown"`
	Explanations []string               `json:"explanations"`
}

// RankedCandidate is a candidate annotated with everything ranking needs
type RankedCandidate struct {
	Profile    *profile.Profile
	Score      Score
	DistanceKM *float64
	IsBoosted  bool
	IsShowcase bool
}

// DiscoveryResult is one fully ranked, paginated page plus its metadata
type DiscoveryResult struct {
	Candidates []RankedCandidate

	Page       int
	Limit      int
	Total      int
	TotalPages int

	RealCount         int
	ShowcaseActivated bool
	ShowcaseCount     int
	ShowcaseNotice    string

	TravelModeActive bool
	TravelCity       *string

	DistanceFiltered bool
}

// ShowcaseQuery narrows the secondary demo-profile pool. Lifestyle,
// dealbreaker and distance constraints deliberately do not apply here.
type ShowcaseQuery struct {
	Gender     *string
	MinAge     int
	MaxAge     int
	ExcludeIDs []int64
	Limit      int
	Now        time.Time
}

// MatchQuality maps an overall score to its user-facing tier
func MatchQuality(score int) string {
	switch {
	case score >= 75:
		return "excellent"
	case score >= 60:
		return "good"
	default:
		return "fair"
	}
}
