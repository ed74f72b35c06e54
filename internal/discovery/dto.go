// internal/discovery/dto.go

package discovery

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// ParseFilterSpec builds a FilterSpec from query parameters. Malformed
// numeric values are coerced to absent rather than rejected.
func ParseFilterSpec(values url.Values) FilterSpec {
	return FilterSpec{
		Name:          optionalString(values.Get("name")),
		MinAge:        optionalInt(values.Get("min_age")),
		MaxAge:        optionalInt(values.Get("max_age")),
		City:          optionalString(values.Get("city")),
		Postcode:      optionalString(values.Get("postcode")),
		Gender:        optionalString(values.Get("gender")),
		MaxDistanceKM: optionalFloat(values.Get("max_distance")),
		MinHeightCM:   optionalInt(values.Get("min_height")),
		MaxHeightCM:   optionalInt(values.Get("max_height")),

		Smoking:   commaList(values.Get("smoking")),
		Drinking:  commaList(values.Get("drinking")),
		Children:  commaList(values.Get("children")),
		Education: commaList(values.Get("education")),
		Religion:  commaList(values.Get("religion")),
		Ethnicity: commaList(values.Get("ethnicity")),
		Languages: commaList(values.Get("languages")),
		Sports:    commaList(values.Get("sports")),
		Interests: commaList(values.Get("interests")),

		VerifiedOnly:   boolFlag(values.Get("verified")),
		RecentlyOnline: boolFlag(values.Get("online")),

		Page:  intOrZero(values.Get("page")),
		Limit: intOrZero(values.Get("limit")),
	}
}

func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalInt(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}

func optionalFloat(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &f
}

func commaList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func boolFlag(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	return v == "true" || v == "1" || v == "yes"
}

func intOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// Response DTOs

// CandidateResponse is one ranked candidate on the wire
type CandidateResponse struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	Bio         *string  `json:"bio,omitempty"`
	City        *string  `json:"city,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Photos      []string `json:"photos"`
	Interests   []string `json:"interests"`
	IsVerified  bool     `json:"is_verified"`

	IsBoosted  bool     `json:"is_boosted"`
	IsShowcase bool     `json:"is_showcase"`
	DistanceKM *float64 `json:"distance_km,omitempty"`

	MatchScore   int                    `json:"match_score"`
	MatchQuality string                 `json:"match_quality"`
	Breakdown    CompatibilityBreakdown `json:"breakdown"`
	Explanations []string               `json:"explanations"`
}

// PaginationMeta describes the returned page
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TravelMeta reports active travel mode, omitted when inactive
type TravelMeta struct {
	Active bool    `json:"active"`
	City   *string `json:"city,omitempty"`
}

// ShowcaseMeta reports the fallback pool so callers can adapt their UI
type ShowcaseMeta struct {
	Activated     bool   `json:"activated"`
	ShowcaseCount int    `json:"showcase_count"`
	RealCount     int    `json:"real_count"`
	Notice        string `json:"notice,omitempty"`
}

// DiscoveryResponse is the full discovery payload
type DiscoveryResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
	Pagination PaginationMeta      `json:"pagination"`
	Travel     *TravelMeta         `json:"travel,omitempty"`
	Showcase   ShowcaseMeta        `json:"showcase"`
}

// CompatibilityResponse is the single-pair breakdown payload
type CompatibilityResponse struct {
	UserID       int64                  `json:"user_id"`
	DisplayName  string                 `json:"display_name"`
	MatchScore   int                    `json:"match_score"`
	MatchQuality string                 `json:"match_quality"`
	Breakdown    CompatibilityBreakdown `json:"breakdown"`
	Explanations []string               `json:"explanations"`
}

// NewDiscoveryResponse maps a pipeline result onto the wire shape
func NewDiscoveryResponse(result *DiscoveryResult, now time.Time) DiscoveryResponse {
	candidates := make([]CandidateResponse, 0, len(result.Candidates))
	for _, rc := range result.Candidates {
		candidates = append(candidates, newCandidateResponse(rc, now))
	}

	resp := DiscoveryResponse{
		Candidates: candidates,
		Pagination: PaginationMeta{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Showcase: ShowcaseMeta{
			Activated:     result.ShowcaseActivated,
			ShowcaseCount: result.ShowcaseCount,
			RealCount:     result.RealCount,
			Notice:        result.ShowcaseNotice,
		},
	}
	if result.TravelModeActive {
		resp.Travel = &TravelMeta{Active: true, City: result.TravelCity}
	}
	return resp
}

func newCandidateResponse(rc RankedCandidate, now time.Time) CandidateResponse {
	p := rc.Profile
	return CandidateResponse{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Age:         p.Age(now),
		Gender:      p.Gender,
		Bio:         p.Bio,
		City:        p.City,
		Country:     p.Country,
		Photos:      stringSlice(p.Photos),
		Interests:   stringSlice(p.Interests),
		IsVerified:  p.IsVerified,

		IsBoosted:  rc.IsBoosted,
		IsShowcase: rc.IsShowcase,
		DistanceKM: rc.DistanceKM,

		MatchScore:   rc.Score.Overall,
		MatchQuality: MatchQuality(rc.Score.Overall),
		Breakdown:    rc.Score.Breakdown,
		Explanations: rc.Score.Explanations,
	}
}

// NewCompatibilityResponse maps a pair score onto the wire shape
func NewCompatibilityResponse(other *profile.Profile, score Score) CompatibilityResponse {
	return CompatibilityResponse{
		UserID:       other.ID,
		DisplayName:  other.DisplayName,
		MatchScore:   score.Overall,
		MatchQuality: MatchQuality(score.Overall),
		Breakdown:    score.Breakdown,
		Explanations: score.Explanations,
	}
}

// stringSlice normalizes nil array columns to empty JSON arrays
func stringSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
