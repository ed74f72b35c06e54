// internal/discovery/service.go

package discovery

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sparkd-app/sparkd-backend/internal/common/storage"
	"github.com/sparkd-app/sparkd-backend/internal/config"
	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

var (
	ErrRequesterNotFound = errors.New("requester profile not found")
)

// fetchCap bounds the over-fetched candidate batch regardless of page depth
const fetchCap = 300

// showcaseAgeBand widens the requester's age preference for the fallback pool
const showcaseAgeBand = 5

// showcaseNotice is shown to callers when the fallback pool is active
const showcaseNotice = "We added some suggested profiles to help you explore"

// Service ranks candidates for a requester
type Service interface {
	Discover(ctx context.Context, userID int64, spec FilterSpec) (*DiscoveryResult, error)
	Compatibility(ctx context.Context, userID, otherID int64) (*profile.Profile, Score, error)
}

type service struct {
	repo     Repository
	profiles profile.Repository
	resolver PostcodeResolver
	cache    ScoreCache
	signer   storage.PhotoURLSigner
	cfg      *config.Config
	now      func() time.Time
}

// NewService wires the discovery pipeline
func NewService(
	repo Repository,
	profiles profile.Repository,
	resolver PostcodeResolver,
	cache ScoreCache,
	signer storage.PhotoURLSigner,
	cfg *config.Config,
) Service {
	return &service{
		repo:     repo,
		profiles: profiles,
		resolver: resolver,
		cache:    cache,
		signer:   signer,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Discover runs the full pipeline: exclusions, predicate, retrieval, distance
// filter, showcase fallback, scoring, ranking, pagination.
func (s *service) Discover(ctx context.Context, userID int64, spec FilterSpec) (*DiscoveryResult, error) {
	start := s.now()
	now := start

	requester, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrRequesterNotFound
		}
		return nil, fmt.Errorf("loading requester %d: %w", userID, err)
	}

	// Exclusions feed the retrieval predicate, so they come first
	excludeIDs, err := s.repo.GetExcludedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excludeIDs = append(excludeIDs, userID)

	origin, radius, distanceFiltered, source := s.resolveGeo(ctx, requester, spec, now)

	travelActive := source == originTravel
	var travelCity *string
	if travelActive {
		travelCity = requester.PassportCity
	}

	page, limit := s.normalizePage(spec.Page, spec.Limit)
	recentCutoff := now.AddDate(0, 0, -s.cfg.RecentlyOnlineDays)

	pred := BuildCandidatePredicate(spec, requester, excludeIDs, distanceFiltered, recentCutoff, now)

	fetchLimit := s.cfg.OverfetchFactor * page * limit
	if fetchLimit > fetchCap {
		fetchLimit = fetchCap
	}

	candidates, err := s.repo.FindCandidates(ctx, pred, fetchLimit)
	if err != nil {
		return nil, err
	}

	candidates, distances := filterByDistance(candidates, origin, radius)
	realCount := len(candidates)

	showcaseActivated := false
	showcaseCount := 0
	if realCount < s.cfg.ShowcaseFloor && s.cfg.ShowcaseEnabled {
		extras, err := s.fetchShowcase(ctx, requester, spec, candidates, excludeIDs, now)
		if err != nil {
			// The fallback pool is an enhancement, never a failure mode
			log.Printf("discovery: showcase fetch failed for user %d: %v", userID, err)
		} else if len(extras) > 0 {
			showcaseActivated = true
			showcaseCount = len(extras)
			candidates = append(candidates, extras...)
			RecordShowcaseActivation(showcaseCount)
		}
	}

	ranked := s.scoreCandidates(ctx, requester, candidates, distances, now)

	if err := s.annotateBoosts(ctx, ranked, now); err != nil {
		return nil, err
	}

	RankCandidates(ranked)

	total := len(ranked)
	pageSlice := PageSlice(ranked, page, limit)
	s.signPhotos(pageSlice)

	result := &DiscoveryResult{
		Candidates:        pageSlice,
		Page:              page,
		Limit:             limit,
		Total:             total,
		TotalPages:        TotalPages(total, limit),
		RealCount:         realCount,
		ShowcaseActivated: showcaseActivated,
		ShowcaseCount:     showcaseCount,
		TravelModeActive:  travelActive,
		TravelCity:        travelCity,
		DistanceFiltered:  distanceFiltered,
	}
	if showcaseActivated {
		result.ShowcaseNotice = showcaseNotice
	}

	ObserveDiscoveryDuration(s.now().Sub(start))
	return result, nil
}

// Compatibility scores one specific pair and returns the other profile
func (s *service) Compatibility(ctx context.Context, userID, otherID int64) (*profile.Profile, Score, error) {
	requester, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, Score{}, ErrRequesterNotFound
		}
		return nil, Score{}, fmt.Errorf("loading requester %d: %w", userID, err)
	}

	other, err := s.profiles.GetProfileByUserID(ctx, otherID)
	if err != nil {
		return nil, Score{}, err
	}

	now := s.now()
	score := s.scorePair(ctx, requester, other, pairDistance(requester, other, now), now)

	signed := *other
	signed.Photos = s.signedPhotoList(other.Photos)
	return &signed, score, nil
}

// originSource identifies which coordinates won the origin precedence
type originSource int

const (
	originNone originSource = iota
	originPostcode
	originTravel
	originLive
)

// resolveGeo works out the effective origin and radius for this request.
// A resolved search postcode overrides passport coordinates, which override
// live coordinates. Radius precedence: explicit filter, then dealbreaker,
// then stored preference. Distance filtering runs only with both present.
func (s *service) resolveGeo(ctx context.Context, requester *profile.Profile, spec FilterSpec, now time.Time) (*profile.Coordinates, *float64, bool, originSource) {
	var origin *profile.Coordinates
	source := originNone

	if spec.Postcode != nil {
		if coords, ok := s.resolver.Resolve(ctx, *spec.Postcode); ok {
			origin = &coords
			source = originPostcode
		}
	}
	if origin == nil {
		if origin = requester.TravelCoords(now); origin != nil {
			source = originTravel
		}
	}
	if origin == nil {
		if origin = requester.LiveCoords(); origin != nil {
			source = originLive
		}
	}

	radius := spec.MaxDistanceKM
	if radius == nil {
		if rules := requester.Dealbreakers.Ptr(); rules != nil && rules.MaxDistanceKM != nil {
			radius = rules.MaxDistanceKM
		}
	}
	if radius == nil {
		radius = requester.PreferredDistance
	}
	if radius == nil && source == originPostcode {
		defaultRadius := s.cfg.DefaultRadiusKM
		radius = &defaultRadius
	}

	active := origin != nil && radius != nil
	return origin, radius, active, source
}

// filterByDistance drops candidates without coordinates or beyond the radius.
// Without an origin or radius it passes everything through. Distances are
// keyed by candidate ID for later scoring.
func filterByDistance(candidates []*profile.Profile, origin *profile.Coordinates, radius *float64) ([]*profile.Profile, map[int64]float64) {
	distances := make(map[int64]float64)
	if origin == nil || radius == nil {
		return candidates, distances
	}

	kept := make([]*profile.Profile, 0, len(candidates))
	for _, c := range candidates {
		coords := c.LiveCoords()
		if coords == nil {
			continue
		}
		d := DistanceKM(*origin, *coords)
		if d > *radius {
			continue
		}
		distances[c.ID] = d
		kept = append(kept, c)
	}
	return kept, distances
}

// fetchShowcase pulls demo profiles under relaxed constraints: the age band
// widens by showcaseAgeBand on both sides, gender preference still applies,
// lifestyle, dealbreaker and distance constraints do not.
func (s *service) fetchShowcase(
	ctx context.Context,
	requester *profile.Profile,
	spec FilterSpec,
	already []*profile.Profile,
	excludeIDs []int64,
	now time.Time,
) ([]*profile.Profile, error) {
	exclude := make([]int64, 0, len(excludeIDs)+len(already))
	exclude = append(exclude, excludeIDs...)
	for _, c := range already {
		exclude = append(exclude, c.ID)
	}

	gender := spec.Gender
	if gender == nil {
		gender = requester.PreferredGender
	}

	minAge := s.cfg.MinAge
	if spec.MinAge != nil {
		minAge = *spec.MinAge
	} else if requester.PreferredMinAge != nil {
		minAge = *requester.PreferredMinAge
	}
	maxAge := s.cfg.MaxAge
	if spec.MaxAge != nil {
		maxAge = *spec.MaxAge
	} else if requester.PreferredMaxAge != nil {
		maxAge = *requester.PreferredMaxAge
	}
	minAge -= showcaseAgeBand
	if minAge < s.cfg.MinAge {
		minAge = s.cfg.MinAge
	}
	maxAge += showcaseAgeBand
	if maxAge > s.cfg.MaxAge {
		maxAge = s.cfg.MaxAge
	}

	return s.repo.FindShowcaseCandidates(ctx, ShowcaseQuery{
		Gender:     gender,
		MinAge:     minAge,
		MaxAge:     maxAge,
		ExcludeIDs: exclude,
		Limit:      s.cfg.ShowcaseCap,
		Now:        now,
	})
}

// scoreCandidates fans scoring out over a worker pool bounded by batch size.
// Candidates are independent, so order of computation does not matter; the
// output slice keeps retrieval order for the stable sort downstream.
func (s *service) scoreCandidates(
	ctx context.Context,
	requester *profile.Profile,
	candidates []*profile.Profile,
	distances map[int64]float64,
	now time.Time,
) []RankedCandidate {
	ranked := make([]RankedCandidate, len(candidates))

	workers := len(candidates)
	if workers > 16 {
		workers = 16
	}
	if workers == 0 {
		return ranked
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				c := candidates[i]
				var distance *float64
				if d, ok := distances[c.ID]; ok {
					dc := d
					distance = &dc
				}
				score := s.scorePair(ctx, requester, c, distance, now)
				ranked[i] = RankedCandidate{
					Profile:    c,
					Score:      score,
					DistanceKM: distance,
					IsShowcase: c.IsShowcase,
				}
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return ranked
}

// scorePair computes one pair score through the read-through cache
func (s *service) scorePair(ctx context.Context, a, b *profile.Profile, distanceKM *float64, now time.Time) Score {
	if cached, ok := s.cache.Get(ctx, a.ID, b.ID); ok {
		return *cached
	}
	score := ComputeScore(a, b, distanceKM, now)
	s.cache.Set(ctx, a.ID, b.ID, score)
	ObserveMatchScore(score.Overall)
	return score
}

// annotateBoosts marks candidates holding an unexpired boost
func (s *service) annotateBoosts(ctx context.Context, ranked []RankedCandidate, now time.Time) error {
	if len(ranked) == 0 {
		return nil
	}
	ids := make([]int64, len(ranked))
	for i, rc := range ranked {
		ids[i] = rc.Profile.ID
	}
	boosted, err := s.repo.GetBoostedUserIDs(ctx, ids, now)
	if err != nil {
		return err
	}
	for i := range ranked {
		ranked[i].IsBoosted = boosted[ranked[i].Profile.ID]
	}
	return nil
}

// signPhotos replaces storage keys with presigned URLs on the outgoing page
func (s *service) signPhotos(page []RankedCandidate) {
	for i := range page {
		p := *page[i].Profile
		p.Photos = s.signedPhotoList(page[i].Profile.Photos)
		page[i].Profile = &p
	}
}

func (s *service) signedPhotoList(keys []string) []string {
	signed := make([]string, 0, len(keys))
	for _, key := range keys {
		url, err := s.signer.SignPhotoURL(key, s.cfg.PhotoURLTTL)
		if err != nil {
			log.Printf("discovery: signing photo url: %v", err)
			continue
		}
		signed = append(signed, url)
	}
	return signed
}

// pairDistance computes geodistance for a one-off pair when both sides have
// usable coordinates.
func pairDistance(a, b *profile.Profile, now time.Time) *float64 {
	originA := a.TravelCoords(now)
	if originA == nil {
		originA = a.LiveCoords()
	}
	coordsB := b.LiveCoords()
	if originA == nil || coordsB == nil {
		return nil
	}
	d := DistanceKM(*originA, *coordsB)
	return &d
}

func (s *service) normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	return page, limit
}
