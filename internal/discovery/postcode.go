// internal/discovery/postcode.go
// Postal-code geocoding against an external provider. Lookups are strictly
// timeout-bound and never fail a discovery request: an unresolved postcode
// simply means distance filtering is skipped.

package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// PostcodeResolver turns a raw postal code into coordinates.
// The boolean is false whenever the code cannot be resolved.
type PostcodeResolver interface {
	Resolve(ctx context.Context, raw string) (profile.Coordinates, bool)
}

// Supported postal-code formats, matched after normalization
var (
	nlPostcodePattern = regexp.MustCompile(`^[0-9]{4}[A-Z]{2}$`)
	dePostcodePattern = regexp.MustCompile(`^[0-9]{5}$`)
)

// HTTPPostcodeResolver looks codes up via a zippopotam-style HTTP provider
// with a redis read-through cache in front of it.
type HTTPPostcodeResolver struct {
	baseURL  string
	client   *http.Client
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewHTTPPostcodeResolver creates a resolver. The redis client may be nil,
// in which case every lookup goes to the provider.
func NewHTTPPostcodeResolver(baseURL string, timeout time.Duration, redisClient *redis.Client, cacheTTL time.Duration) *HTTPPostcodeResolver {
	return &HTTPPostcodeResolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

// geocodeResponse is the provider's response shape
type geocodeResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// cachedCoords is what we keep in redis per resolved postcode
type cachedCoords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resolve normalizes the code, infers the country from its format and
// performs at most one external lookup.
func (r *HTTPPostcodeResolver) Resolve(ctx context.Context, raw string) (profile.Coordinates, bool) {
	code := NormalizePostcode(raw)
	country := InferPostcodeCountry(code)
	if country == "" {
		RecordGeocodeLookup("unsupported")
		return profile.Coordinates{}, false
	}

	cacheKey := fmt.Sprintf("postcode:%s:%s", country, code)
	if coords, ok := r.cacheGet(ctx, cacheKey); ok {
		RecordGeocodeLookup("cache_hit")
		return coords, true
	}

	url := fmt.Sprintf("%s/%s/%s", r.baseURL, country, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		RecordGeocodeLookup("error")
		return profile.Coordinates{}, false
	}

	resp, err := r.client.Do(req)
	if err != nil {
		RecordGeocodeLookup("error")
		return profile.Coordinates{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		RecordGeocodeLookup("not_found")
		return profile.Coordinates{}, false
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Places) == 0 {
		RecordGeocodeLookup("error")
		return profile.Coordinates{}, false
	}

	lat, latErr := strconv.ParseFloat(body.Places[0].Latitude, 64)
	lng, lngErr := strconv.ParseFloat(body.Places[0].Longitude, 64)
	if latErr != nil || lngErr != nil || !ValidCoordinates(lat, lng) {
		RecordGeocodeLookup("error")
		return profile.Coordinates{}, false
	}

	coords := profile.Coordinates{Lat: lat, Lng: lng}
	r.cacheSet(ctx, cacheKey, coords)
	RecordGeocodeLookup("resolved")
	return coords, true
}

func (r *HTTPPostcodeResolver) cacheGet(ctx context.Context, key string) (profile.Coordinates, bool) {
	if r.redis == nil {
		return profile.Coordinates{}, false
	}
	payload, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		return profile.Coordinates{}, false
	}
	var cached cachedCoords
	if err := json.Unmarshal(payload, &cached); err != nil {
		return profile.Coordinates{}, false
	}
	return profile.Coordinates{Lat: cached.Lat, Lng: cached.Lng}, true
}

func (r *HTTPPostcodeResolver) cacheSet(ctx context.Context, key string, coords profile.Coordinates) {
	if r.redis == nil {
		return
	}
	payload, err := json.Marshal(cachedCoords{Lat: coords.Lat, Lng: coords.Lng})
	if err != nil {
		return
	}
	// Cache writes are best-effort
	r.redis.Set(ctx, key, payload, r.cacheTTL)
}

// NormalizePostcode strips all whitespace and uppercases the code
func NormalizePostcode(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

// InferPostcodeCountry returns the ISO country code the format implies,
// or "" for unsupported formats.
func InferPostcodeCountry(normalized string) string {
	switch {
	case nlPostcodePattern.MatchString(normalized):
		return "nl"
	case dePostcodePattern.MatchString(normalized):
		return "de"
	default:
		return ""
	}
}
