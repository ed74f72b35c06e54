// internal/profile/models.go

package profile

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Profile is the durable user record this core reads. It is owned by the
// profile-management service; nothing here mutates it.
type Profile struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	DisplayName string     `json:"display_name" db:"display_name"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	BirthDate   time.Time  `json:"birth_date" db:"birth_date"`
	Gender      string     `json:"gender" db:"gender"`

	// Location
	City      *string  `json:"city,omitempty" db:"city"`
	Country   *string  `json:"country,omitempty" db:"country"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	// Passport (travel mode) overrides the live location until it expires
	PassportLat       *float64   `json:"passport_lat,omitempty" db:"passport_lat"`
	PassportLng       *float64   `json:"passport_lng,omitempty" db:"passport_lng"`
	PassportCity      *string    `json:"passport_city,omitempty" db:"passport_city"`
	PassportExpiresAt *time.Time `json:"passport_expires_at,omitempty" db:"passport_expires_at"`

	// Lifestyle
	Smoking  *string `json:"smoking,omitempty" db:"smoking"`    // never, socially, regularly
	Drinking *string `json:"drinking,omitempty" db:"drinking"`  // never, socially, regularly
	Children *string `json:"children,omitempty" db:"children"`  // have, want, dont_want, none
	HeightCM *int    `json:"height_cm,omitempty" db:"height_cm"`

	// Demographics
	Education *string        `json:"education,omitempty" db:"education"`
	Religion  *string        `json:"religion,omitempty" db:"religion"`
	Ethnicity *string        `json:"ethnicity,omitempty" db:"ethnicity"`
	Languages pq.StringArray `json:"languages" db:"languages"`
	Sports    pq.StringArray `json:"sports" db:"sports"`
	Interests pq.StringArray `json:"interests" db:"interests"`

	// Media (storage keys, signed on the way out)
	Photos pq.StringArray `json:"photos" db:"photos"`

	// Optional questionnaire payloads
	Personality  NullPersonality  `json:"personality" db:"personality"`
	Dealbreakers NullDealbreakers `json:"dealbreakers" db:"dealbreakers"`

	// Stored preferences, used where no explicit filter is supplied
	PreferredGender   *string  `json:"preferred_gender,omitempty" db:"preferred_gender"`
	PreferredMinAge   *int     `json:"preferred_min_age,omitempty" db:"preferred_min_age"`
	PreferredMaxAge   *int     `json:"preferred_max_age,omitempty" db:"preferred_max_age"`
	PreferredDistance *float64 `json:"preferred_distance,omitempty" db:"preferred_distance"`
	PreferredCity     *string  `json:"preferred_city,omitempty" db:"preferred_city"`

	// Engagement metadata
	LastActive time.Time `json:"last_active" db:"last_active"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
	IsShowcase bool      `json:"is_showcase" db:"is_showcase"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Coordinates is a latitude/longitude pair in degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Age returns whole years at the given instant
func (p *Profile) Age(now time.Time) int {
	age := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	return age
}

// LiveCoords returns the profile's live coordinates, if any
func (p *Profile) LiveCoords() *Coordinates {
	if p.Latitude == nil || p.Longitude == nil {
		return nil
	}
	return &Coordinates{Lat: *p.Latitude, Lng: *p.Longitude}
}

// TravelCoords returns the passport coordinates while travel mode is active
func (p *Profile) TravelCoords(now time.Time) *Coordinates {
	if p.PassportLat == nil || p.PassportLng == nil {
		return nil
	}
	if p.PassportExpiresAt == nil || !p.PassportExpiresAt.After(now) {
		return nil
	}
	return &Coordinates{Lat: *p.PassportLat, Lng: *p.PassportLng}
}

// EffectiveCity is the city candidates are compared against: the passport
// city while travel mode is active, the home city otherwise.
func (p *Profile) EffectiveCity(now time.Time) string {
	if p.TravelCoords(now) != nil && p.PassportCity != nil {
		return *p.PassportCity
	}
	if p.City != nil {
		return *p.City
	}
	return ""
}

// PersonalityProfile holds the questionnaire results used for scoring
type PersonalityProfile struct {
	// Four 1-10 scales
	Openness          int `json:"openness"`
	Conscientiousness int `json:"conscientiousness"`
	Extraversion      int `json:"extraversion"`
	Agreeableness     int `json:"agreeableness"`

	ConflictStyle      string `json:"conflict_style"`      // talk_it_out, need_space, compromise, avoid
	CommunicationStyle string `json:"communication_style"` // direct, playful, thoughtful, reserved
	RelationshipGoal   string `json:"relationship_goal"`   // long_term, short_term, marriage, open

	LoveLanguages LoveLanguages `json:"love_languages"`
}

// LoveLanguages are 1-10 intensities per language
type LoveLanguages struct {
	WordsOfAffirmation int `json:"words_of_affirmation"`
	ActsOfService      int `json:"acts_of_service"`
	ReceivingGifts     int `json:"receiving_gifts"`
	QualityTime        int `json:"quality_time"`
	PhysicalTouch      int `json:"physical_touch"`
}

// NullPersonality is a nullable JSONB personality column
type NullPersonality struct {
	Profile PersonalityProfile
	Valid   bool
}

// Scan implements the sql.Scanner interface
func (n *NullPersonality) Scan(value interface{}) error {
	n.Valid = false
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(bytes, &n.Profile); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the driver.Valuer interface
func (n NullPersonality) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return json.Marshal(n.Profile)
}

// MarshalJSON renders null for absent payloads
func (n NullPersonality) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Profile)
}

// Ptr returns the profile or nil when absent
func (n NullPersonality) Ptr() *PersonalityProfile {
	if !n.Valid {
		return nil
	}
	p := n.Profile
	return &p
}

// Dealbreakers are hard rules. Unlike preferences they are never relaxed:
// each one becomes an AND constraint on the candidate query.
type Dealbreakers struct {
	MustNotSmoke        bool     `json:"must_not_smoke"`
	MustNotDrink        bool     `json:"must_not_drink"`
	MustNotHaveChildren bool     `json:"must_not_have_children"`
	MaxDistanceKM       *float64 `json:"max_distance_km,omitempty"`
}

// NullDealbreakers is a nullable JSONB dealbreakers column
type NullDealbreakers struct {
	Rules Dealbreakers
	Valid bool
}

// Scan implements the sql.Scanner interface
func (n *NullDealbreakers) Scan(value interface{}) error {
	n.Valid = false
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(bytes, &n.Rules); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the driver.Valuer interface
func (n NullDealbreakers) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return json.Marshal(n.Rules)
}

// MarshalJSON renders null for absent payloads
func (n NullDealbreakers) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Rules)
}

// Ptr returns the rules or nil when absent
func (n NullDealbreakers) Ptr() *Dealbreakers {
	if !n.Valid {
		return nil
	}
	d := n.Rules
	return &d
}
