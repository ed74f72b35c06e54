// internal/profile/repository.go
// Read-only access to user profiles. Writes happen in the profile service.

package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

// selectColumns is the full column list shared by every profile read
const selectColumns = `
	id, username, display_name, bio, birth_date, gender,
	city, country, latitude, longitude,
	passport_lat, passport_lng, passport_city, passport_expires_at,
	smoking, drinking, children, height_cm,
	education, religion, ethnicity, languages, sports, interests,
	photos, personality, dealbreakers,
	preferred_gender, preferred_min_age, preferred_max_age,
	preferred_distance, preferred_city,
	last_active, is_verified, is_showcase, created_at, updated_at
`

// Repository reads profiles
type Repository interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a profile repository backed by Postgres
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := `SELECT ` + selectColumns + ` FROM profiles WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// SelectColumns exposes the shared column list for repositories that scan
// candidate rows into Profile structs.
func SelectColumns() string {
	return selectColumns
}
