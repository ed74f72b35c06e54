// internal/interactions/repository.go

package interactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrBlockNotFound = errors.New("block not found")
)

// Repository persists swipes, matches and blocks
type Repository interface {
	UpsertSwipe(ctx context.Context, userID, targetID int64, direction string) error
	HasLike(ctx context.Context, userID, targetID int64) (bool, error)
	CreateMatch(ctx context.Context, userA, userB int64) (*Match, error)
	GetMatchesForUser(ctx context.Context, userID int64) ([]MatchedUser, error)
	IsShowcaseProfile(ctx context.Context, userID int64) (bool, error)
	CreateBlock(ctx context.Context, blockerID, blockedID int64) error
	DeleteBlock(ctx context.Context, blockerID, blockedID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates an interactions repository backed by Postgres
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertSwipe(ctx context.Context, userID, targetID int64, direction string) error {
	query := `
		INSERT INTO swipes (user_id, target_id, direction, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, target_id)
		DO UPDATE SET direction = EXCLUDED.direction, created_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, targetID, direction); err != nil {
		return fmt.Errorf("recording swipe: %w", err)
	}
	return nil
}

func (r *postgresRepository) HasLike(ctx context.Context, userID, targetID int64) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM swipes WHERE user_id = $1 AND target_id = $2 AND direction = 'like'
	)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, targetID); err != nil {
		return false, fmt.Errorf("checking reciprocal like: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreateMatch(ctx context.Context, userA, userB int64) (*Match, error) {
	// One row per pair, smaller ID first
	user1, user2 := userA, userB
	if user1 > user2 {
		user1, user2 = user2, user1
	}

	query := `
		INSERT INTO matches (user1_id, user2_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
		RETURNING id, user1_id, user2_id, created_at`

	var m Match
	if err := r.db.GetContext(ctx, &m, query, user1, user2); err != nil {
		return nil, fmt.Errorf("creating match: %w", err)
	}
	return &m, nil
}

func (r *postgresRepository) GetMatchesForUser(ctx context.Context, userID int64) ([]MatchedUser, error) {
	query := `
		SELECT m.id AS match_id,
		       p.id AS user_id,
		       p.username,
		       p.display_name,
		       p.city,
		       m.created_at AS matched_at
		FROM matches m
		JOIN profiles p
		  ON p.id = CASE WHEN m.user1_id = $1 THEN m.user2_id ELSE m.user1_id END
		WHERE m.user1_id = $1 OR m.user2_id = $1
		ORDER BY m.created_at DESC`

	var matches []MatchedUser
	if err := r.db.SelectContext(ctx, &matches, query, userID); err != nil {
		return nil, fmt.Errorf("loading matches: %w", err)
	}
	return matches, nil
}

func (r *postgresRepository) IsShowcaseProfile(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT is_showcase FROM profiles WHERE id = $1`

	var isShowcase bool
	err := r.db.GetContext(ctx, &isShowcase, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking showcase flag: %w", err)
	}
	return isShowcase, nil
}

func (r *postgresRepository) CreateBlock(ctx context.Context, blockerID, blockedID int64) error {
	query := `
		INSERT INTO blocks (blocker_id, blocked_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, blockerID, blockedID); err != nil {
		return fmt.Errorf("creating block: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteBlock(ctx context.Context, blockerID, blockedID int64) error {
	query := `DELETE FROM blocks WHERE blocker_id = $1 AND blocked_id = $2`

	result, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	if err != nil {
		return fmt.Errorf("removing block: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrBlockNotFound
	}
	return nil
}
