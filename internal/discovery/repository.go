// internal/discovery/repository.go

package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// Repository is the candidate-retrieval surface of the store
type Repository interface {
	// GetExcludedUserIDs returns every user the requester must never see:
	// already swiped, matched or blocked in either direction. The requester's
	// own ID is added by the caller.
	GetExcludedUserIDs(ctx context.Context, userID int64) ([]int64, error)

	// FindCandidates retrieves newest-first profiles matching the predicate
	FindCandidates(ctx context.Context, pred Predicate, limit int) ([]*profile.Profile, error)

	// FindShowcaseCandidates retrieves demo profiles for the fallback pool
	FindShowcaseCandidates(ctx context.Context, q ShowcaseQuery) ([]*profile.Profile, error)

	// GetBoostedUserIDs returns which of the given users hold an unexpired boost
	GetBoostedUserIDs(ctx context.Context, userIDs []int64, now time.Time) (map[int64]bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a discovery repository backed by Postgres
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetExcludedUserIDs(ctx context.Context, userID int64) ([]int64, error) {
	// One round trip for the whole exclusion set
	query := `
		SELECT target_id FROM swipes WHERE user_id = $1
		UNION
		SELECT user2_id FROM matches WHERE user1_id = $1
		UNION
		SELECT user1_id FROM matches WHERE user2_id = $1
		UNION
		SELECT blocked_id FROM blocks WHERE blocker_id = $1
		UNION
		SELECT blocker_id FROM blocks WHERE blocked_id = $1`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("loading excluded user ids: %w", err)
	}
	return ids, nil
}

func (r *postgresRepository) FindCandidates(ctx context.Context, pred Predicate, limit int) ([]*profile.Profile, error) {
	query := `SELECT ` + profile.SelectColumns() + ` FROM profiles`
	args := pred.Args()
	if !pred.IsZero() {
		query += ` WHERE ` + pred.Clause()
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expanding candidate query: %w", err)
	}

	var profiles []*profile.Profile
	if err := r.db.SelectContext(ctx, &profiles, r.db.Rebind(expanded), expandedArgs...); err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}
	return profiles, nil
}

func (r *postgresRepository) FindShowcaseCandidates(ctx context.Context, q ShowcaseQuery) ([]*profile.Profile, error) {
	preds := []Predicate{
		ShowcaseOnly(),
		ExcludeIDs(q.ExcludeIDs),
	}
	if q.Gender != nil {
		preds = append(preds, GenderIs(*q.Gender))
	}
	minAge := q.MinAge
	maxAge := q.MaxAge
	preds = append(preds, AgeBetween(q.Now, &minAge, &maxAge))

	pred := And(preds...)
	query := `SELECT ` + profile.SelectColumns() + ` FROM profiles WHERE ` + pred.Clause() +
		` ORDER BY last_active DESC LIMIT ?`
	args := append(pred.Args(), q.Limit)

	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expanding showcase query: %w", err)
	}

	var profiles []*profile.Profile
	if err := r.db.SelectContext(ctx, &profiles, r.db.Rebind(expanded), expandedArgs...); err != nil {
		return nil, fmt.Errorf("loading showcase candidates: %w", err)
	}
	return profiles, nil
}

func (r *postgresRepository) GetBoostedUserIDs(ctx context.Context, userIDs []int64, now time.Time) (map[int64]bool, error) {
	boosted := make(map[int64]bool, len(userIDs))
	if len(userIDs) == 0 {
		return boosted, nil
	}

	query := `SELECT user_id FROM boosts WHERE user_id = ANY($1) AND expires_at > $2`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, pq.Array(userIDs), now); err != nil {
		return nil, fmt.Errorf("loading boosted user ids: %w", err)
	}
	for _, id := range ids {
		boosted[id] = true
	}
	return boosted, nil
}
