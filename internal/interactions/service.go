// internal/interactions/service.go

package interactions

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrSelfInteraction  = errors.New("cannot interact with yourself")
	ErrInvalidDirection = errors.New("invalid swipe direction")
)

// Service handles swipes, matches and blocks
type Service interface {
	// Swipe records a like or pass. Swipes on showcase profiles are
	// acknowledged but never persisted, so demo accounts can never match.
	Swipe(ctx context.Context, userID, targetID int64, direction string) (*SwipeResponse, error)
	GetMatches(ctx context.Context, userID int64) ([]MatchedUser, error)
	Block(ctx context.Context, blockerID, blockedID int64) error
	Unblock(ctx context.Context, blockerID, blockedID int64) error
}

type service struct {
	repo Repository
}

// NewService creates the interactions service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Swipe(ctx context.Context, userID, targetID int64, direction string) (*SwipeResponse, error) {
	if userID == targetID {
		return nil, ErrSelfInteraction
	}
	if direction != DirectionLike && direction != DirectionPass {
		return nil, ErrInvalidDirection
	}

	isShowcase, err := s.repo.IsShowcaseProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if isShowcase {
		RecordSwipe(direction, false)
		return &SwipeResponse{Recorded: false}, nil
	}

	if err := s.repo.UpsertSwipe(ctx, userID, targetID, direction); err != nil {
		return nil, err
	}
	RecordSwipe(direction, true)

	resp := &SwipeResponse{Recorded: true}
	if direction != DirectionLike {
		return resp, nil
	}

	reciprocal, err := s.repo.HasLike(ctx, targetID, userID)
	if err != nil {
		return nil, fmt.Errorf("checking for mutual like: %w", err)
	}
	if !reciprocal {
		return resp, nil
	}

	match, err := s.repo.CreateMatch(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}
	RecordMatch()

	resp.Matched = true
	resp.MatchID = &match.ID
	return resp, nil
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]MatchedUser, error) {
	return s.repo.GetMatchesForUser(ctx, userID)
}

func (s *service) Block(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID == blockedID {
		return ErrSelfInteraction
	}
	if err := s.repo.CreateBlock(ctx, blockerID, blockedID); err != nil {
		return err
	}
	RecordBlock()
	return nil
}

func (s *service) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID == blockedID {
		return ErrSelfInteraction
	}
	return s.repo.DeleteBlock(ctx, blockerID, blockedID)
}
