package service

import (
	"context"
	"fmt"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// MatchService exposes the record readers and the subjective-review
// mutator to the transport layer.
type MatchService struct {
	store  MatchStore
	logger zerolog.Logger
}

func NewMatchService(store MatchStore, logger zerolog.Logger) *MatchService {
	return &MatchService{store: store, logger: logger}
}

func (s *MatchService) Recent(ctx context.Context, limit int) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.ListRecent(ctx, limit)
}

func (s *MatchService) Get(ctx context.Context, gameID string) (*domain.Match, error) {
	if gameID == "" {
		return nil, &domain.ValidationError{Field: "game_id", Reason: "must not be empty"}
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.GetByID(ctx, gameID)
}

// Review applies a partial subjective update. Gameplay fields cannot be
// touched through this path.
func (s *MatchService) Review(ctx context.Context, gameID string, review domain.MatchReview) (bool, error) {
	if gameID == "" {
		return false, &domain.ValidationError{Field: "game_id", Reason: "must not be empty"}
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	updated, err := s.store.UpdateReview(ctx, gameID, review)
	if err != nil {
		return false, fmt.Errorf("failed to update review: %w", err)
	}
	if updated {
		s.logger.Info().Str("game_id", gameID).Msg("match review saved")
	}
	return updated, nil
}

func (s *MatchService) MatchupHistory(ctx context.Context, champion, enemy string) ([]domain.Match, error) {
	if champion == "" {
		return nil, &domain.ValidationError{Field: "champion", Reason: "must not be empty"}
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.MatchupHistory(ctx, champion, enemy)
}

func (s *MatchService) SearchByEnemy(ctx context.Context, pattern string) ([]domain.Match, error) {
	if pattern == "" {
		return nil, &domain.ValidationError{Field: "enemy", Reason: "must not be empty"}
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.SearchByEnemy(ctx, pattern)
}
