package service

import (
	"context"
	"fmt"

	"lol-tracker/internal/analytics"
	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// StatsService runs the read-side aggregations and the streak-based
// session advice. It holds no state between calls; the policy comes from
// config and the data from the store on every request.
type StatsService struct {
	store  MatchStore
	policy analytics.StreakPolicy

	defaultMinGames int
	logger          zerolog.Logger
}

func NewStatsService(store MatchStore, cfg *config.Config, logger zerolog.Logger) *StatsService {
	return &StatsService{
		store: store,
		policy: analytics.StreakPolicy{
			WindowSize:    cfg.StreakWindow,
			StopThreshold: cfg.StopThreshold,
		},
		defaultMinGames: cfg.NemesisMinGames,
		logger:          logger,
	}
}

func (s *StatsService) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.StatsSummary(ctx)
}

func (s *StatsService) ChampionPerformance(ctx context.Context) ([]domain.ChampionPerformance, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.ChampionPerformance(ctx)
}

func (s *StatsService) Nemesis(ctx context.Context, minGames int) ([]domain.NemesisEntry, error) {
	if minGames <= 0 {
		minGames = s.defaultMinGames
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.NemesisList(ctx, minGames)
}

func (s *StatsService) Heatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.ActivityHeatmap(ctx)
}

// StreakAdvice evaluates the configured recent-game window and recommends
// whether to keep queueing.
func (s *StatsService) StreakAdvice(ctx context.Context) (*analytics.StreakAdvice, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	window, err := s.store.ListRecent(ctx, s.policy.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak window: %w", err)
	}

	advice := analytics.EvaluateStreak(window, s.policy)
	s.logger.Debug().
		Str("verdict", string(advice.Verdict)).
		Int("loss_streak", advice.LossStreak).
		Msg("streak evaluated")
	return &advice, nil
}
