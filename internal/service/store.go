package service

import (
	"context"

	"lol-tracker/internal/domain"
)

// MatchStore is the storage capability the services depend on:
// insert-if-absent, partial update, ordered scans and grouped aggregates.
// One backend implements it (internal/repository); swapping the storage
// engine means swapping this implementation, not the query logic.
type MatchStore interface {
	Insert(ctx context.Context, m *domain.Match) (bool, error)
	InsertBatch(ctx context.Context, matches []domain.Match) (int, error)
	UpdateReview(ctx context.Context, gameID string, review domain.MatchReview) (bool, error)
	GetByID(ctx context.Context, gameID string) (*domain.Match, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Match, error)
	MatchupHistory(ctx context.Context, champion, enemy string) ([]domain.Match, error)
	SearchByEnemy(ctx context.Context, pattern string) ([]domain.Match, error)
	StatsSummary(ctx context.Context) (*domain.StatsSummary, error)
	ChampionPerformance(ctx context.Context) ([]domain.ChampionPerformance, error)
	NemesisList(ctx context.Context, minGames int) ([]domain.NemesisEntry, error)
	ActivityHeatmap(ctx context.Context) ([]domain.HeatmapCell, error)
}
