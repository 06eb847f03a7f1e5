package service

import (
	"context"
	"fmt"
	"time"

	"lol-tracker/internal/analytics"
	"lol-tracker/internal/api"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SyncService pulls recent ranked games from the Riot API, derives the
// stored metrics and ingests them idempotently.
type SyncService struct {
	riot   *api.RiotClient
	store  MatchStore
	logger zerolog.Logger
}

func NewSyncService(riot *api.RiotClient, store MatchStore, logger zerolog.Logger) *SyncService {
	return &SyncService{riot: riot, store: store, logger: logger}
}

type SyncResult struct {
	Fetched  int            `json:"fetched"`
	Imported int            `json:"imported"`
	Matches  []domain.Match `json:"matches"`
}

// SyncRecent fetches the player's latest ranked solo games and stores the
// ones not seen before. Already-known games are skipped by the store, so
// re-running a sync never duplicates records.
func (s *SyncService) SyncRecent(ctx context.Context, riotID string, limit int) (*SyncResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	syncID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sync id: %w", err)
	}
	logger := s.logger.With().Str("sync_id", syncID).Logger()

	if limit <= 0 {
		limit = constants.DefaultSyncLimit
	}
	if limit > constants.MaxSyncLimit {
		limit = constants.MaxSyncLimit
	}

	name, tag, err := api.ParseRiotID(riotID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "riot_id", Reason: err.Error()}
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	account, err := s.riot.GetAccount(apiCtx, name, tag)
	if err != nil {
		logger.Error().Err(err).Str("riot_id", riotID).Msg("failed to resolve account")
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	matchIDs, err := s.riot.GetMatchIDs(apiCtx, account.Puuid, limit, constants.RankedSoloQueue)
	if err != nil {
		logger.Error().Err(err).Str("puuid", account.Puuid).Msg("failed to list match ids")
		return nil, fmt.Errorf("failed to list match ids: %w", err)
	}

	if len(matchIDs) == 0 {
		logger.Info().Str("puuid", account.Puuid).Msg("no recent ranked games")
		return &SyncResult{Matches: []domain.Match{}}, nil
	}

	matches, err := s.fetchMatches(apiCtx, account.Puuid, matchIDs, logger)
	if err != nil {
		return nil, err
	}

	imported, err := s.store.InsertBatch(ctx, matches)
	if err != nil {
		logger.Error().Err(err).Msg("failed to ingest matches")
		return nil, fmt.Errorf("failed to ingest matches: %w", err)
	}

	logger.Info().
		Str("puuid", account.Puuid).
		Int("fetched", len(matches)).
		Int("imported", imported).
		Msg("sync completed")

	return &SyncResult{Fetched: len(matches), Imported: imported, Matches: matches}, nil
}

func (s *SyncService) fetchMatches(ctx context.Context, puuid string, matchIDs []string, logger zerolog.Logger) ([]domain.Match, error) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	results := make([]*domain.Match, len(matchIDs))
	for i, matchID := range matchIDs {
		g.Go(func() error {
			raw, err := s.riot.GetMatch(gCtx, matchID)
			if err != nil {
				return fmt.Errorf("failed to fetch match %s: %w", matchID, err)
			}
			m, err := normalizeMatch(raw, puuid)
			if err != nil {
				// The player may not appear in a remake or corrupt
				// payload; skip it rather than failing the whole sync.
				logger.Warn().Err(err).Str("match_id", matchID).Msg("skipping match")
				return nil
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to fetch match details")
		return nil, err
	}

	matches := make([]domain.Match, 0, len(results))
	for _, m := range results {
		if m != nil {
			matches = append(matches, *m)
		}
	}
	return matches, nil
}

// normalizeMatch turns a raw match-v5 payload into the stored record for
// one subject player, deriving cs/min, role and lane opponent.
func normalizeMatch(raw *api.MatchResponse, puuid string) (*domain.Match, error) {
	var subject *api.MatchParticipant
	for i := range raw.Info.Participants {
		if raw.Info.Participants[i].Puuid == puuid {
			subject = &raw.Info.Participants[i]
			break
		}
	}
	if subject == nil {
		return nil, fmt.Errorf("player %s not found in match %s", puuid, raw.Metadata.MatchID)
	}

	participants := make([]analytics.Participant, len(raw.Info.Participants))
	for i, p := range raw.Info.Participants {
		participants[i] = analytics.Participant{
			Champion: p.ChampionName,
			TeamID:   p.TeamID,
			Role:     p.TeamPosition,
		}
	}

	durationMinutes := analytics.Round2(float64(raw.Info.GameDuration) / 60)
	csTotal := subject.TotalMinionsKilled + subject.NeutralMinionsKilled

	return &domain.Match{
		GameID:          raw.Metadata.MatchID,
		Date:            time.UnixMilli(raw.Info.GameEndTimestamp).UTC(),
		Champion:        subject.ChampionName,
		Role:            analytics.NormalizeRole(subject.TeamPosition, subject.IndividualPosition),
		Kills:           subject.Kills,
		Deaths:          subject.Deaths,
		Assists:         subject.Assists,
		CSTotal:         csTotal,
		CSPerMin:        analytics.FarmPerMinute(csTotal, durationMinutes),
		ControlWards:    subject.VisionWardsBoughtInGame,
		Win:             subject.Win,
		EnemyChampion: analytics.ResolveLaneOpponent(analytics.Participant{
			Champion: subject.ChampionName,
			TeamID:   subject.TeamID,
			Role:     subject.TeamPosition,
		}, participants),
		DurationMinutes: durationMinutes,
	}, nil
}
