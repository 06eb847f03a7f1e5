package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lol-tracker/internal/analytics"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// MatchRepository is the single storage backend for match records:
// insert-if-absent, partial subjective updates, ordered scans and grouped
// aggregates, all against one sqlite table keyed by game_id.
type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const matchColumns = `game_id, date, champion, role, kills, deaths, assists,
	cs_total, cs_min, control_wards, win, enemy_champion, game_duration_minutes,
	lp_change, tilt_level, impact_rating, notes, vod_review`

func validateMatch(m *domain.Match) error {
	if m.GameID == "" {
		return &domain.ValidationError{Field: "game_id", Reason: "must not be empty"}
	}
	if m.Champion == "" {
		return &domain.ValidationError{Field: "champion", Reason: "must not be empty"}
	}
	if m.Role == "" {
		return &domain.ValidationError{Field: "role", Reason: "must not be empty"}
	}
	if m.Date.IsZero() {
		return &domain.ValidationError{Field: "date", Reason: "must be set"}
	}
	if m.Kills < 0 || m.Deaths < 0 || m.Assists < 0 {
		return &domain.ValidationError{Field: "kda", Reason: "counters must be non-negative"}
	}
	if m.CSTotal < 0 || m.ControlWards < 0 {
		return &domain.ValidationError{Field: "cs_total", Reason: "counters must be non-negative"}
	}
	if m.DurationMinutes < 0 {
		return &domain.ValidationError{Field: "game_duration_minutes", Reason: "must be non-negative"}
	}
	return nil
}

// Insert persists a new match record. Re-submitting an already known
// game_id is a no-op returning false; uniqueness is enforced by the
// primary key, not by a read-then-write in application code.
func (r *MatchRepository) Insert(ctx context.Context, m *domain.Match) (bool, error) {
	if err := validateMatch(m); err != nil {
		return false, err
	}

	enemy := m.EnemyChampion
	if enemy == "" {
		enemy = domain.UnknownEnemy
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (
			game_id, date, champion, role, kills, deaths, assists,
			cs_total, cs_min, control_wards, win, enemy_champion, game_duration_minutes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO NOTHING`,
		m.GameID, m.Date, m.Champion, m.Role, m.Kills, m.Deaths, m.Assists,
		m.CSTotal, m.CSPerMin, m.ControlWards, m.Win, enemy, m.DurationMinutes,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert match %s: %w", m.GameID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	inserted := rows > 0
	r.logger.Debug().
		Str("game_id", m.GameID).
		Str("champion", m.Champion).
		Bool("inserted", inserted).
		Msg("match insert")
	return inserted, nil
}

// InsertBatch ingests several records in one transaction, returning the
// number of newly stored matches. Duplicates inside the batch count as
// not-inserted, same as Insert.
func (r *MatchRepository) InsertBatch(ctx context.Context, matches []domain.Match) (int, error) {
	for i := range matches {
		if err := validateMatch(&matches[i]); err != nil {
			return 0, err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(matches) {
			end = len(matches)
		}

		for _, m := range matches[i:end] {
			enemy := m.EnemyChampion
			if enemy == "" {
				enemy = domain.UnknownEnemy
			}
			res, err := tx.ExecContext(ctx, `
				INSERT INTO matches (
					game_id, date, champion, role, kills, deaths, assists,
					cs_total, cs_min, control_wards, win, enemy_champion, game_duration_minutes
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(game_id) DO NOTHING`,
				m.GameID, m.Date, m.Champion, m.Role, m.Kills, m.Deaths, m.Assists,
				m.CSTotal, m.CSPerMin, m.ControlWards, m.Win, enemy, m.DurationMinutes,
			)
			if err != nil {
				return 0, fmt.Errorf("failed to insert match %s: %w", m.GameID, err)
			}
			if rows, err := res.RowsAffected(); err == nil && rows > 0 {
				inserted++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	return inserted, nil
}

// UpdateReview applies a partial subjective update to exactly one record.
// Fields absent from the patch keep their prior value. Returns false when
// the patch is empty or the game id is unknown.
func (r *MatchRepository) UpdateReview(ctx context.Context, gameID string, review domain.MatchReview) (bool, error) {
	if review.TiltLevel != nil && (*review.TiltLevel < 1 || *review.TiltLevel > 5) {
		return false, &domain.ValidationError{Field: "tilt_level", Reason: "must be between 1 and 5"}
	}
	if review.ImpactRating != nil && !domain.ValidImpactRating(*review.ImpactRating) {
		return false, &domain.ValidationError{Field: "impact_rating", Reason: "not in the allowed vocabulary"}
	}

	var sets []string
	var params []any

	if review.LPChange != nil {
		sets = append(sets, "lp_change = ?")
		params = append(params, *review.LPChange)
	}
	if review.TiltLevel != nil {
		sets = append(sets, "tilt_level = ?")
		params = append(params, *review.TiltLevel)
	}
	if review.ImpactRating != nil {
		sets = append(sets, "impact_rating = ?")
		params = append(params, *review.ImpactRating)
	}
	if review.Notes != nil {
		sets = append(sets, "notes = ?")
		params = append(params, *review.Notes)
	}
	if review.VodReview != nil {
		sets = append(sets, "vod_review = ?")
		params = append(params, *review.VodReview)
	}

	if len(sets) == 0 {
		return false, nil
	}

	params = append(params, gameID)
	query := fmt.Sprintf("UPDATE matches SET %s WHERE game_id = ?", strings.Join(sets, ", "))

	res, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return false, fmt.Errorf("failed to update match %s: %w", gameID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}

	updated := rows > 0
	r.logger.Debug().
		Str("game_id", gameID).
		Int("fields", len(sets)).
		Bool("updated", updated).
		Msg("match review update")
	return updated, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, gameID string) (*domain.Match, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM matches WHERE game_id = ?", matchColumns), gameID)

	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", gameID, err)
	}
	return m, nil
}

func (r *MatchRepository) ListRecent(ctx context.Context, limit int) ([]domain.Match, error) {
	if limit <= 0 {
		limit = constants.DefaultRecentLimit
	}
	return r.queryMatches(ctx,
		fmt.Sprintf("SELECT %s FROM matches ORDER BY date DESC LIMIT ?", matchColumns), limit)
}

// MatchupHistory lists every game of champion against enemy, newest first.
// The Unknown sentinel never names a real opponent, so it yields nothing.
func (r *MatchRepository) MatchupHistory(ctx context.Context, champion, enemy string) ([]domain.Match, error) {
	if !domain.HasEnemyData(enemy) {
		return []domain.Match{}, nil
	}
	return r.queryMatches(ctx,
		fmt.Sprintf("SELECT %s FROM matches WHERE champion = ? AND enemy_champion = ? ORDER BY date DESC", matchColumns),
		champion, enemy)
}

// SearchByEnemy matches enemy champion names by case-insensitive
// substring, newest first.
func (r *MatchRepository) SearchByEnemy(ctx context.Context, pattern string) ([]domain.Match, error) {
	return r.queryMatches(ctx,
		fmt.Sprintf("SELECT %s FROM matches WHERE enemy_champion LIKE ? ORDER BY date DESC", matchColumns),
		"%"+pattern+"%")
}

func (r *MatchRepository) StatsSummary(ctx context.Context) (*domain.StatsSummary, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(win), 0),
			AVG(kills), AVG(deaths), AVG(assists), AVG(cs_min)
		FROM matches`)

	var total, wins int
	var avgKills, avgDeaths, avgAssists, avgCS sql.NullFloat64
	if err := row.Scan(&total, &wins, &avgKills, &avgDeaths, &avgAssists, &avgCS); err != nil {
		return nil, fmt.Errorf("failed to query stats summary: %w", err)
	}

	summary := &domain.StatsSummary{
		TotalGames:  total,
		TotalWins:   wins,
		AvgKills:    analytics.Round1(avgKills.Float64),
		AvgDeaths:   analytics.Round1(avgDeaths.Float64),
		AvgAssists:  analytics.Round1(avgAssists.Float64),
		AvgCSPerMin: analytics.Round1(avgCS.Float64),
	}
	if total > 0 {
		summary.Winrate = analytics.Round1(float64(wins) / float64(total) * 100)
	}
	return summary, nil
}

func (r *MatchRepository) ChampionPerformance(ctx context.Context) ([]domain.ChampionPerformance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT champion,
			COUNT(*) AS games_played,
			SUM(win) AS wins,
			AVG(kills), AVG(deaths), AVG(assists), AVG(cs_min)
		FROM matches
		GROUP BY champion
		ORDER BY games_played DESC, wins DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query champion performance: %w", err)
	}
	defer rows.Close()

	var result []domain.ChampionPerformance
	for rows.Next() {
		var p domain.ChampionPerformance
		var avgKills, avgDeaths, avgAssists, avgCS float64
		if err := rows.Scan(&p.Champion, &p.GamesPlayed, &p.Wins,
			&avgKills, &avgDeaths, &avgAssists, &avgCS); err != nil {
			return nil, fmt.Errorf("failed to scan champion performance: %w", err)
		}

		p.Losses = p.GamesPlayed - p.Wins
		if p.GamesPlayed > 0 {
			p.Winrate = analytics.Round1(float64(p.Wins) / float64(p.GamesPlayed) * 100)
		}
		p.AvgKills = analytics.Round1(avgKills)
		p.AvgDeaths = analytics.Round1(avgDeaths)
		p.AvgAssists = analytics.Round1(avgAssists)
		if avgDeaths > 0 {
			p.KDARatio = analytics.Round2((avgKills + avgAssists) / avgDeaths)
		} else {
			p.KDARatio = analytics.Round2(avgKills + avgAssists)
		}
		p.AvgCSPerMin = analytics.Round1(avgCS)
		result = append(result, p)
	}
	return result, rows.Err()
}

// NemesisList ranks opponents by winrate ascending, so the hardest
// matchups come first. Ties break on sample size descending: more games
// against the same opponent is more statistically meaningful.
func (r *MatchRepository) NemesisList(ctx context.Context, minGames int) ([]domain.NemesisEntry, error) {
	if minGames < 1 {
		minGames = 1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT enemy_champion,
			COUNT(*) AS games,
			SUM(win) AS wins,
			(CAST(SUM(win) AS REAL) / COUNT(*)) * 100 AS winrate,
			AVG(cs_min), AVG(deaths)
		FROM matches
		WHERE enemy_champion IS NOT NULL AND enemy_champion != '' AND enemy_champion != ?
		GROUP BY enemy_champion
		HAVING COUNT(*) >= ?
		ORDER BY winrate ASC, games DESC
		LIMIT ?`,
		domain.UnknownEnemy, minGames, constants.NemesisLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query nemesis list: %w", err)
	}
	defer rows.Close()

	var result []domain.NemesisEntry
	for rows.Next() {
		var e domain.NemesisEntry
		var winrate, avgCS, avgDeaths float64
		if err := rows.Scan(&e.EnemyChampion, &e.Games, &e.Wins, &winrate, &avgCS, &avgDeaths); err != nil {
			return nil, fmt.Errorf("failed to scan nemesis entry: %w", err)
		}
		e.Winrate = analytics.Round1(winrate)
		e.AvgCSPerMin = analytics.Round1(avgCS)
		e.AvgDeaths = analytics.Round1(avgDeaths)
		result = append(result, e)
	}
	return result, rows.Err()
}

// ActivityHeatmap buckets all stored games by weekday and hour. The date
// math runs in Go rather than in sqlite string functions so bucketing
// stays timezone-correct and independently testable.
func (r *MatchRepository) ActivityHeatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT date, win FROM matches")
	if err != nil {
		return nil, fmt.Errorf("failed to query activity data: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.Date, &m.Win); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return analytics.BucketActivity(matches), nil
}

func (r *MatchRepository) queryMatches(ctx context.Context, query string, args ...any) ([]domain.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*domain.Match, error) {
	var m domain.Match
	var lpChange, tiltLevel sql.NullInt64
	var impactRating, notes sql.NullString

	err := row.Scan(
		&m.GameID, &m.Date, &m.Champion, &m.Role, &m.Kills, &m.Deaths, &m.Assists,
		&m.CSTotal, &m.CSPerMin, &m.ControlWards, &m.Win, &m.EnemyChampion, &m.DurationMinutes,
		&lpChange, &tiltLevel, &impactRating, &notes, &m.VodReview,
	)
	if err != nil {
		return nil, err
	}

	if lpChange.Valid {
		v := int(lpChange.Int64)
		m.LPChange = &v
	}
	if tiltLevel.Valid {
		v := int(tiltLevel.Int64)
		m.TiltLevel = &v
	}
	if impactRating.Valid {
		m.ImpactRating = &impactRating.String
	}
	if notes.Valid {
		m.Notes = &notes.String
	}
	return &m, nil
}
