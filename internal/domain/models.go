package domain

import (
	"time"
)

// UnknownEnemy is the sentinel stored when no lane opponent could be
// resolved for a match. Empty, NULL and this value all mean "no opponent
// data" and must be excluded from opponent-specific aggregates.
const UnknownEnemy = "Unknown"

// HasEnemyData reports whether an enemy champion value names a real
// opponent rather than the no-data sentinel.
func HasEnemyData(enemy string) bool {
	return enemy != "" && enemy != UnknownEnemy
}

// ImpactRatings is the fixed vocabulary for the subjective impact field.
var ImpactRatings = []string{"Carried", "Got Carried", "Invisible", "Inted"}

// ValidImpactRating reports whether rating belongs to ImpactRatings.
func ValidImpactRating(rating string) bool {
	for _, r := range ImpactRatings {
		if r == rating {
			return true
		}
	}
	return false
}

// Match is one completed ranked game. Gameplay fields are written once at
// ingestion and never change; only the subjective fields are mutable.
type Match struct {
	GameID          string    `json:"game_id"`
	Date            time.Time `json:"date"`
	Champion        string    `json:"champion"`
	Role            string    `json:"role"`
	Kills           int       `json:"kills"`
	Deaths          int       `json:"deaths"`
	Assists         int       `json:"assists"`
	CSTotal         int       `json:"cs_total"`
	CSPerMin        float64   `json:"cs_min"`
	ControlWards    int       `json:"control_wards"`
	Win             bool      `json:"win"`
	EnemyChampion   string    `json:"enemy_champion"`
	DurationMinutes float64   `json:"game_duration_minutes"`

	// Subjective fields, filled in by the player after the game.
	LPChange     *int    `json:"lp_change"`
	TiltLevel    *int    `json:"tilt_level"`
	ImpactRating *string `json:"impact_rating"`
	Notes        *string `json:"notes"`
	VodReview    bool    `json:"vod_review"`
}

// MatchReview is a partial update of the subjective fields. Nil fields are
// left untouched.
type MatchReview struct {
	LPChange     *int    `json:"lp_change"`
	TiltLevel    *int    `json:"tilt_level"`
	ImpactRating *string `json:"impact_rating"`
	Notes        *string `json:"notes"`
	VodReview    *bool   `json:"vod_review"`
}

// Empty reports whether the review patch carries no fields at all.
func (r MatchReview) Empty() bool {
	return r.LPChange == nil && r.TiltLevel == nil && r.ImpactRating == nil &&
		r.Notes == nil && r.VodReview == nil
}

type StatsSummary struct {
	TotalGames  int     `json:"total_games"`
	TotalWins   int     `json:"total_wins"`
	Winrate     float64 `json:"winrate"`
	AvgKills    float64 `json:"avg_kills"`
	AvgDeaths   float64 `json:"avg_deaths"`
	AvgAssists  float64 `json:"avg_assists"`
	AvgCSPerMin float64 `json:"avg_cs_min"`
}

type ChampionPerformance struct {
	Champion    string  `json:"champion"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Winrate     float64 `json:"winrate"`
	AvgKills    float64 `json:"avg_kills"`
	AvgDeaths   float64 `json:"avg_deaths"`
	AvgAssists  float64 `json:"avg_assists"`
	KDARatio    float64 `json:"kda_ratio"`
	AvgCSPerMin float64 `json:"avg_cs_min"`
}

type NemesisEntry struct {
	EnemyChampion string  `json:"enemy_champion"`
	Games         int     `json:"games"`
	Wins          int     `json:"wins"`
	Winrate       float64 `json:"winrate"`
	AvgCSPerMin   float64 `json:"avg_cs_min"`
	AvgDeaths     float64 `json:"avg_deaths"`
}

// HeatmapCell is one non-empty (weekday, hour) activity bucket. Weekday
// follows the 0=Sunday convention. Winrate is left to the consumer so a
// missing bucket stays distinguishable from a 0% one.
type HeatmapCell struct {
	Weekday int `json:"weekday"`
	Hour    int `json:"hour"`
	Games   int `json:"games"`
	Wins    int `json:"wins"`
}
