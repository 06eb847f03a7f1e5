// Package analytics holds the pure domain math: per-match metric
// derivation, lane-opponent resolution, activity bucketing and the streak
// evaluator. Everything here is deterministic and free of I/O so the rules
// can be unit-tested in isolation.
package analytics

import (
	"math"
	"sort"

	"lol-tracker/internal/domain"
)

// Round1 rounds to one decimal place, Round2 to two. The aggregate
// queries and derived metrics agree on these two precisions.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// FarmPerMinute derives cs/min at ingestion time. A non-positive duration
// yields 0 rather than an error; the value is stored and never recomputed.
func FarmPerMinute(csTotal int, durationMinutes float64) float64 {
	if durationMinutes <= 0 {
		return 0.0
	}
	return Round2(float64(csTotal) / durationMinutes)
}

// Participant is the slice of a raw match participant the deriver needs.
type Participant struct {
	Champion string
	TeamID   int
	Role     string // teamPosition; may be empty or "Invalid"
}

// NormalizeRole picks the stored role for the subject: teamPosition when
// usable, otherwise individualPosition, otherwise the Unknown sentinel.
func NormalizeRole(teamPosition, individualPosition string) string {
	if teamPosition != "" && teamPosition != "Invalid" {
		return teamPosition
	}
	if individualPosition != "" {
		return individualPosition
	}
	return domain.UnknownEnemy
}

// ResolveLaneOpponent identifies the direct lane rival: the participant on
// the opposing team holding the same positional role as the subject. When
// the subject role is missing or invalid, or no participant matches, the
// Unknown sentinel is returned so downstream queries can exclude the game
// from opponent aggregates.
func ResolveLaneOpponent(subject Participant, participants []Participant) string {
	if subject.Role == "" || subject.Role == "Invalid" {
		return domain.UnknownEnemy
	}
	for _, p := range participants {
		if p.TeamID != subject.TeamID && p.Role == subject.Role {
			return p.Champion
		}
	}
	return domain.UnknownEnemy
}

// BucketActivity groups matches into (weekday, hour) cells. Weekday uses
// the 0=Sunday convention of time.Weekday. Only non-empty buckets are
// returned, ordered by weekday then hour.
func BucketActivity(matches []domain.Match) []domain.HeatmapCell {
	type key struct{ weekday, hour int }
	buckets := make(map[key]*domain.HeatmapCell)

	for _, m := range matches {
		k := key{int(m.Date.Weekday()), m.Date.Hour()}
		cell, ok := buckets[k]
		if !ok {
			cell = &domain.HeatmapCell{Weekday: k.weekday, Hour: k.hour}
			buckets[k] = cell
		}
		cell.Games++
		if m.Win {
			cell.Wins++
		}
	}

	cells := make([]domain.HeatmapCell, 0, len(buckets))
	for _, cell := range buckets {
		cells = append(cells, *cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Weekday != cells[j].Weekday {
			return cells[i].Weekday < cells[j].Weekday
		}
		return cells[i].Hour < cells[j].Hour
	})
	return cells
}
