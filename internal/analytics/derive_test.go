package analytics

import (
	"testing"
	"time"

	"lol-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFarmPerMinute(t *testing.T) {
	assert.Equal(t, 7.33, FarmPerMinute(220, 30))
	assert.Equal(t, 8.0, FarmPerMinute(240, 30))
	assert.Equal(t, 0.0, FarmPerMinute(100, 0), "zero duration must not divide")
	assert.Equal(t, 0.0, FarmPerMinute(100, -5))
	assert.Equal(t, 0.0, FarmPerMinute(0, 25))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "MIDDLE", NormalizeRole("MIDDLE", "TOP"))
	assert.Equal(t, "TOP", NormalizeRole("", "TOP"))
	assert.Equal(t, "JUNGLE", NormalizeRole("Invalid", "JUNGLE"))
	assert.Equal(t, domain.UnknownEnemy, NormalizeRole("", ""))
	assert.Equal(t, domain.UnknownEnemy, NormalizeRole("Invalid", ""))
}

func TestResolveLaneOpponent(t *testing.T) {
	subject := Participant{Champion: "Ahri", TeamID: 100, Role: "MIDDLE"}
	participants := []Participant{
		subject,
		{Champion: "Garen", TeamID: 100, Role: "TOP"},
		{Champion: "Zed", TeamID: 200, Role: "MIDDLE"},
		{Champion: "Darius", TeamID: 200, Role: "TOP"},
	}

	assert.Equal(t, "Zed", ResolveLaneOpponent(subject, participants))
}

func TestResolveLaneOpponentSameTeamIgnored(t *testing.T) {
	subject := Participant{Champion: "Ahri", TeamID: 100, Role: "MIDDLE"}
	participants := []Participant{
		subject,
		// Same role on the same team must never be picked.
		{Champion: "Yasuo", TeamID: 100, Role: "MIDDLE"},
		{Champion: "Darius", TeamID: 200, Role: "TOP"},
	}

	assert.Equal(t, domain.UnknownEnemy, ResolveLaneOpponent(subject, participants))
}

func TestResolveLaneOpponentMissingRole(t *testing.T) {
	participants := []Participant{
		{Champion: "Zed", TeamID: 200, Role: "MIDDLE"},
	}

	subject := Participant{Champion: "Ahri", TeamID: 100, Role: ""}
	assert.Equal(t, domain.UnknownEnemy, ResolveLaneOpponent(subject, participants))

	subject.Role = "Invalid"
	assert.Equal(t, domain.UnknownEnemy, ResolveLaneOpponent(subject, participants))
}

func TestBucketActivity(t *testing.T) {
	// A Monday 21:xx win and loss, plus a Tuesday 09:xx win.
	monday := time.Date(2025, 3, 10, 21, 15, 0, 0, time.UTC)
	tuesday := time.Date(2025, 3, 11, 9, 5, 0, 0, time.UTC)

	cells := BucketActivity([]domain.Match{
		{Date: monday, Win: true},
		{Date: monday.Add(30 * time.Minute), Win: false},
		{Date: tuesday, Win: true},
	})

	assert.Len(t, cells, 2)
	assert.Equal(t, domain.HeatmapCell{Weekday: 1, Hour: 21, Games: 2, Wins: 1}, cells[0])
	assert.Equal(t, domain.HeatmapCell{Weekday: 2, Hour: 9, Games: 1, Wins: 1}, cells[1])
}

func TestBucketActivityEmpty(t *testing.T) {
	assert.Empty(t, BucketActivity(nil))
}
