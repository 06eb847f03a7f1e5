package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/database"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *repository.MatchRepository) {
	t.Helper()

	cfg := &config.Config{
		DBPath:          filepath.Join(t.TempDir(), "tracker.db"),
		StreakWindow:    constants.DefaultStreakWindow,
		StopThreshold:   constants.DefaultStopThreshold,
		NemesisMinGames: constants.DefaultNemesisMinGames,
	}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewMatchRepository(db, zerolog.Nop())
	matchSvc := service.NewMatchService(repo, zerolog.Nop())
	statsSvc := service.NewStatsService(repo, cfg, zerolog.Nop())

	mux := http.NewServeMux()
	NewTrackerServer(nil, matchSvc, statsSvc, zerolog.Nop()).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, repo
}

func seedMatch(t *testing.T, repo *repository.MatchRepository, id string, daysAgo int, win bool) {
	t.Helper()
	m := domain.Match{
		GameID:          id,
		Date:            time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		Champion:        "Ahri",
		Role:            "MIDDLE",
		Kills:           5,
		Deaths:          2,
		Assists:         7,
		CSTotal:         210,
		CSPerMin:        7.0,
		ControlWards:    3,
		Win:             win,
		EnemyChampion:   "Zed",
		DurationMinutes: 30,
	}
	inserted, err := repo.Insert(t.Context(), &m)
	require.NoError(t, err)
	require.True(t, inserted)
}

func TestReviewEndpoint(t *testing.T) {
	ts, repo := newTestServer(t)
	seedMatch(t, repo, "EUW1_1", 0, true)

	body := strings.NewReader(`{"tilt_level": 2, "notes": "clean game"}`)
	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/api/matches/EUW1_1/review", body)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result["updated"])

	got, err := repo.GetByID(t.Context(), "EUW1_1")
	require.NoError(t, err)
	require.NotNil(t, got.TiltLevel)
	assert.Equal(t, 2, *got.TiltLevel)
}

func TestReviewEndpointValidation(t *testing.T) {
	ts, repo := newTestServer(t)
	seedMatch(t, repo, "EUW1_2", 0, false)

	body := strings.NewReader(`{"tilt_level": 6}`)
	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/api/matches/EUW1_2/review", body)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	got, err := repo.GetByID(t.Context(), "EUW1_2")
	require.NoError(t, err)
	assert.Nil(t, got.TiltLevel, "a rejected patch must not be partially applied")
}

func TestGetMatchNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/matches/EUW1_missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSummaryEndpointEmptyStore(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stats/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summary domain.StatsSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 0, summary.TotalGames)
	assert.Equal(t, 0.0, summary.Winrate)
}

func TestStreakEndpoint(t *testing.T) {
	ts, repo := newTestServer(t)
	seedMatch(t, repo, "EUW1_10", 0, false)
	seedMatch(t, repo, "EUW1_11", 1, false)
	seedMatch(t, repo, "EUW1_12", 2, true)

	resp, err := http.Get(ts.URL + "/api/streak")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var advice struct {
		Verdict    string `json:"verdict"`
		LossStreak int    `json:"loss_streak"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&advice))
	assert.Equal(t, "stop", advice.Verdict)
	assert.Equal(t, 2, advice.LossStreak)
}

func TestRecentEndpointOrder(t *testing.T) {
	ts, repo := newTestServer(t)
	seedMatch(t, repo, "EUW1_20", 1, true)
	seedMatch(t, repo, "EUW1_21", 0, false)

	resp, err := http.Get(ts.URL + "/api/matches?limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()

	var matches []domain.Match
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "EUW1_21", matches[0].GameID)
}
