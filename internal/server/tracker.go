package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lol-tracker/internal/domain"
	"lol-tracker/internal/service"

	"github.com/rs/zerolog"
)

// TrackerServer is the JSON HTTP surface over the engine. It knows nothing
// about rendering; every endpoint returns plain structured records.
type TrackerServer struct {
	syncSvc  *service.SyncService
	matchSvc *service.MatchService
	statsSvc *service.StatsService
	logger   zerolog.Logger
}

func NewTrackerServer(syncSvc *service.SyncService, matchSvc *service.MatchService, statsSvc *service.StatsService, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{syncSvc: syncSvc, matchSvc: matchSvc, statsSvc: statsSvc, logger: logger}
}

// Register mounts all routes on mux.
func (s *TrackerServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sync", s.handleSync)
	mux.HandleFunc("GET /api/matches", s.handleRecent)
	mux.HandleFunc("GET /api/matches/{id}", s.handleGetMatch)
	mux.HandleFunc("PATCH /api/matches/{id}/review", s.handleReview)
	mux.HandleFunc("GET /api/matchup", s.handleMatchup)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/stats/summary", s.handleSummary)
	mux.HandleFunc("GET /api/stats/champions", s.handleChampions)
	mux.HandleFunc("GET /api/stats/nemesis", s.handleNemesis)
	mux.HandleFunc("GET /api/stats/heatmap", s.handleHeatmap)
	mux.HandleFunc("GET /api/streak", s.handleStreak)
}

type syncRequest struct {
	RiotID string `json:"riot_id"`
	Limit  int    `json:"limit"`
}

func (s *TrackerServer) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	result, err := s.syncSvc.SyncRecent(r.Context(), req.RiotID, req.Limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *TrackerServer) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	matches, err := s.matchSvc.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, matchList(matches))
}

func (s *TrackerServer) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.matchSvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, match)
}

func (s *TrackerServer) handleReview(w http.ResponseWriter, r *http.Request) {
	var review domain.MatchReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		s.writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	updated, err := s.matchSvc.Review(r.Context(), r.PathValue("id"), review)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (s *TrackerServer) handleMatchup(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matchSvc.MatchupHistory(r.Context(),
		r.URL.Query().Get("champion"), r.URL.Query().Get("enemy"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, matchList(matches))
}

func (s *TrackerServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matchSvc.SearchByEnemy(r.Context(), r.URL.Query().Get("enemy"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, matchList(matches))
}

func (s *TrackerServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.statsSvc.Summary(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *TrackerServer) handleChampions(w http.ResponseWriter, r *http.Request) {
	perf, err := s.statsSvc.ChampionPerformance(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if perf == nil {
		perf = []domain.ChampionPerformance{}
	}
	s.writeJSON(w, http.StatusOK, perf)
}

func (s *TrackerServer) handleNemesis(w http.ResponseWriter, r *http.Request) {
	entries, err := s.statsSvc.Nemesis(r.Context(), queryInt(r, "min_games", 0))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.NemesisEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *TrackerServer) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	cells, err := s.statsSvc.Heatmap(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cells == nil {
		cells = []domain.HeatmapCell{}
	}
	s.writeJSON(w, http.StatusOK, cells)
}

func (s *TrackerServer) handleStreak(w http.ResponseWriter, r *http.Request) {
	advice, err := s.statsSvc.StreakAdvice(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, advice)
}

func (s *TrackerServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *TrackerServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func matchList(matches []domain.Match) []domain.Match {
	if matches == nil {
		return []domain.Match{}
	}
	return matches
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
