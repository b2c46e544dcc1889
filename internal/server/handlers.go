package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLeaderboard serves GET /api/leaderboard?cohort=N[&tier=][&mode=].
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	cohort, ok := parseCohort(w, r)
	if !ok {
		return
	}

	metric := scoring.MetricGrandTotal
	tierParam := r.URL.Query().Get("tier")
	if tierParam != "" {
		tier, ok := parseTier(tierParam)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown tier: " + tierParam})
			return
		}
		metric = scoring.TierMetric(tier)
	}

	mode := scoring.ModeSequential
	if m := r.URL.Query().Get("mode"); m != "" {
		switch scoring.Mode(m) {
		case scoring.ModeSequential, scoring.ModeDense:
			mode = scoring.Mode(m)
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown mode: " + m})
			return
		}
	}

	cards, ok := s.loadCards(w, r)
	if !ok {
		return
	}

	entries := scoring.Rank(scoring.Eligible(cards, s.rules), cohort, metric, mode)
	writeJSON(w, http.StatusOK, map[string]any{
		"cohort":  cohort.DisplayName(),
		"metric":  string(metric),
		"mode":    string(mode),
		"entries": emptyNotNull(entries),
	})
}

// handleBreakdown serves GET /api/breakdown[?tier=]. Unknown-cohort clubs
// are included; only the minimum-membership filter applies.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	cards, ok := s.loadCards(w, r)
	if !ok {
		return
	}

	var kept []model.ScoreCard
	for _, c := range cards {
		if c.ActiveMembers >= s.rules.MinActiveMembers {
			kept = append(kept, c)
		}
	}

	tierParam := r.URL.Query().Get("tier")
	if tierParam == "" {
		writeJSON(w, http.StatusOK, map[string]any{"clubs": emptyNotNull(kept)})
		return
	}

	tier, ok := parseTier(tierParam)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown tier: " + tierParam})
		return
	}

	type tierRow struct {
		ClubNumber int          `json:"club_number"`
		ClubName   string       `json:"club_name"`
		Cohort     model.Cohort `json:"cohort"`
		Points     any          `json:"points"`
		Total      int          `json:"total"`
	}
	rows := make([]tierRow, 0, len(kept))
	for _, c := range kept {
		row := tierRow{ClubNumber: c.ClubNumber, ClubName: c.ClubName, Cohort: c.Cohort, Total: c.TierTotal(tier)}
		switch tier {
		case model.TierEducation:
			row.Points = c.Education
		case model.TierLeadership:
			row.Points = c.Leadership
		case model.TierOperations:
			row.Points = c.Operations
		}
		rows = append(rows, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"tier": tier.DisplayName(), "clubs": rows})
}

// handleWinners serves GET /api/winners.
func (s *Server) handleWinners(w http.ResponseWriter, r *http.Request) {
	cards, ok := s.loadCards(w, r)
	if !ok {
		return
	}

	type winnerRow struct {
		Cohort     string `json:"cohort"`
		Category   string `json:"category"`
		Rank       int    `json:"rank"`
		ClubNumber int    `json:"club_number"`
		ClubName   string `json:"club_name"`
		Points     int    `json:"points"`
	}
	winners := scoring.Winners(scoring.Eligible(cards, s.rules))
	rows := make([]winnerRow, 0, len(winners))
	for _, win := range winners {
		rows = append(rows, winnerRow{
			Cohort:     win.Cohort.DisplayName(),
			Category:   win.Category(),
			Rank:       win.Entry.Rank,
			ClubNumber: win.Entry.ClubNumber,
			ClubName:   win.Entry.ClubName,
			Points:     win.Entry.Score,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"winners": rows})
}

func (s *Server) loadCards(w http.ResponseWriter, r *http.Request) ([]model.ScoreCard, bool) {
	cards, err := s.provider.Cards(r.Context())
	if err != nil {
		zap.L().Error("server: load cards", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "scoring data unavailable"})
		return nil, false
	}
	return cards, true
}

func parseCohort(w http.ResponseWriter, r *http.Request) (model.Cohort, bool) {
	raw := r.URL.Query().Get("cohort")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cohort parameter is required"})
		return model.CohortUnknown, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !model.Cohort(n).Known() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown cohort: " + raw})
		return model.CohortUnknown, false
	}
	return model.Cohort(n), true
}

func parseTier(raw string) (model.Tier, bool) {
	for _, t := range model.Tiers() {
		if raw == string(t) {
			return t, true
		}
	}
	return "", false
}

func emptyNotNull[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}
