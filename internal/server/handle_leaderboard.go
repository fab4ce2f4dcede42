package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/playperu/geoguess/internal/geoguess"
)

const (
	leaderboardLimit = 25
	maxNameLength    = 128 // runes, not bytes
)

// LeaderboardItem is one ranked entry.
type LeaderboardItem struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	SessionID string `json:"session_id"`
}

// LeaderboardRequest is the body for POST /api/leaderboard.
type LeaderboardRequest struct {
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
}

func leaderboardItems(entries []geoguess.LeaderboardEntry) []LeaderboardItem {
	items := make([]LeaderboardItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, LeaderboardItem{Name: e.Name, Score: e.Score, SessionID: e.SessionID})
	}
	return items
}

func handleListLeaderboard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.TopLeaderboardEntries(r.Context(), leaderboardLimit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, leaderboardItems(entries))
	}
}

func handleSubmitLeaderboard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LeaderboardRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "name and session_id required")
			return
		}
		// Truncate by runes: a byte slice could cut a multibyte character in
		// half and produce invalid UTF-8.
		if runes := []rune(req.Name); len(runes) > maxNameLength {
			req.Name = string(runes[:maxNameLength])
		}

		entries, err := store.AppendLeaderboardEntry(r.Context(), req.Name, req.SessionID, leaderboardLimit)
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSessionNotComplete) {
			writeError(w, http.StatusBadRequest, "session not complete")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, leaderboardItems(entries))
	}
}
