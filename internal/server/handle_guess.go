package server

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/playperu/geoguess/internal/geoguess"
)

// GuessPayload is the coordinate pick embedded in guess requests. Pointers
// distinguish missing fields from zero coordinates.
type GuessPayload struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (p *GuessPayload) validate() (geoguess.Guess, string) {
	if p == nil || p.Lat == nil || p.Lng == nil {
		return geoguess.Guess{}, "invalid or missing guess coordinates"
	}
	if !isFinite(*p.Lat) || !isFinite(*p.Lng) {
		return geoguess.Guess{}, "invalid or missing guess coordinates"
	}
	return geoguess.Guess{Lat: *p.Lat, Lng: *p.Lng}, ""
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// GuessRequest is the body for POST /api/guess (sessionless practice mode).
type GuessRequest struct {
	ImageID string        `json:"image_id"`
	Guess   *GuessPayload `json:"guess"`
}

// GuessResponse reveals the solution immediately; no session is touched and no
// bonus applies.
type GuessResponse struct {
	DistanceMeters float64           `json:"distance_meters"`
	Score          int               `json:"score"`
	Solution       geoguess.Solution `json:"solution"`
}

func handleGuess(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		guess, msg := req.Guess.validate()
		if msg == "" && req.ImageID == "" {
			msg = "image_id required"
		}
		if msg != "" {
			logger.Warn("invalid guess payload", "error", msg)
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		img, err := store.GetImage(r.Context(), req.ImageID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		dist := geoguess.Distance(guess.Lat, guess.Lng, img.Lat, img.Lng)

		// Telemetry only; a failed write never blocks the response.
		if err := store.AppendGuessLog(r.Context(), geoguess.GuessLog{
			ImageID:        img.ID,
			GuessLat:       guess.Lat,
			GuessLng:       guess.Lng,
			DistanceMeters: math.Round(dist*100) / 100,
		}); err != nil {
			logger.Error("appending guess log", "error", err)
		}

		writeJSON(w, http.StatusOK, GuessResponse{
			DistanceMeters: math.Round(dist*100) / 100,
			Score:          geoguess.ScoreFromDistance(dist),
			Solution: geoguess.Solution{
				Lat:      img.Lat,
				Lng:      img.Lng,
				Title:    img.Title,
				Subtitle: img.Subtitle,
				IGLink:   img.IGLink,
			},
		})
	}
}
