package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoguess/internal/geoguess"
)

// maxGuessRetries bounds the optimistic read-modify-write loop when concurrent
// guesses race on one session.
const maxGuessRetries = 5

// SessionResponse is the session summary returned on start and from the
// summary endpoint. NextImage carries no coordinates.
type SessionResponse struct {
	SessionID    string         `json:"session_id"`
	RoundLimit   int            `json:"round_limit"`
	RoundsPlayed int            `json:"rounds_played"`
	TotalScore   int            `json:"total_score"`
	BonusTotal   int            `json:"bonus_total"`
	Finished     bool           `json:"finished"`
	NextImage    *ImageResponse `json:"next_image"`
}

// SessionTotals is the running aggregate returned with every round result.
type SessionTotals struct {
	TotalScore   int  `json:"total_score"`
	BonusTotal   int  `json:"bonus_total"`
	RoundsPlayed int  `json:"rounds_played"`
	RoundLimit   int  `json:"round_limit"`
	Finished     bool `json:"finished"`
}

// SessionGuessResponse is the result of one session round.
type SessionGuessResponse struct {
	Round     geoguess.RoundResult `json:"round"`
	Totals    SessionTotals        `json:"totals"`
	NextImage *ImageResponse       `json:"next_image"`
}

// SessionHistoryResponse is the full summary including round history.
type SessionHistoryResponse struct {
	TotalScore   int                    `json:"total_score"`
	BonusTotal   int                    `json:"bonus_total"`
	RoundsPlayed int                    `json:"rounds_played"`
	RoundLimit   int                    `json:"round_limit"`
	Finished     bool                   `json:"finished"`
	Rounds       []geoguess.RoundResult `json:"rounds"`
}

// SessionGuessRequest is the body for POST /api/session/{sessionID}/guess.
type SessionGuessRequest struct {
	Guess *GuessPayload `json:"guess"`
}

func nextImage(ctx context.Context, store Store, sess *geoguess.Session, baseURL string) *ImageResponse {
	id, ok := sess.CurrentImageID()
	if !ok {
		return nil
	}
	img, err := store.GetImage(ctx, id)
	if err != nil {
		return nil
	}
	resp := publicImage(img, baseURL)
	return &resp
}

func sessionSummary(ctx context.Context, store Store, sess *geoguess.Session, baseURL string) SessionResponse {
	return SessionResponse{
		SessionID:    sess.ID,
		RoundLimit:   sess.RoundLimit,
		RoundsPlayed: sess.RoundsPlayed(),
		TotalScore:   sess.TotalScore,
		BonusTotal:   sess.BonusTotal,
		Finished:     sess.Finished,
		NextImage:    nextImage(ctx, store, sess, baseURL),
	}
}

func handleStartSession(logger *slog.Logger, store Store, roundLimit int, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := store.ListImages(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		sess, err := geoguess.NewSession(catalog, roundLimit, clientGeoFromRequest(r))
		if errors.Is(err, geoguess.ErrEmptyCatalog) {
			logger.Error("cannot start session", "error", err)
			writeError(w, http.StatusServiceUnavailable, "no images available")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := store.CreateSession(r.Context(), sess); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, sessionSummary(r.Context(), store, sess, baseURL))
	}
}

func handleSessionGuess(logger *slog.Logger, store Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		var req SessionGuessRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		guess, msg := req.Guess.validate()
		if msg != "" {
			logger.Warn("invalid session guess payload", "session_id", sessionID, "error", msg)
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		// Optimistic concurrency: re-read and re-apply on version conflict so
		// two racing guesses can never append at the same round index.
		for attempt := 0; attempt < maxGuessRetries; attempt++ {
			sess, version, err := store.GetSession(r.Context(), sessionID)
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "session not found")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			imageID, ok := sess.CurrentImageID()
			if !ok {
				if sess.Finished {
					writeError(w, http.StatusBadRequest, "session finished")
				} else {
					writeError(w, http.StatusBadRequest, "no more rounds")
				}
				return
			}
			img, err := store.GetImage(r.Context(), imageID)
			if errors.Is(err, ErrNotFound) {
				// The session's order references an image that has since been
				// deleted from the catalog; this session cannot progress.
				logger.Error("session references missing image",
					"session_id", sess.ID, "image_id", imageID)
				writeError(w, http.StatusInternalServerError, "image no longer available")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			round, err := sess.SubmitGuess(img, guess)
			switch {
			case errors.Is(err, geoguess.ErrSessionFinished):
				writeError(w, http.StatusBadRequest, "session finished")
				return
			case errors.Is(err, geoguess.ErrNoMoreRounds):
				writeError(w, http.StatusBadRequest, "no more rounds")
				return
			case err != nil:
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			err = store.UpdateSession(r.Context(), sess, version)
			if errors.Is(err, ErrConflict) {
				continue
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			if err := store.AppendGuessLog(r.Context(), geoguess.GuessLog{
				SessionID:      sess.ID,
				ImageID:        img.ID,
				GuessLat:       guess.Lat,
				GuessLng:       guess.Lng,
				DistanceMeters: round.DistanceMeters,
			}); err != nil {
				logger.Error("appending guess log", "session_id", sess.ID, "error", err)
			}

			writeJSON(w, http.StatusOK, SessionGuessResponse{
				Round: round,
				Totals: SessionTotals{
					TotalScore:   sess.TotalScore,
					BonusTotal:   sess.BonusTotal,
					RoundsPlayed: sess.RoundsPlayed(),
					RoundLimit:   sess.RoundLimit,
					Finished:     sess.Finished,
				},
				NextImage: nextImage(r.Context(), store, sess, baseURL),
			})
			return
		}

		writeError(w, http.StatusConflict, "concurrent update, try again")
	}
}

func handleSessionSummary(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _, err := store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, SessionHistoryResponse{
			TotalScore:   sess.TotalScore,
			BonusTotal:   sess.BonusTotal,
			RoundsPlayed: sess.RoundsPlayed(),
			RoundLimit:   sess.RoundLimit,
			Finished:     sess.Finished,
			Rounds:       sess.Rounds,
		})
	}
}
