package server

import (
	"context"
	"errors"

	"github.com/playperu/geoguess/internal/geoguess"
)

var (
	// ErrNotFound is returned for unknown image, session, or admin ids.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by UpdateSession when the stored version has
	// moved since the caller read the session.
	ErrConflict = errors.New("session version conflict")

	// ErrSessionNotComplete is returned when a leaderboard entry references a
	// session that has not finished all its rounds.
	ErrSessionNotComplete = errors.New("session not complete")
)

type adminSession struct {
	AdminID string
	Email   string
}

type Store interface {
	GetImage(ctx context.Context, id string) (geoguess.Image, error)
	ListImages(ctx context.Context) ([]geoguess.Image, error)
	CreateImage(ctx context.Context, img geoguess.Image) error
	UpdateImage(ctx context.Context, img geoguess.Image) error
	DeleteImage(ctx context.Context, id string) error

	CreateSession(ctx context.Context, sess *geoguess.Session) error
	// GetSession returns the session document and the version to pass back to
	// UpdateSession.
	GetSession(ctx context.Context, id string) (*geoguess.Session, int64, error)
	// UpdateSession persists sess only if the stored version still equals
	// version; otherwise it returns ErrConflict and writes nothing.
	UpdateSession(ctx context.Context, sess *geoguess.Session, version int64) error

	AppendGuessLog(ctx context.Context, log geoguess.GuessLog) error

	// AppendLeaderboardEntry re-validates that the session exists and is
	// finished inside the same transaction as the insert, records the entry
	// with the session's frozen total, and returns the resulting top entries.
	AppendLeaderboardEntry(ctx context.Context, name, sessionID string, limit int) ([]geoguess.LeaderboardEntry, error)
	TopLeaderboardEntries(ctx context.Context, limit int) ([]geoguess.LeaderboardEntry, error)

	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID string) (string, error)
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
}
