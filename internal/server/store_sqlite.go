package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/geoguess/internal/geoguess"
)

// SQLiteStore implements Store. Images, leaderboard entries, and guess logs are
// flat rows; each session is a single JSON document with an integer version
// column used for optimistic concurrency.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) GetImage(ctx context.Context, id string) (geoguess.Image, error) {
	var img geoguess.Image
	err := s.db.QueryRowContext(ctx, `
		SELECT id, relative_url, title, subtitle, ig_link, lat, lng
		FROM images WHERE id = ?
	`, id).Scan(&img.ID, &img.RelativeURL, &img.Title, &img.Subtitle, &img.IGLink, &img.Lat, &img.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return img, ErrNotFound
	}
	return img, err
}

func (s *SQLiteStore) ListImages(ctx context.Context) ([]geoguess.Image, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, relative_url, title, subtitle, ig_link, lat, lng
		FROM images ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []geoguess.Image
	for rows.Next() {
		var img geoguess.Image
		if err := rows.Scan(&img.ID, &img.RelativeURL, &img.Title, &img.Subtitle, &img.IGLink, &img.Lat, &img.Lng); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *SQLiteStore) CreateImage(ctx context.Context, img geoguess.Image) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO images (id, relative_url, title, subtitle, ig_link, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, img.ID, img.RelativeURL, img.Title, img.Subtitle, img.IGLink, img.Lat, img.Lng)
	return err
}

func (s *SQLiteStore) UpdateImage(ctx context.Context, img geoguess.Image) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE images SET relative_url = ?, title = ?, subtitle = ?, ig_link = ?, lat = ?, lng = ?
		WHERE id = ?
	`, img.RelativeURL, img.Title, img.Subtitle, img.IGLink, img.Lat, img.Lng, img.ID)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteImage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *geoguess.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, version, finished, total_score, data)
		VALUES (?, 1, ?, ?, jsonb(?))
	`, sess.ID, boolToInt(sess.Finished), sess.TotalScore, string(data))
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*geoguess.Session, int64, error) {
	var data string
	var version int64
	err := s.db.QueryRowContext(ctx, `
		SELECT json(data), version FROM sessions WHERE id = ?
	`, id).Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	var sess geoguess.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, 0, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &sess, version, nil
}

func (s *SQLiteStore) UpdateSession(ctx context.Context, sess *geoguess.Session, version int64) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET data = jsonb(?), finished = ?, total_score = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, string(data), boolToInt(sess.Finished), sess.TotalScore, sess.ID, version)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		// Lost the race (or the session vanished); the caller re-reads.
		return ErrConflict
	}
	return nil
}

func (s *SQLiteStore) AppendGuessLog(ctx context.Context, log geoguess.GuessLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guess_logs (session_id, image_id, guess_lat, guess_lng, distance_meters)
		VALUES (NULLIF(?, ''), ?, ?, ?, ?)
	`, log.SessionID, log.ImageID, log.GuessLat, log.GuessLng, log.DistanceMeters)
	return err
}

func (s *SQLiteStore) AppendLeaderboardEntry(ctx context.Context, name, sessionID string, limit int) ([]geoguess.LeaderboardEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The finished check must hold in the same transaction as the insert so a
	// concurrent submission cannot slip between check and write.
	var finished int
	var totalScore int
	err = tx.QueryRowContext(ctx, `
		SELECT finished, total_score FROM sessions WHERE id = ?
	`, sessionID).Scan(&finished, &totalScore)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if finished == 0 {
		return nil, ErrSessionNotComplete
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO leaderboard_entries (name, score, session_id)
		VALUES (?, ?, ?)
	`, name, totalScore, sessionID); err != nil {
		return nil, err
	}

	entries, err := topEntries(ctx, tx, limit)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *SQLiteStore) TopLeaderboardEntries(ctx context.Context, limit int) ([]geoguess.LeaderboardEntry, error) {
	return topEntries(ctx, s.db, limit)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func topEntries(ctx context.Context, q querier, limit int) ([]geoguess.LeaderboardEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, score, session_id, created_at
		FROM leaderboard_entries
		ORDER BY score DESC, created_at ASC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []geoguess.LeaderboardEntry{}
	for rows.Next() {
		var e geoguess.LeaderboardEntry
		var createdAt string
		if err := rows.Scan(&e.Name, &e.Score, &e.SessionID, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
