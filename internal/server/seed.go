package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/geoguess/internal/geoguess"
)

type seedImage struct {
	ID          string  `json:"id"`
	RelativeURL string  `json:"relative_url"`
	File        string  `json:"file"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	IGLink      string  `json:"ig_link"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// SeedImages imports the catalog from a JSON file when the images table is
// empty. Idempotent: does nothing when images already exist or the file is
// absent.
func SeedImages(ctx context.Context, logger *slog.Logger, store Store, seedFile string) error {
	if seedFile == "" {
		return nil
	}
	raw, err := os.ReadFile(seedFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	existing, err := store.ListImages(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var items []seedImage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", seedFile, err)
	}

	for _, item := range items {
		rel := item.RelativeURL
		if rel == "" && item.File != "" {
			rel = path.Join("images", item.File)
		}
		if rel == "" {
			return fmt.Errorf("image entry %q is missing a relative URL", item.ID)
		}

		img := geoguess.Image{
			ID:          item.ID,
			RelativeURL: strings.Trim(rel, "/"),
			Title:       item.Title,
			Subtitle:    item.Subtitle,
			IGLink:      item.IGLink,
			Lat:         item.Lat,
			Lng:         item.Lng,
		}
		if err := store.CreateImage(ctx, img); err != nil {
			return fmt.Errorf("seeding image %q: %w", item.ID, err)
		}
	}

	logger.Info("seeded image catalog", "file", seedFile, "count", len(items))
	return nil
}

// SeedAdmin creates the configured admin account if it doesn't exist yet.
// Skipped entirely when email or password is unset.
func SeedAdmin(ctx context.Context, logger *slog.Logger, store *SQLiteStore, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	email = strings.TrimSpace(strings.ToLower(email))

	if _, _, err := store.AdminByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	if _, err := store.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash) VALUES (?, ?)
	`, email, string(hash)); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	logger.Info("admin account created", "email", email)
	return nil
}
