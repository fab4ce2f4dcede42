package geoguess

import (
	"errors"
	"testing"
)

func testCatalog(n int) []Image {
	imgs := make([]Image, n)
	for i := range imgs {
		imgs[i] = Image{
			ID:          string(rune('a' + i)),
			RelativeURL: "images/" + string(rune('a'+i)) + ".jpg",
			Title:       "Photo " + string(rune('A'+i)),
			Lat:         float64(i),
			Lng:         float64(i),
		}
	}
	return imgs
}

func imageByID(t *testing.T, catalog []Image, id string) Image {
	t.Helper()
	for _, img := range catalog {
		if img.ID == id {
			return img
		}
	}
	t.Fatalf("image %q not in catalog", id)
	return Image{}
}

func TestNewSessionEmptyCatalog(t *testing.T) {
	_, err := NewSession(nil, 5, ClientGeo{})
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestNewSessionImageOrder(t *testing.T) {
	catalog := testCatalog(10)
	sess, err := NewSession(catalog, 5, ClientGeo{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if sess.ID == "" {
		t.Error("expected a session id")
	}
	if len(sess.ImageOrder) != 7 {
		t.Errorf("expected order of roundLimit+2 = 7 ids, got %d", len(sess.ImageOrder))
	}

	// All ids distinct and drawn from the catalog.
	seen := map[string]bool{}
	for _, id := range sess.ImageOrder {
		if seen[id] {
			t.Errorf("duplicate image id %q in order", id)
		}
		seen[id] = true
		imageByID(t, catalog, id)
	}

	if sess.Finished || sess.TotalScore != 0 || sess.BonusTotal != 0 || len(sess.Rounds) != 0 {
		t.Errorf("new session not zeroed: %+v", sess)
	}
}

func TestNewSessionSmallCatalog(t *testing.T) {
	sess, err := NewSession(testCatalog(3), 5, ClientGeo{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if len(sess.ImageOrder) != 3 {
		t.Errorf("expected order truncated to catalog size 3, got %d", len(sess.ImageOrder))
	}
}

func TestSubmitGuessLifecycle(t *testing.T) {
	catalog := testCatalog(10)
	sess, err := NewSession(catalog, 5, ClientGeo{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	wantTotal, wantBonus := 0, 0
	for i := 0; i < 5; i++ {
		id, ok := sess.CurrentImageID()
		if !ok {
			t.Fatalf("round %d: expected a current image", i+1)
		}
		if id != sess.ImageOrder[i] {
			t.Errorf("round %d: current image %q, want %q", i+1, id, sess.ImageOrder[i])
		}

		img := imageByID(t, catalog, id)
		round, err := sess.SubmitGuess(img, Guess{Lat: img.Lat, Lng: img.Lng})
		if err != nil {
			t.Fatalf("round %d: SubmitGuess: %v", i+1, err)
		}

		if round.DistanceMeters != 0 {
			t.Errorf("round %d: perfect guess distance = %v, want 0", i+1, round.DistanceMeters)
		}
		if round.Score != ScoreMax {
			t.Errorf("round %d: perfect guess score = %d, want %d", i+1, round.Score, ScoreMax)
		}
		if round.RoundBonus != BonusPoints {
			t.Errorf("round %d: bonus = %d, want %d", i+1, round.RoundBonus, BonusPoints)
		}
		wantTotal += round.Score + round.RoundBonus
		wantBonus += round.RoundBonus

		if sess.Finished != (i == 4) {
			t.Errorf("round %d: finished = %v", i+1, sess.Finished)
		}
	}

	if sess.TotalScore != wantTotal {
		t.Errorf("total score = %d, want sum of round totals %d", sess.TotalScore, wantTotal)
	}
	if sess.BonusTotal != wantBonus {
		t.Errorf("bonus total = %d, want %d", sess.BonusTotal, wantBonus)
	}

	// The sixth guess must be rejected.
	img := imageByID(t, catalog, sess.ImageOrder[0])
	if _, err := sess.SubmitGuess(img, Guess{}); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("sixth guess: expected ErrSessionFinished, got %v", err)
	}
	if len(sess.Rounds) != 5 {
		t.Errorf("rounds after rejection = %d, want 5", len(sess.Rounds))
	}
}

func TestSubmitGuessExhaustedOrder(t *testing.T) {
	// Catalog smaller than the round limit: the order runs out first.
	catalog := testCatalog(2)
	sess, err := NewSession(catalog, 5, ClientGeo{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	for i := 0; i < 2; i++ {
		id, _ := sess.CurrentImageID()
		img := imageByID(t, catalog, id)
		if _, err := sess.SubmitGuess(img, Guess{Lat: 10, Lng: 10}); err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
	}

	if sess.Finished {
		t.Fatal("session should not be finished with 2 of 5 rounds played")
	}
	if _, ok := sess.CurrentImageID(); ok {
		t.Fatal("expected no current image once order is exhausted")
	}
	if _, err := sess.SubmitGuess(catalog[0], Guess{}); !errors.Is(err, ErrNoMoreRounds) {
		t.Fatalf("expected ErrNoMoreRounds, got %v", err)
	}
}

func TestSubmitGuessTotalsAreExactSums(t *testing.T) {
	catalog := testCatalog(10)
	sess, err := NewSession(catalog, 5, ClientGeo{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	guesses := []Guess{
		{Lat: 0, Lng: 0},
		{Lat: 45, Lng: 45},
		{Lat: -30, Lng: 120},
		{Lat: 12.5, Lng: -77},
		{Lat: 80, Lng: 10},
	}
	for _, g := range guesses {
		id, _ := sess.CurrentImageID()
		if _, err := sess.SubmitGuess(imageByID(t, catalog, id), g); err != nil {
			t.Fatalf("SubmitGuess: %v", err)
		}
	}

	total, bonus := 0, 0
	for _, r := range sess.Rounds {
		if r.TotalScore != r.Score+r.RoundBonus {
			t.Errorf("round total %d != score %d + bonus %d", r.TotalScore, r.Score, r.RoundBonus)
		}
		total += r.TotalScore
		bonus += r.RoundBonus
	}
	if sess.TotalScore != total {
		t.Errorf("session total %d, want %d", sess.TotalScore, total)
	}
	if sess.BonusTotal != bonus {
		t.Errorf("session bonus %d, want %d", sess.BonusTotal, bonus)
	}
}
