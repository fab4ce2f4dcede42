package geoguess

import (
	"encoding/hex"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// DefaultRoundLimit is the number of rounds in a standard session.
const DefaultRoundLimit = 5

// lookaheadImages is how many extra images are drawn beyond the round limit so
// a "next image" preview can always be resolved without reshuffling.
const lookaheadImages = 2

var (
	ErrEmptyCatalog    = errors.New("no images available")
	ErrSessionFinished = errors.New("session finished")
	ErrNoMoreRounds    = errors.New("no more rounds")
)

// NewSession starts a session over the given catalog: a fresh id, a random
// permutation of image ids truncated to roundLimit+2, and zeroed totals. The
// image order is fixed for the session's lifetime.
func NewSession(catalog []Image, roundLimit int, geo ClientGeo) (*Session, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if roundLimit <= 0 {
		roundLimit = DefaultRoundLimit
	}

	order := make([]string, len(catalog))
	for i, img := range catalog {
		order[i] = img.ID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	if limit := roundLimit + lookaheadImages; len(order) > limit {
		order = order[:limit]
	}

	id := uuid.New()
	return &Session{
		ID:         hex.EncodeToString(id[:]),
		ImageOrder: order,
		RoundLimit: roundLimit,
		Rounds:     []RoundResult{},
		CreatedAt:  time.Now().UTC(),
		ClientGeo:  geo,
	}, nil
}

// CurrentImageID returns the id of the image awaiting a guess, or false if the
// session is finished or the image order is exhausted.
func (s *Session) CurrentImageID() (string, bool) {
	if s.Finished || len(s.Rounds) >= len(s.ImageOrder) {
		return "", false
	}
	return s.ImageOrder[len(s.Rounds)], true
}

// RoundsPlayed returns how many rounds have been recorded.
func (s *Session) RoundsPlayed() int {
	return len(s.Rounds)
}

// SubmitGuess plays one round against img, which must be the session's current
// image. It appends an immutable RoundResult, updates the running totals, and
// flips the session to finished once the round limit is reached. The mutation
// is in-memory only; persisting the session is the caller's responsibility.
func (s *Session) SubmitGuess(img Image, guess Guess) (RoundResult, error) {
	if s.Finished {
		return RoundResult{}, ErrSessionFinished
	}
	if len(s.Rounds) >= len(s.ImageOrder) {
		return RoundResult{}, ErrNoMoreRounds
	}

	dist := Distance(guess.Lat, guess.Lng, img.Lat, img.Lng)
	score := ScoreFromDistance(dist)
	bonus := BonusFromDistance(dist)

	round := RoundResult{
		DistanceMeters: math.Round(dist*100) / 100,
		Score:          score,
		RoundBonus:     bonus,
		TotalScore:     score + bonus,
		Solution: Solution{
			Lat:      img.Lat,
			Lng:      img.Lng,
			Title:    img.Title,
			Subtitle: img.Subtitle,
			IGLink:   img.IGLink,
		},
		Guess: guess,
	}

	s.Rounds = append(s.Rounds, round)
	s.TotalScore += round.TotalScore
	s.BonusTotal += bonus
	if len(s.Rounds) >= s.RoundLimit {
		s.Finished = true
	}
	return round, nil
}
