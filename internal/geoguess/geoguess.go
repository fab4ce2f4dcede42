// Package geoguess defines the core domain types, the scoring engine, and the
// session state machine. It has no knowledge of HTTP or storage — everything
// here is pure Go over plain values.
package geoguess

import "time"

// Image is one photo in the catalog, with its true location. Reference data:
// created when the catalog is loaded, never mutated by gameplay.
type Image struct {
	ID          string  `json:"id"`
	RelativeURL string  `json:"relative_url"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	IGLink      string  `json:"ig_link"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Guess is a player's coordinate pick.
type Guess struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Solution is the true location revealed after a guess.
type Solution struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	IGLink   string  `json:"igLink"`
}

// RoundResult records one played round. Appended exactly once per round and
// immutable afterwards.
type RoundResult struct {
	DistanceMeters float64  `json:"distance_meters"`
	Score          int      `json:"score"`
	RoundBonus     int      `json:"roundBonus"`
	TotalScore     int      `json:"totalScore"`
	Solution       Solution `json:"solution"`
	Guess          Guess    `json:"guess"`
}

// ClientGeo holds advisory geolocation attributes forwarded by the edge proxy.
// Never an input to scoring or access decisions.
type ClientGeo struct {
	IPAddress string `json:"ip_address,omitempty"`
	Country   string `json:"country,omitempty"`
	Region    string `json:"region,omitempty"`
	City      string `json:"city,omitempty"`
	Lat       string `json:"lat,omitempty"`
	Lon       string `json:"lon,omitempty"`
}

// Session is one playthrough: a fixed image order, at most RoundLimit rounds,
// and running totals.
type Session struct {
	ID         string        `json:"id"`
	ImageOrder []string      `json:"image_order"`
	RoundLimit int           `json:"round_limit"`
	Rounds     []RoundResult `json:"rounds"`
	TotalScore int           `json:"total_score"`
	BonusTotal int           `json:"bonus_total"`
	Finished   bool          `json:"finished"`
	CreatedAt  time.Time     `json:"created_at"`
	ClientGeo  ClientGeo     `json:"client_geo"`
}

// LeaderboardEntry is a finished session's total, frozen under a player name.
type LeaderboardEntry struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// GuessLog is a write-once telemetry record per guess. Never read by game logic.
type GuessLog struct {
	SessionID      string
	ImageID        string
	GuessLat       float64
	GuessLng       float64
	DistanceMeters float64
}
