package geoguess

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// Scoring constants. DMaxMeters is carried over from the original tuning and is
// far beyond any distance reachable on Earth; distances past it score zero.
const (
	ScoreMax          = 5000
	DecayLambdaMeters = 4_000_000
	DMaxMeters        = 200_000_000

	BonusPoints       = 500
	BonusRadiusMeters = 25_000
)

// Distance returns the great-circle distance in meters between two points
// given in degrees. Symmetric, zero for coincident points.
func Distance(latA, lngA, latB, lngB float64) float64 {
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(latA, lngA))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(latB, lngB))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(a, b).Angle())
	return angle.Radians() * earthRadiusMeters
}

// ScoreFromDistance converts a distance to points with exponential decay:
// a perfect guess scores ScoreMax, and the score drops to ~37% of max at
// DecayLambdaMeters. Monotonically non-increasing in distance.
//
//	     0 km → 5000
//	 1,000 km → 3894
//	 5,000 km → 1433
//	20,000 km →   34
func ScoreFromDistance(distanceMeters float64) int {
	if distanceMeters > DMaxMeters {
		return 0
	}
	return int(math.Round(ScoreMax * math.Exp(-distanceMeters/DecayLambdaMeters)))
}

// BonusFromDistance awards a flat bonus for guesses within BonusRadiusMeters
// of the solution. A step function, inclusive at the radius.
func BonusFromDistance(distanceMeters float64) int {
	if distanceMeters <= BonusRadiusMeters {
		return BonusPoints
	}
	return 0
}
