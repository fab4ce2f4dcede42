package server

import (
	"net/http"
	"strings"

	"github.com/playperu/geoguess/internal/geoguess"
)

// clientIP prefers the Cloudflare header, then the left-most X-Forwarded-For
// entry, then the remote address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}

// clientGeoFromRequest collects the edge proxy's geolocation headers. All
// values are advisory and may be empty; they are stored with the session for
// telemetry and never influence scoring.
func clientGeoFromRequest(r *http.Request) geoguess.ClientGeo {
	return geoguess.ClientGeo{
		IPAddress: clientIP(r),
		Country:   r.Header.Get("CF-IPCountry"),
		Region:    r.Header.Get("CF-Region"),
		City:      r.Header.Get("CF-IPCity"),
		Lat:       r.Header.Get("CF-IPLat"),
		Lon:       r.Header.Get("CF-IPLon"),
	}
}
