package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoguess/internal/geoguess"
)

// ImageResponse is the public view of a catalog image. It deliberately carries
// no coordinates: the solution is only revealed after a guess.
type ImageResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	IGLink   string `json:"igLink"`
	URL      string `json:"url"`
}

func publicImage(img geoguess.Image, baseURL string) ImageResponse {
	return ImageResponse{
		ID:       img.ID,
		Title:    img.Title,
		Subtitle: img.Subtitle,
		IGLink:   img.IGLink,
		URL:      buildPublicURL(baseURL, img.RelativeURL),
	}
}

func buildPublicURL(baseURL, relativeURL string) string {
	rel := strings.TrimPrefix(relativeURL, "/")
	if baseURL != "" {
		return strings.TrimSuffix(baseURL, "/") + "/" + rel
	}
	return "/" + rel
}

func handleListImages(store Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := store.ListImages(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		safe := make([]ImageResponse, 0, len(images))
		for _, img := range images {
			safe = append(safe, publicImage(img, baseURL))
		}
		writeJSON(w, http.StatusOK, safe)
	}
}

func handleGetImage(store Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, err := store.GetImage(r.Context(), chi.URLParam(r, "imageID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, publicImage(img, baseURL))
	}
}
