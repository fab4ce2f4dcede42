package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoguess/internal/geoguess"
)

// AdminImageRequest is the body for creating or updating a catalog image.
// Unlike the public surface, the admin API carries coordinates.
type AdminImageRequest struct {
	ID          string   `json:"id"`
	RelativeURL string   `json:"relativeUrl"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	IGLink      string   `json:"igLink"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

func (req *AdminImageRequest) validate() string {
	req.ID = strings.TrimSpace(req.ID)
	req.RelativeURL = strings.Trim(strings.TrimSpace(req.RelativeURL), "/")
	if req.RelativeURL == "" {
		return "relativeUrl is required"
	}
	if req.Lat == nil || req.Lng == nil || !isFinite(*req.Lat) || !isFinite(*req.Lng) {
		return "lat and lng are required"
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lng < -180 || *req.Lng > 180 {
		return "lat and lng out of range"
	}
	return ""
}

func (req *AdminImageRequest) image(id string) geoguess.Image {
	return geoguess.Image{
		ID:          id,
		RelativeURL: req.RelativeURL,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		IGLink:      req.IGLink,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
	}
}

func handleAdminListImages(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := store.ListImages(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if images == nil {
			images = []geoguess.Image{}
		}
		writeJSON(w, http.StatusOK, images)
	}
}

func handleAdminCreateImage(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminImageRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		if req.ID == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		img := req.image(req.ID)
		if err := store.CreateImage(r.Context(), img); err != nil {
			writeError(w, http.StatusConflict, "image id already exists")
			return
		}
		writeJSON(w, http.StatusCreated, img)
	}
}

func handleAdminUpdateImage(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminImageRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		img := req.image(chi.URLParam(r, "imageID"))
		err := store.UpdateImage(r.Context(), img)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, img)
	}
}

func handleAdminDeleteImage(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteImage(r.Context(), chi.URLParam(r, "imageID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
