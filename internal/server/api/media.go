// Package api provides the HTTP handlers for the gallery media library.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/store"
)

// MediaHandler handles HTTP requests for media items.
type MediaHandler struct {
	store *store.Store
}

// NewMediaHandler creates a MediaHandler backed by the given store.
func NewMediaHandler(s *store.Store) *MediaHandler {
	return &MediaHandler{store: s}
}

// ServeHTTP routes /api/media and /api/media/{id} requests.
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/media")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createMediaRequest struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Kind  string `json:"kind"`
}

type updateMediaRequest struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Kind  string `json:"kind"`
}

type mediaResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

type listMediaResponse struct {
	Media []mediaResponse `json:"media"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(m *store.MediaItem) mediaResponse {
	return mediaResponse{
		ID:        m.ID,
		Title:     m.Title,
		Path:      m.Path,
		Kind:      string(m.Kind),
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func validKind(kind store.MediaKind) bool {
	return kind == store.MediaKindPhoto || kind == store.MediaKindVideo
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/media.
func (h *MediaHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Media().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list media")
		return
	}

	response := listMediaResponse{
		Media: make([]mediaResponse, 0, len(items)),
	}
	for _, m := range items {
		response.Media = append(response.Media, toResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/media/{id}.
func (h *MediaHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	item, err := h.store.Media().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Media item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get media item")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(item))
}

// create handles POST /api/media.
func (h *MediaHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}

	kind := store.MediaKind(req.Kind)
	if kind == "" {
		kind = store.MediaKindPhoto
	}
	if !validKind(kind) {
		writeError(w, http.StatusBadRequest, "Invalid media kind")
		return
	}

	item := &store.MediaItem{
		ID:    uuid.New().String(),
		Title: req.Title,
		Path:  req.Path,
		Kind:  kind,
	}

	if err := h.store.Media().Create(item); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create media item")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(item))
}

// update handles PUT /api/media/{id}.
func (h *MediaHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	item, err := h.store.Media().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Media item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get media item")
		return
	}

	var req updateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Path != "" {
		item.Path = req.Path
	}
	if req.Kind != "" {
		kind := store.MediaKind(req.Kind)
		if !validKind(kind) {
			writeError(w, http.StatusBadRequest, "Invalid media kind")
			return
		}
		item.Kind = kind
	}

	if err := h.store.Media().Update(item); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update media item")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(item))
}

// delete handles DELETE /api/media/{id}.
func (h *MediaHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Media().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Media item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete media item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
