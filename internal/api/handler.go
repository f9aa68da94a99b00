// Package api implements the hosted vouch REST API: hall of shame
// submissions and reads, plus archived results and badges.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vouchdev/vouch/internal/archive"
	"github.com/vouchdev/vouch/internal/leaderboard"
)

// Store is the leaderboard persistence the handlers need. Satisfied by
// *leaderboard.Service.
type Store interface {
	Add(ctx context.Context, e *leaderboard.Entry) (*leaderboard.Entry, error)
	List(ctx context.Context, limit int) ([]leaderboard.Entry, error)
	GetAwards(ctx context.Context) (*leaderboard.Awards, error)
}

// Handler is the top-level API handler for the hosted vouch service.
type Handler struct {
	store        Store
	archive      archive.StorageClient
	submitSecret []byte
}

// NewHandler creates a new API handler. An empty submitSecret disables
// signature verification on submissions.
func NewHandler(store Store, storage archive.StorageClient, submitSecret []byte) *Handler {
	return &Handler{
		store:        store,
		archive:      storage,
		submitSecret: submitSecret,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (signature-protected)
	mux.HandleFunc("POST /api/v1/shame", h.handleSubmit)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/shame", h.handleList)
	mux.HandleFunc("GET /api/v1/shame/awards", h.handleAwards)
	mux.HandleFunc("GET /api/v1/results/{scanID}", h.handleGetResult)
	mux.HandleFunc("GET /api/v1/badges/{scanID}", h.handleGetBadge)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
