package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/vouchdev/vouch/internal/leaderboard"
	"github.com/vouchdev/vouch/pkg/pipeline"
)

// SubmitRequest is the hall of shame submission payload.
type SubmitRequest struct {
	RepoURL  string           `json:"repo_url"`
	RepoName string           `json:"repo_name"`
	Result   *pipeline.Result `json:"result"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20)) // 10 MB limit
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	if len(h.submitSecret) > 0 {
		signature := r.Header.Get("X-Vouch-Signature")
		if err := VerifySignature(body, signature, h.submitSecret); err != nil {
			log.Printf("submission signature verification failed: %v", err)
			writeError(w, http.StatusUnauthorized, "invalid signature")
			return
		}
	}

	var req SubmitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.RepoURL == "" || req.RepoName == "" || req.Result == nil || req.Result.Trust == nil {
		writeError(w, http.StatusBadRequest, "repo_url, repo_name and result are required")
		return
	}

	ctx := r.Context()
	entry, err := h.store.Add(ctx, leaderboard.NewEntry(req.RepoURL, req.RepoName, req.Result))
	if err != nil {
		log.Printf("add shame entry: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if h.archive != nil {
		data, err := json.Marshal(req.Result)
		if err == nil {
			if err := h.archive.PutResult(ctx, req.Result.ScanID, data); err != nil {
				log.Printf("archive result %s: %v", req.Result.ScanID, err)
			}
		}
		if req.Result.Badge != nil {
			if err := h.archive.PutBadge(ctx, req.Result.ScanID, []byte(req.Result.Badge.Markdown)); err != nil {
				log.Printf("archive badge %s: %v", req.Result.ScanID, err)
			}
		}
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		log.Printf("list shame entries: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleAwards(w http.ResponseWriter, r *http.Request) {
	awards, err := h.store.GetAwards(r.Context())
	if err != nil {
		log.Printf("get awards: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, awards)
}

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeError(w, http.StatusNotFound, "archive not configured")
		return
	}
	data, err := h.archive.GetResult(r.Context(), r.PathValue("scanID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Handler) handleGetBadge(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeError(w, http.StatusNotFound, "archive not configured")
		return
	}
	data, err := h.archive.GetBadge(r.Context(), r.PathValue("scanID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "badge not found")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(data)
}
