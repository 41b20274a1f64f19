// Package handlers implements the HTTP handlers for the analysis service:
// the analyze endpoint, the repository listing, and health/version.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rivecs/rivecs.github.io/internal/analysis"
	"github.com/rivecs/rivecs.github.io/internal/repos"
)

// Handlers holds all handler dependencies.
type Handlers struct {
	Analyzer *analysis.Analyzer
	Repos    *repos.Service
	Version  string
}

// New creates a Handlers instance with all dependencies.
func New(analyzer *analysis.Analyzer, reposService *repos.Service, version string) *Handlers {
	return &Handlers{
		Analyzer: analyzer,
		Repos:    reposService,
		Version:  version,
	}
}

// Analyze runs the analysis pipeline for one request. It accepts POST only
// and performs its own method check so the rejection carries an Allow header
// and a JSON body like every other response.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.Analyzer.Analyze(r.Context(), body)
	if err != nil {
		var ae *analysis.Error
		if errors.As(err, &ae) {
			respondError(w, ae.HTTPStatus(), ae.Message)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListRepos serves the user's public repositories, falling back to the last
// cached snapshot when the live fetch fails.
func (h *Handlers) ListRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	listing, err := h.Repos.List(r.Context(), username, limit)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "analysis-proxy",
	})
}

// VersionInfo reports the running service version.
func (h *Handlers) VersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"version": h.Version,
		"service": "analysis-proxy",
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
