// Package http exposes the engine's debug and operations surface: live
// interaction inspection, script listing, out-of-band data delivery, and
// Prometheus metrics. It is not the game traffic path; clients talk to the
// game server, which talks to the engine in-process.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/interaction"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the debug server settings, populated from the environment.
type Config struct {
	Addr            string        `env:"RIPOSTE_HTTP_ADDR" envDefault:":8787"`
	ShutdownTimeout time.Duration `env:"RIPOSTE_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Runtime is the slice of the engine the server needs.
type Runtime interface {
	Deliver(ctx context.Context, entityID string, source domain.WaitSource, payload any)
	Cancel(ctx context.Context, entityID string) bool
	Active() []interaction.Snapshot
	Scripts() ([]string, error)
}

// Server serves the debug surface for one engine.
type Server struct {
	runtime Runtime
	version string
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler for the engine's debug surface.
func NewHandler(runtime Runtime, version string, logger *slog.Logger) http.Handler {
	s := &Server{runtime: runtime, version: version, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/scripts", s.getScripts)
	r.Get("/interactions", s.getInteractions)
	r.Post("/interactions/{entity}/data", s.postData)
	r.Delete("/interactions/{entity}", s.deleteInteraction)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "riposte",
		"version": s.version,
	})
}

func (s *Server) getScripts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.runtime.Scripts()
	if err != nil {
		http.Error(w, fmt.Sprintf("list error: %v", err), http.StatusInternalServerError)
		s.logger.Error("script listing failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scripts": ids})
}

func (s *Server) getInteractions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"interactions": s.runtime.Active()})
}

// deliverRequest is the body of POST /interactions/{entity}/data. The
// payload is passed through opaquely; operations interpret it.
type deliverRequest struct {
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (s *Server) postData(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entity")

	var body deliverRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("data delivery rejected", "entity", entityID, "err", err)
		return
	}
	if body.Source == "" {
		http.Error(w, "source is required", http.StatusBadRequest)
		return
	}

	// Stale deliveries are ignored inside the engine, so this always
	// acknowledges. The debug surface mirrors how real packet paths
	// must treat late data.
	s.runtime.Deliver(r.Context(), entityID, domain.WaitSource(body.Source), body.Payload)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) deleteInteraction(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entity")
	if !s.runtime.Cancel(r.Context(), entityID) {
		http.Error(w, "no active interaction", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
