// Package http exposes the trigger, health, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Trigger invokes one domain's sync pass. Returns false for an unknown
// domain; the pass itself always completes from the caller's point of view.
type Trigger interface {
	Invoke(ctx context.Context, domain string) bool
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes sync triggers for the external scheduler plus health,
// readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	trigger    Trigger
	logger     *slog.Logger
}

// NewServer creates the HTTP server.
func NewServer(addr string, trigger Trigger, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // a triggered pass runs inline
			IdleTimeout:  60 * time.Second,
		},
		trigger: trigger,
		logger:  logger,
	}

	mux.HandleFunc("POST /v1/sync/{domain}", s.handleTrigger)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleTrigger runs one domain's pass and acknowledges receipt. Pipeline
// failures are contained by the runner and still acknowledged — surfacing
// them here would make a retrying scheduler hammer a broken provider.
func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("domain")
	if !s.trigger.Invoke(r.Context(), name) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"status": "unknown domain",
			"domain": name,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "accepted",
		"domain": name,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
