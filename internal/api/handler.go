// Package api provides the HTTP API for the activity registry.
// It exposes REST endpoints for listing and signup plus SSE for event streaming.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/mergington/activities/internal/activities"
	"github.com/mergington/activities/internal/log"
	"github.com/mergington/activities/internal/metrics"
	"github.com/mergington/activities/internal/web"
)

// Handler provides HTTP endpoints for registry operations.
type Handler struct {
	svc           activities.Service
	static        fs.FS
	tracer        trace.Tracer
	enableMetrics bool
}

// HandlerConfig configures the API handler.
type HandlerConfig struct {
	// Service exposes the activity registry (required).
	Service activities.Service
	// StaticFS overrides the bundled signup frontend (optional).
	// If nil, the embedded assets are served.
	StaticFS fs.FS
	// Tracer creates a span per incoming request (optional).
	// If nil, requests are not traced.
	Tracer trace.Tracer
	// EnableMetrics exposes the Prometheus scrape endpoint at /metrics.
	EnableMetrics bool
}

// NewHandler creates a new API handler wrapping the given service.
func NewHandler(svc activities.Service) *Handler {
	return &Handler{svc: svc, static: web.StaticFS()}
}

// NewHandlerWithConfig creates a new API handler with full configuration.
func NewHandlerWithConfig(cfg HandlerConfig) *Handler {
	static := cfg.StaticFS
	if static == nil {
		static = web.StaticFS()
	}
	return &Handler{
		svc:           cfg.Service,
		static:        static,
		tracer:        cfg.Tracer,
		enableMetrics: cfg.EnableMetrics,
	}
}

// Routes returns an http.Handler with all API routes registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	// Activity registry
	mux.HandleFunc("GET /activities", h.ListActivities)
	mux.HandleFunc("POST /activities/{activity}/signup", h.SignUp)

	// Event streaming
	mux.HandleFunc("GET /events", h.StreamEvents)

	// Health check
	mux.HandleFunc("GET /health", h.Health)

	// Prometheus scrape endpoint
	if h.enableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Signup frontend
	mux.Handle("GET /static/", http.FileServerFS(h.static))
	mux.HandleFunc("GET /{$}", h.Index)

	var handler http.Handler = mux
	handler = withRequestLog(handler)
	handler = withMetrics(handler)
	if h.tracer != nil {
		handler = withTracing(h.tracer, handler)
	}
	handler = withRequestID(handler)
	return handler
}

// === Request/Response Types ===

// SignupResponse is the response body for a successful signup.
type SignupResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the response body for errors.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the response body for the health endpoint.
type HealthResponse struct {
	Status     string `json:"status"`
	Activities int    `json:"activities,omitempty"`
}

// === Handlers ===

// ListActivities returns every activity keyed by name.
// GET /activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	acts, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make(map[string]*activities.Activity, len(acts))
	for _, act := range acts {
		resp[act.Name] = act
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// SignUp registers a student email for an activity.
// Activity names are taken verbatim from the path segment, spaces included.
// POST /activities/{activity}/signup?email=student@mergington.edu
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activity")

	email := r.FormValue("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	message, err := h.svc.SignUp(r.Context(), activityName, email)
	if err != nil {
		switch {
		case errors.Is(err, activities.ErrActivityNotFound):
			h.writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", activityName))
		case errors.Is(err, activities.ErrAlreadySignedUp):
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s already signed up", email))
		default:
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	metrics.SignupsTotal.WithLabelValues(activityName).Inc()

	h.writeJSON(w, http.StatusOK, SignupResponse{Message: message})
}

// Health reports whether the registry is serving.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	acts, err := h.svc.List(r.Context())
	if err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
		return
	}

	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Activities: len(acts)})
}

// StreamEvents streams signup events via SSE.
// GET /events
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	events, unsub := h.svc.Subscribe(r.Context())
	defer unsub()

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	metrics.EventSubscribers.Inc()
	defer metrics.EventSubscribers.Dec()

	// Send initial connection event
	_, _ = fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	// Heartbeat ticker to keep connection alive
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Send heartbeat comment (not a real event, just keeps connection alive)
			_, _ = fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				log.Error(log.CatEvents, "Failed to marshal event", "error", err)
				continue
			}

			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}

// Index redirects the root page to the bundled frontend.
// GET /{$}
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

// === Helpers ===

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error(log.CatHTTP, "Failed to encode JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, ErrorResponse{Detail: detail})
}

// Server wraps the Handler with an http.Server for lifecycle management.
type Server struct {
	handler  *Handler
	server   *http.Server
	listener net.Listener
	addr     string
	port     int // Actual port after binding (useful when using :0)
}

// ServerConfig configures the API server.
type ServerConfig struct {
	// Addr is the address to listen on (e.g., ":8000").
	Addr string
	// Service is the activity service to expose via HTTP (required).
	Service activities.Service
	// StaticFS overrides the bundled signup frontend (optional).
	StaticFS fs.FS
	// Tracer creates a span per incoming request (optional).
	Tracer trace.Tracer
	// EnableMetrics exposes the Prometheus scrape endpoint at /metrics.
	EnableMetrics bool
	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	// Leave zero so SSE streams are never cut off.
	WriteTimeout time.Duration
}

// NewServer creates a new API server.
// If Addr uses port 0 (e.g., "localhost:0" or ":0"), the OS will assign an available port.
// Use Port() after Start() to get the actual port.
func NewServer(cfg ServerConfig) (*Server, error) {
	handler := NewHandlerWithConfig(HandlerConfig{
		Service:       cfg.Service,
		StaticFS:      cfg.StaticFS,
		Tracer:        cfg.Tracer,
		EnableMetrics: cfg.EnableMetrics,
	})

	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}

	// Create listener first to get the actual port (important for :0)
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	// Extract actual port from listener address
	port := 0
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	return &Server{
		handler:  handler,
		addr:     cfg.Addr,
		port:     port,
		listener: listener,
		server: &http.Server{
			Handler:           handler.Routes(),
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}, nil
}

// Start starts the HTTP server. It blocks until the server is stopped or fails.
func (s *Server) Start() error {
	log.Info(log.CatHTTP, "Starting API server", "addr", s.listener.Addr().String(), "port", s.port)
	return s.server.Serve(s.listener)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	log.Info(log.CatHTTP, "Stopping API server")
	return s.server.Shutdown(ctx)
}

// Port returns the actual port the server is listening on.
// This is useful when the server was configured with port 0 for auto-assignment.
func (s *Server) Port() int {
	return s.port
}
