// Package api exposes the trip planner over HTTP: prompt parsing, offer
// search, a mock booking hold, and health probes. Transport concerns only;
// all ranking logic lives under decision/.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"trip-planner/decision/intent"
	"trip-planner/decision/search"
	"trip-planner/pkg/trip"
)

// Config holds server configuration.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           4000,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		RequestTimeout: 10 * time.Second,
		MaxRequestSize: 1 << 20, // 1MB; intents and prompts are tiny
		CORSOrigins:    []string{"*"},
	}
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	search     *search.Service
	config     *Config
	logger     zerolog.Logger
}

// NewServer creates an API server around a search service.
func NewServer(svc *search.Service, config *Config, logger zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		search: svc,
		config: config,
		logger: logger,
	}
}

// Handler builds the route tree. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/parse", s.handleParse)
		r.Post("/search", s.handleSearch)
		r.Post("/hold", s.handleHold)
	})

	return r
}

// Start starts the HTTP server and blocks.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.logger.Info().Int("port", s.config.Port).Msg("api server listening")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown runs the server until SIGINT/SIGTERM, then
// drains in-flight requests.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.logger.Info().Msg("shutting down api server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	parsed, err := intent.Parse(req.Prompt)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

// SearchRequest is the body of POST /api/search. Mode defaults to cheapest.
type SearchRequest struct {
	Intent trip.Intent `json:"intent"`
	Mode   string      `json:"mode"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if req.Mode == "" {
		req.Mode = string(trip.ModeCheapest)
	}
	mode, err := trip.ParseRankMode(req.Mode)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	intent.Normalize(&req.Intent)
	if err := intent.Validate(req.Intent); err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.search.Search(r.Context(), req.Intent, mode)
	if err != nil {
		// Mode and intent were validated above, so anything here is an
		// internal failure, not a caller mistake.
		s.jsonError(w, http.StatusInternalServerError, fmt.Sprintf("search failed: %v", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// HoldRequest is the body of POST /api/hold.
type HoldRequest struct {
	OfferID string `json:"offerId"`
}

// HoldResponse simulates the booking handoff of the original demo; nothing
// is reserved anywhere.
type HoldResponse struct {
	Status  string    `json:"status"`
	HoldID  uuid.UUID `json:"hold_id"`
	OfferID string    `json:"offerId"`
	Next    string    `json:"next"`
}

func (s *Server) handleHold(w http.ResponseWriter, r *http.Request) {
	var req HoldRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.OfferID == "" {
		s.jsonError(w, http.StatusBadRequest, "offerId is required")
		return
	}

	s.jsonResponse(w, http.StatusOK, HoldResponse{
		Status:  "HELD",
		HoldID:  uuid.New(),
		OfferID: req.OfferID,
		Next:    "Proceed to seat selection & payment (mock)",
	})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)
	return json.NewDecoder(r.Body).Decode(dst)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
