// Package api exposes the converter over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-specmark"
)

// MaxBodyBytes limits the size of a document posted for conversion.
const MaxBodyBytes = 10 << 20

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	pool     *specmark.ConverterPool
	defaults specmark.Permalinks
	log      *slog.Logger
}

// NewServer creates and configures the HTTP server. defaults holds the
// permalink options applied when a request does not override them.
func NewServer(pool *specmark.ConverterPool, defaults specmark.Permalinks, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		pool:     pool,
		defaults: defaults,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/v1/convert", s.handleConvert)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		s.logWriteError(r, err)
	}
}
