// Package web serves the single-page ClipCatch UI and its JSON endpoints.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"clipcatch/internal/library"
	"clipcatch/internal/model"
	"clipcatch/internal/progress"
)

// MediaService is the slice of the pipeline the handlers need. Operations
// run synchronously on the request goroutine; the tool is single-operator
// and concurrent sessions are deliberately not coordinated.
type MediaService interface {
	Download(ctx context.Context, req model.DownloadRequest, jobID string) (model.DownloadedFile, string, error)
	Trim(ctx context.Context, sourceName string, startSec, endSec float64, jobID string) (model.TrimmedFile, string, error)
	Duration(ctx context.Context, sourceName string) (float64, error)
	NewJobID() string
}

// config holds internal HTTP server configuration.
type config struct {
	addr string
}

// Option is a functional option for Server configuration.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *config) { c.addr = addr }
}

// Server is the ClipCatch HTTP server.
type Server struct {
	*http.Server
}

// NewServer assembles the router and returns a ready-to-run server.
func NewServer(logger *slog.Logger, svc MediaService, lib *library.Library, tracker *progress.Tracker, opts ...Option) *Server {
	cfg := &config{addr: "localhost:8080"}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &handlers{
		logger:  logger,
		svc:     svc,
		lib:     lib,
		tracker: tracker,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/", h.index)
	router.Get("/health", h.health)

	router.Route("/api", func(r chi.Router) {
		r.Post("/download", h.download)
		r.Post("/trim", h.trim)
		r.Get("/files", h.files)
		r.Get("/files/{name}/duration", h.fileDuration)
		r.Get("/jobs/{id}", h.job)
	})

	router.Get("/files/downloads/{name}", h.serveDownload)
	router.Get("/files/trimmed/{name}", h.serveTrimmed)

	return &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}
}
