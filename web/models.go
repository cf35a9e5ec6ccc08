package web

import (
	"log/slog"

	"livescore/api/api"
	"livescore/metrics"
)

// Config holds the configuration for the web server
type Config struct {
	Addr        string
	API         *api.API
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// Server is the HTTP server that exposes the scoring API
type Server struct {
	api         *api.API
	logger      *slog.Logger
	metrics     *metrics.Recorder
	corsOrigins []string
}

// NewServer creates a Server from cfg
func NewServer(cfg Config) *Server {
	return &Server{
		api:         cfg.API,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		corsOrigins: cfg.CORSOrigins,
	}
}

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Error string `json:"error"`
}

type sportsResponse struct {
	Sports []string `json:"sports"`
}
