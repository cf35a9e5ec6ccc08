/* router.go
 * Contains the route table and middleware stack of the HTTP server
 */

package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const requestTimeout = 30 * time.Second

// Router builds the HTTP handler for s
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sports", s.GetSports)
		r.Post("/matches", s.CreateMatch)

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", s.GetMatch)
			r.Delete("/", s.DeleteMatch)
			r.Post("/actions", s.ApplyAction)
			r.Post("/undo", s.Undo)
			r.Get("/result", s.GetResult)
		})
	})

	return r
}
