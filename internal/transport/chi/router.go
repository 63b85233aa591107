package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/questionbank/internal/metrics"
)

// RouterConfig holds the cross-cutting request policies.
type RouterConfig struct {
	APIKeys           []string
	RequestsPerSecond float64
	Burst             int
}

// Mount registers the API routes on r. Outer middleware (request id,
// recovery, access logging) is the caller's concern.
func (s *Server) Mount(r chi.Router, cfg RouterConfig) {
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.GetMetrics)

	r.Route("/v1/questions", func(r chi.Router) {
		r.Use(TenantMiddleware())
		r.Use(RateLimitMiddleware(cfg.RequestsPerSecond, cfg.Burst))

		r.Post("/duplicates", s.FindDuplicates)
		r.Get("/duplicates", s.FindDuplicatesByQuery)
		r.Put("/index", s.UpsertIndex)
		r.Get("/index/{id}", s.GetIndexed)
		r.Delete("/index", s.DeleteIndex)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// NewRouter returns a chi router with the API mounted.
func (s *Server) NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	s.Mount(r, cfg)
	return r
}
