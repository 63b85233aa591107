// Package chi exposes duplicate detection and candidate index maintenance over HTTP.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	duplicateuc "github.com/kailas-cloud/questionbank/internal/usecase/duplicate"
	healthuc "github.com/kailas-cloud/questionbank/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/questionbank/internal/usecase/indexing"
)

// maxBodyBytes bounds request bodies; a full index batch of code questions fits comfortably.
const maxBodyBytes = 8 << 20

// Server holds the HTTP handlers.
type Server struct {
	duplicates    *duplicateuc.Service
	indexing      *indexinguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	duplicates *duplicateuc.Service,
	indexing *indexinguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		duplicates:    duplicates,
		indexing:      indexing,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// FindDuplicates handles POST /v1/questions/duplicates.
func (s *Server) FindDuplicates(w http.ResponseWriter, r *http.Request) {
	var q domdup.Query
	if !s.decode(w, r, &q) {
		return
	}
	s.respondDuplicates(w, r, q)
}

// FindDuplicatesByQuery handles GET /v1/questions/duplicates.
func (s *Server) FindDuplicatesByQuery(w http.ResponseWriter, r *http.Request) {
	var params duplicateQueryParams
	query := r.URL.Query()
	bindings := []struct {
		name string
		dest **string
	}{
		{"title", &params.Title},
		{"description", &params.Description},
		{"type", &params.Type},
		{"language", &params.Language},
		{"category", &params.Category},
		{"entryFunction", &params.EntryFunction},
		{"codeTemplate", &params.CodeTemplate},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
				"Invalid format for parameter "+b.name+": "+err.Error())
			return
		}
	}
	s.respondDuplicates(w, r, params.toQuery())
}

func (s *Server) respondDuplicates(w http.ResponseWriter, r *http.Request, q domdup.Query) {
	ac := domdup.AccessContext{OrganizationID: OrganizationFromContext(r.Context())}
	matches, err := s.duplicates.FindSimilar(r.Context(), q, ac)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]DuplicateItem, len(matches))
	for i := range matches {
		items[i] = duplicateToDTO(&matches[i])
	}
	writeJSON(w, http.StatusOK, DuplicateListResponse{Items: items})
}

// UpsertIndex handles PUT /v1/questions/index.
func (s *Server) UpsertIndex(w http.ResponseWriter, r *http.Request) {
	var req IndexUpsertRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "items must not be empty")
		return
	}

	candidates := make([]question.Candidate, len(req.Items))
	for i := range req.Items {
		candidates[i] = indexItemToCandidate(&req.Items[i])
	}
	writeJSON(w, http.StatusOK, batchToDTO(s.indexing.Upsert(r.Context(), candidates)))
}

// GetIndexed handles GET /v1/questions/index/{id}.
func (s *Server) GetIndexed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := s.indexing.Get(r.Context(), OrganizationFromContext(r.Context()), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidateToIndexItem(&c))
}

// DeleteIndex handles DELETE /v1/questions/index.
func (s *Server) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	var req IndexDeleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "ids must not be empty")
		return
	}
	writeJSON(w, http.StatusOK, batchToDTO(s.indexing.Delete(r.Context(), req.IDs)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// GetMetrics handles GET /metrics.
func (s *Server) GetMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
