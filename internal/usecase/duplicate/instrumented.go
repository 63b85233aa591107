package duplicate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
	"github.com/kailas-cloud/questionbank/internal/metrics"
)

// InstrumentedRepository wraps a Repository with retrieval metrics and logging.
type InstrumentedRepository struct {
	inner   Repository
	backend string
	logger  *zap.Logger
}

// NewInstrumentedRepository wraps repo. backend labels the metrics (redis, postgres).
func NewInstrumentedRepository(repo Repository, backend string, logger *zap.Logger) *InstrumentedRepository {
	return &InstrumentedRepository{inner: repo, backend: backend, logger: logger}
}

// FindCandidates delegates to the wrapped repository and records duration,
// errors and candidate counts.
func (r *InstrumentedRepository) FindCandidates(
	ctx context.Context, expr filter.Expression, limit int,
) ([]question.Candidate, error) {
	start := time.Now()
	candidates, err := r.inner.FindCandidates(ctx, expr, limit)
	duration := time.Since(start)

	metrics.DuplicateRetrievalDuration.WithLabelValues(r.backend).Observe(duration.Seconds())
	if err != nil {
		metrics.DuplicateRetrievalErrorsTotal.WithLabelValues(r.backend).Inc()
		r.logger.Error("Candidate retrieval failed",
			zap.String("backend", r.backend),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.DuplicateCandidates.WithLabelValues(r.backend).Observe(float64(len(candidates)))
	return candidates, nil
}
