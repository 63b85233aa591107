package duplicate

import (
	"context"

	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

// Repository reads candidate questions from the candidate index.
// Implementations must return at most limit candidates and keep store order.
type Repository interface {
	FindCandidates(ctx context.Context, expr filter.Expression, limit int) ([]question.Candidate, error)
}
