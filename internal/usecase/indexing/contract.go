package indexing

import (
	"context"

	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// Repository maintains the candidate index.
type Repository interface {
	EnsureIndex(ctx context.Context) (created bool, err error)
	Upsert(ctx context.Context, items []question.Candidate) error
	Delete(ctx context.Context, ids []string) (removed []bool, err error)
	Get(ctx context.Context, id string) (question.Candidate, error)
}
