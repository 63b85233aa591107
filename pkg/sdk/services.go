package questionbank

import (
	"context"
	"fmt"
	"time"

	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// DuplicateService finds stored questions similar to a proposed one.
type DuplicateService struct {
	svc duplicateUseCase
	obs *observer
}

// Find returns up to the result limit of matches visible to organizationID,
// most similar first. Invalid queries fail with ErrValidation.
func (s *DuplicateService) Find(
	ctx context.Context, organizationID string, q Query,
) (_ []Match, err error) {
	start := time.Now()
	defer func() { s.obs.observe("duplicates.find", start, err) }()

	matches, err := s.svc.FindSimilar(ctx, toInternalQuery(q), domdup.AccessContext{OrganizationID: organizationID})
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}
	out := make([]Match, len(matches))
	for i := range matches {
		out[i] = fromInternalMatch(&matches[i])
	}
	return out, nil
}

// IndexService keeps the candidate index in sync with the question bank.
type IndexService struct {
	svc indexingUseCase
	obs *observer
}

// Ensure creates the candidate index if missing. Returns true if created.
func (s *IndexService) Ensure(ctx context.Context) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("index.ensure", start, err) }()

	created, err := s.svc.EnsureIndex(ctx)
	if err != nil {
		return false, fmt.Errorf("ensure index: %w", err)
	}
	return created, nil
}

// Upsert indexes questions, replacing existing entries with the same ID.
// Per-item failures are reported in the response.
func (s *IndexService) Upsert(ctx context.Context, items []Question) BatchResponse {
	start := time.Now()
	candidates := make([]question.Candidate, len(items))
	for i := range items {
		candidates[i] = toInternalCandidate(&items[i])
	}
	resp := toBatchResponse(s.svc.Upsert(ctx, candidates))
	s.obs.observe("index.upsert", start, resp.firstError())
	return resp
}

// Get returns an indexed question visible to organizationID. Questions of
// other organizations fail with ErrNotFound.
func (s *IndexService) Get(ctx context.Context, organizationID, id string) (_ Question, err error) {
	start := time.Now()
	defer func() { s.obs.observe("index.get", start, err) }()

	c, err := s.svc.Get(ctx, organizationID, id)
	if err != nil {
		return Question{}, fmt.Errorf("get question: %w", err)
	}
	return fromInternalCandidate(&c), nil
}

// Delete removes questions from the index. Unknown IDs fail with ErrNotFound.
func (s *IndexService) Delete(ctx context.Context, ids []string) BatchResponse {
	start := time.Now()
	resp := toBatchResponse(s.svc.Delete(ctx, ids))
	s.obs.observe("index.delete", start, resp.firstError())
	return resp
}
