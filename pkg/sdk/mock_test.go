package questionbank

import (
	"context"

	"github.com/kailas-cloud/questionbank/internal/domain"
	dombatch "github.com/kailas-cloud/questionbank/internal/domain/batch"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

// --- duplicateUseCase mock ---

type mockDuplicateUC struct {
	findFn func(ctx context.Context, q domdup.Query, ac domdup.AccessContext) ([]domdup.Match, error)
}

func (m *mockDuplicateUC) FindSimilar(
	ctx context.Context, q domdup.Query, ac domdup.AccessContext,
) ([]domdup.Match, error) {
	return m.findFn(ctx, q, ac)
}

// --- indexingUseCase mock ---

type mockIndexingUC struct {
	ensureFn func(ctx context.Context) (bool, error)
	upsertFn func(ctx context.Context, items []question.Candidate) []dombatch.Result
	deleteFn func(ctx context.Context, ids []string) []dombatch.Result
	getFn    func(ctx context.Context, org, id string) (question.Candidate, error)
}

func (m *mockIndexingUC) Get(ctx context.Context, org, id string) (question.Candidate, error) {
	return m.getFn(ctx, org, id)
}

func (m *mockIndexingUC) EnsureIndex(ctx context.Context) (bool, error) {
	return m.ensureFn(ctx)
}

func (m *mockIndexingUC) Upsert(ctx context.Context, items []question.Candidate) []dombatch.Result {
	return m.upsertFn(ctx, items)
}

func (m *mockIndexingUC) Delete(ctx context.Context, ids []string) []dombatch.Result {
	return m.deleteFn(ctx, ids)
}

// --- in-memory store + repository ---

type memStore struct {
	pingErr error
	closed  bool
}

func (s *memStore) Ping(context.Context) error { return s.pingErr }
func (s *memStore) Close()                     { s.closed = true }

// memRepo keeps candidates in insertion order and evaluates filters in memory.
type memRepo struct {
	order []string
	items map[string]question.Candidate
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[string]question.Candidate)}
}

func (r *memRepo) FindCandidates(_ context.Context, expr filter.Expression, limit int) ([]question.Candidate, error) {
	var out []question.Candidate
	for _, id := range r.order {
		c, ok := r.items[id]
		if !ok {
			continue
		}
		if len(out) == limit {
			break
		}
		if expr.Eval(map[string]string{
			question.FieldTitle:          c.Title,
			question.FieldDescription:    c.Description,
			question.FieldType:           string(c.Type),
			question.FieldLanguage:       string(c.Language),
			question.FieldCategory:       string(c.Category),
			question.FieldOrganizationID: c.OrganizationID,
			question.FieldIsGlobal:       question.BoolValue(c.IsGlobal),
			question.FieldEntryFunction:  c.EntryFunctionName,
		}) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepo) EnsureIndex(context.Context) (bool, error) { return false, nil }

func (r *memRepo) Upsert(_ context.Context, items []question.Candidate) error {
	for _, c := range items {
		if _, ok := r.items[c.ID]; !ok {
			r.order = append(r.order, c.ID)
		}
		r.items[c.ID] = c
	}
	return nil
}

func (r *memRepo) Delete(_ context.Context, ids []string) ([]bool, error) {
	out := make([]bool, len(ids))
	for i, id := range ids {
		_, out[i] = r.items[id]
		delete(r.items, id)
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, id string) (question.Candidate, error) {
	c, ok := r.items[id]
	if !ok {
		return question.Candidate{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *memRepo) CheckIndex(context.Context) error { return nil }
