package questionbank

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/questionbank/internal/domain"
	dombatch "github.com/kailas-cloud/questionbank/internal/domain/batch"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

func TestDuplicateService_Find(t *testing.T) {
	mock := &mockDuplicateUC{
		findFn: func(_ context.Context, q domdup.Query, ac domdup.AccessContext) ([]domdup.Match, error) {
			if ac.OrganizationID != "org-a" {
				t.Errorf("org = %q, want org-a", ac.OrganizationID)
			}
			if q.Type != question.TypeMultipleChoice || q.Language != question.LanguagePython {
				t.Errorf("query = %+v", q)
			}
			return []domdup.Match{{
				Candidate: question.Candidate{
					ID: "q9", Title: "List comprehension", Type: question.TypeMultipleChoice,
					Language: question.LanguagePython, Difficulty: question.DifficultyMedium, IsGlobal: true,
				},
				Similarity:  82,
				Source:      domdup.SourceGlobal,
				MatchReason: domdup.ReasonVerySimilar,
			}}, nil
		},
	}

	svc := &DuplicateService{svc: mock}
	got, err := svc.Find(context.Background(), "org-a", Query{
		Title: "List comprehensions", Type: TypeMultipleChoice, Language: "python",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	m := got[0]
	if m.ID != "q9" || m.Similarity != 82 || m.Source != "Global" || m.Difficulty != "medium" {
		t.Errorf("match = %+v", m)
	}
}

func TestDuplicateService_Find_Error(t *testing.T) {
	mock := &mockDuplicateUC{
		findFn: func(context.Context, domdup.Query, domdup.AccessContext) ([]domdup.Match, error) {
			return nil, errors.New("db down")
		},
	}

	svc := &DuplicateService{svc: mock}
	if _, err := svc.Find(context.Background(), "org-a", Query{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestIndexService_Ensure(t *testing.T) {
	mock := &mockIndexingUC{
		ensureFn: func(context.Context) (bool, error) { return true, nil },
	}

	created, err := (&IndexService{svc: mock}).Ensure(context.Background())
	if err != nil || !created {
		t.Errorf("Ensure = (%v, %v), want (true, nil)", created, err)
	}
}

func TestIndexService_Upsert_ConvertsItems(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var got []question.Candidate
	mock := &mockIndexingUC{
		upsertFn: func(_ context.Context, items []question.Candidate) []dombatch.Result {
			got = items
			return []dombatch.Result{
				dombatch.NewIndexed(items[0].ID),
				dombatch.NewError(items[1].ID, ErrValidation),
			}
		},
	}

	resp := (&IndexService{svc: mock}).Upsert(context.Background(), []Question{
		{ID: "a", Title: "A", Type: TypeFillInTheBlank, Language: "go", Category: "syntax",
			CreatedAt: createdAt, Options: []string{"x"}},
		{ID: "b"},
	})

	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("succeeded=%d failed=%d", resp.Succeeded, resp.Failed)
	}
	if got[0].Category != question.CategorySyntax || !got[0].CreatedAt.Equal(createdAt) || len(got[0].Options) != 1 {
		t.Errorf("converted = %+v", got[0])
	}
	if !errors.Is(resp.firstError(), ErrValidation) {
		t.Errorf("firstError = %v", resp.firstError())
	}
}

func TestIndexService_Delete(t *testing.T) {
	mock := &mockIndexingUC{
		deleteFn: func(_ context.Context, ids []string) []dombatch.Result {
			return []dombatch.Result{dombatch.NewDeleted(ids[0])}
		},
	}

	resp := (&IndexService{svc: mock}).Delete(context.Background(), []string{"a"})
	if resp.Succeeded != 1 || !resp.Items[0].OK || resp.firstError() != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestIndexService_Get(t *testing.T) {
	mock := &mockIndexingUC{
		getFn: func(_ context.Context, org, id string) (question.Candidate, error) {
			if org != "org-1" {
				return question.Candidate{}, domain.ErrNotFound
			}
			return question.Candidate{ID: id, Type: question.TypeTrueFalse, Options: []string{"True", "False"}}, nil
		},
	}
	svc := &IndexService{svc: mock}

	got, err := svc.Get(context.Background(), "org-1", "q1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "q1" || got.Type != TypeTrueFalse || len(got.Options) != 2 {
		t.Errorf("got %+v", got)
	}

	if _, err := svc.Get(context.Background(), "org-2", "q1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
