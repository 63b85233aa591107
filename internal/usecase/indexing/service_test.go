package indexing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/questionbank/internal/domain"
	dombatch "github.com/kailas-cloud/questionbank/internal/domain/batch"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// --- Mocks ---

type mockRepo struct {
	ensureCreated bool
	ensureErr     error
	upsertErr     error
	upserted      []question.Candidate
	upsertCalls   int
	removed       map[string]bool
	deleteErr     error
	deleted       []string
	stored        map[string]question.Candidate
	getErr        error
}

func (m *mockRepo) Get(_ context.Context, id string) (question.Candidate, error) {
	if m.getErr != nil {
		return question.Candidate{}, m.getErr
	}
	c, ok := m.stored[id]
	if !ok {
		return question.Candidate{}, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockRepo) EnsureIndex(context.Context) (bool, error) {
	return m.ensureCreated, m.ensureErr
}

func (m *mockRepo) Upsert(_ context.Context, items []question.Candidate) error {
	m.upsertCalls++
	m.upserted = append(m.upserted, items...)
	return m.upsertErr
}

func (m *mockRepo) Delete(_ context.Context, ids []string) ([]bool, error) {
	m.deleted = append(m.deleted, ids...)
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	out := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = m.removed[id]
	}
	return out, nil
}

func validCandidate(id string) question.Candidate {
	return question.Candidate{
		ID:       id,
		Title:    "What is a closure?",
		Type:     question.TypeMultipleChoice,
		Language: question.LanguageJavaScript,
		IsGlobal: true,
	}
}

// --- Upsert ---

func TestUpsert_AllValid(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	results := svc.Upsert(context.Background(), []question.Candidate{validCandidate("a"), validCandidate("b")})

	if dombatch.Failed(results) != 0 {
		t.Fatalf("expected no failures, got %+v", results)
	}
	for _, r := range results {
		if r.Status() != dombatch.StatusIndexed {
			t.Errorf("%s: status = %s", r.ID(), r.Status())
		}
	}
	if repo.upsertCalls != 1 || len(repo.upserted) != 2 {
		t.Errorf("expected one batch of 2, got %d calls / %d items", repo.upsertCalls, len(repo.upserted))
	}
}

func TestUpsert_PerItemValidation(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	noText := validCandidate("no-text")
	noText.Title = "   "
	badType := validCandidate("bad-type")
	badType.Type = "essay"
	badLang := validCandidate("bad-lang")
	badLang.Language = "cobol"
	badCat := validCandidate("bad-cat")
	badCat.Category = "art"
	noID := validCandidate("")

	items := []question.Candidate{validCandidate("ok"), noText, badType, badLang, badCat, noID, validCandidate("ok")}
	results := svc.Upsert(context.Background(), items)

	wantMsg := []string{
		"",
		"Either title or description is required",
		"Invalid type: essay",
		"Invalid language: cobol",
		"Invalid category: art",
		"id is required",
		"Duplicate id in batch: ok",
	}
	for i, want := range wantMsg {
		r := results[i]
		if want == "" {
			if !r.OK() {
				t.Errorf("item %d: unexpected error %v", i, r.Err())
			}
			continue
		}
		if !errors.Is(r.Err(), domain.ErrValidation) {
			t.Errorf("item %d: expected validation error, got %v", i, r.Err())
			continue
		}
		if msg, _ := domain.ValidationMessage(r.Err()); msg != want {
			t.Errorf("item %d: message = %q, want %q", i, msg, want)
		}
	}
	if len(repo.upserted) != 1 || repo.upserted[0].ID != "ok" {
		t.Errorf("only the valid item should be stored, got %+v", repo.upserted)
	}
}

func TestUpsert_NothingValidSkipsStore(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	bad := validCandidate("x")
	bad.Language = ""
	results := svc.Upsert(context.Background(), []question.Candidate{bad})

	if results[0].OK() {
		t.Fatal("expected error")
	}
	if repo.upsertCalls != 0 {
		t.Error("store must not be called")
	}
}

func TestUpsert_StoreErrorMarksValidItems(t *testing.T) {
	repo := &mockRepo{upsertErr: errors.New("connection lost")}
	svc := New(repo)

	bad := validCandidate("bad")
	bad.Type = ""
	results := svc.Upsert(context.Background(), []question.Candidate{validCandidate("a"), bad})

	if results[0].OK() || !strings.Contains(results[0].Err().Error(), "connection lost") {
		t.Errorf("item 0: expected store error, got %v", results[0].Err())
	}
	if !errors.Is(results[1].Err(), domain.ErrValidation) {
		t.Errorf("item 1: expected validation error, got %v", results[1].Err())
	}
}

func TestUpsert_BatchTooLarge(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo).WithMaxBatchSize(2)

	results := svc.Upsert(context.Background(), []question.Candidate{
		validCandidate("a"), validCandidate("b"), validCandidate("c"),
	})

	if dombatch.Failed(results) != 3 {
		t.Fatalf("expected all items rejected, got %+v", results)
	}
	if repo.upsertCalls != 0 {
		t.Error("store must not be called")
	}
}

// --- Delete ---

func TestDelete_ReportsNotFound(t *testing.T) {
	repo := &mockRepo{removed: map[string]bool{"a": true}}
	svc := New(repo)

	results := svc.Delete(context.Background(), []string{"a", "missing", ""})

	if results[0].Status() != dombatch.StatusDeleted {
		t.Errorf("a: status = %s", results[0].Status())
	}
	if !errors.Is(results[1].Err(), domain.ErrNotFound) {
		t.Errorf("missing: expected ErrNotFound, got %v", results[1].Err())
	}
	if !errors.Is(results[2].Err(), domain.ErrValidation) {
		t.Errorf("empty: expected validation error, got %v", results[2].Err())
	}
	if len(repo.deleted) != 2 {
		t.Errorf("empty ids must not reach the store: %v", repo.deleted)
	}
}

func TestDelete_StoreError(t *testing.T) {
	repo := &mockRepo{deleteErr: errors.New("timeout")}
	svc := New(repo)

	results := svc.Delete(context.Background(), []string{"a", "b"})
	if dombatch.Failed(results) != 2 {
		t.Fatalf("expected all items to fail, got %+v", results)
	}
}

func TestDelete_BatchTooLarge(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo).WithMaxBatchSize(1)

	results := svc.Delete(context.Background(), []string{"a", "b"})
	if dombatch.Failed(results) != 2 || len(repo.deleted) != 0 {
		t.Fatalf("expected rejection without store access, got %+v", results)
	}
}

// --- EnsureIndex ---

func TestEnsureIndex(t *testing.T) {
	created, err := New(&mockRepo{ensureCreated: true}).EnsureIndex(context.Background())
	if err != nil || !created {
		t.Fatalf("got %v, %v", created, err)
	}

	_, err = New(&mockRepo{ensureErr: errors.New("down")}).EnsureIndex(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}

// --- Get ---

func TestGet_Visibility(t *testing.T) {
	own := validCandidate("own")
	own.IsGlobal = false
	own.OrganizationID = "org-1"
	other := validCandidate("other")
	other.IsGlobal = false
	other.OrganizationID = "org-2"

	repo := &mockRepo{stored: map[string]question.Candidate{
		"global": validCandidate("global"),
		"own":    own,
		"other":  other,
	}}
	svc := New(repo)

	tests := []struct {
		id      string
		wantErr error
	}{
		{id: "global"},
		{id: "own"},
		{id: "other", wantErr: domain.ErrNotFound},
		{id: "missing", wantErr: domain.ErrNotFound},
		{id: "  ", wantErr: domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := svc.Get(context.Background(), "org-1", tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.id {
				t.Errorf("id = %q", got.ID)
			}
		})
	}
}

func TestGet_StoreError(t *testing.T) {
	svc := New(&mockRepo{getErr: errors.New("connection reset")})
	_, err := svc.Get(context.Background(), "org-1", "q1")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected store error, got %v", err)
	}
}
