package question

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/questionbank/internal/db"
	domq "github.com/kailas-cloud/questionbank/internal/domain/question"
)

const testPrefix = "qb:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delMultiFn    func(ctx context.Context, keys []string) ([]bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	searchFn      func(ctx context.Context, q *db.Query) (*db.SearchResult, error)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) DelMulti(ctx context.Context, keys []string) ([]bool, error) {
	if m.delMultiFn != nil {
		return m.delMultiFn(ctx, keys)
	}
	return make([]bool, len(keys)), nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, testPrefix), ms
}

func testCandidate(t *testing.T) domq.Candidate {
	t.Helper()
	return domq.Candidate{
		ID:                "q-1",
		Title:             "Sum two numbers",
		Description:       "Write a function that adds\x1ftwo integers",
		Type:              domq.TypeCodeChallenge,
		Language:          domq.LanguageGo,
		Category:          domq.CategoryLogic,
		Difficulty:        domq.DifficultyEasy,
		OrganizationID:    "org-1",
		CreatedBy:         "user-1",
		CreatedAt:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		EntryFunctionName: "Sum",
		CodeTemplate:      "func Sum(a, b int) int {}",
		Options:           []string{"a", "b"},
	}
}
