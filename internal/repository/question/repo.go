// Package question stores the candidate index in Redis hashes searchable via FT.SEARCH.
package question

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/questionbank/internal/db"
	"github.com/kailas-cloud/questionbank/internal/domain"
	domq "github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
	"github.com/kailas-cloud/questionbank/internal/logger"
)

// store is the consumer interface for the candidate index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	DelMulti(ctx context.Context, keys []string) ([]bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
}

// Repo implements usecase/duplicate.Repository and usecase/indexing.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a candidate repository. Keys and the index name start with prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// EnsureIndex creates the FT index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	def, err := buildIndex(r.prefix)
	if err != nil {
		return false, fmt.Errorf("build index: %w", err)
	}

	exists, err := r.store.IndexExists(ctx, def.Name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", def.Name, err)
	}
	if exists {
		return false, nil
	}

	logger.FromContext(ctx).Debug("creating candidate index", zap.Stringer("definition", def))
	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Lost a race with another instance.
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return true, nil
}

// FindCandidates returns up to limit indexed questions matching expr, oldest first.
func (r *Repo) FindCandidates(ctx context.Context, expr filter.Expression, limit int) ([]domq.Candidate, error) {
	res, err := r.store.Search(ctx, &db.Query{
		IndexName:    indexName(r.prefix),
		Filters:      expr,
		Limit:        limit,
		ReturnFields: domq.ProjectionFields,
		SortBy:       domq.FieldCreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	out := make([]domq.Candidate, 0, len(res.Entries))
	for _, e := range res.Entries {
		c, err := candidateFromHash(e.Fields)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Upsert stores candidates in one pipeline. Existing keys are overwritten field by field.
func (r *Repo) Upsert(ctx context.Context, items []domq.Candidate) error {
	if len(items) == 0 {
		return nil
	}

	batch := make([]db.HashSetItem, len(items))
	for i := range items {
		fields, err := candidateToHash(&items[i])
		if err != nil {
			return fmt.Errorf("encode %s: %w", items[i].ID, err)
		}
		batch[i] = db.HashSetItem{Key: questionKey(r.prefix, items[i].ID), Fields: fields}
	}

	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("hset questions: %w", err)
	}
	return nil
}

// Get reads one candidate hash. A missing key yields domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domq.Candidate, error) {
	fields, err := r.store.HGetAll(ctx, questionKey(r.prefix, id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return domq.Candidate{}, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domq.Candidate{}, fmt.Errorf("hgetall question %s: %w", id, err)
	}
	c, err := candidateFromHash(fields)
	if err != nil {
		return domq.Candidate{}, fmt.Errorf("decode %s: %w", id, err)
	}
	return c, nil
}

// Delete removes candidates by ID and reports which of them were indexed.
func (r *Repo) Delete(ctx context.Context, ids []string) ([]bool, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = questionKey(r.prefix, id)
	}

	removed, err := r.store.DelMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("del questions: %w", err)
	}
	return removed, nil
}

// CheckIndex returns db.ErrIndexNotFound when the candidate index is missing.
func (r *Repo) CheckIndex(ctx context.Context) error {
	name := indexName(r.prefix)
	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if !exists {
		return db.ErrIndexNotFound
	}
	return nil
}
