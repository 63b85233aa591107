// Package questionsql keeps the candidate index in a PostgreSQL table and
// retrieves candidates with ILIKE containment.
package questionsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/questionbank/internal/domain"
	domq "github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

// pool is the consumer interface over pgxpool.Pool (ISP).
type pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const selectColumns = `id, COALESCE(title, ''), COALESCE(description, ''), type, language,
	COALESCE(category, ''), COALESCE(difficulty, ''), COALESCE(organization_id, ''), is_global,
	COALESCE(created_by, ''), created_at, COALESCE(entry_function_name, ''),
	COALESCE(code_template, ''), COALESCE(correct_answer, ''), COALESCE(options, '{}')`

const upsertSQL = `INSERT INTO questions (
	id, title, description, type, language, category, difficulty, organization_id, is_global,
	created_by, created_at, entry_function_name, code_template, correct_answer, options
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11::timestamptz, now()), $12, $13, $14, $15)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	type = EXCLUDED.type,
	language = EXCLUDED.language,
	category = EXCLUDED.category,
	difficulty = EXCLUDED.difficulty,
	organization_id = EXCLUDED.organization_id,
	is_global = EXCLUDED.is_global,
	created_by = EXCLUDED.created_by,
	created_at = COALESCE($11::timestamptz, questions.created_at),
	entry_function_name = EXCLUDED.entry_function_name,
	code_template = EXCLUDED.code_template,
	correct_answer = EXCLUDED.correct_answer,
	options = EXCLUDED.options`

// Repo implements usecase/duplicate.Repository and usecase/indexing.Repository.
type Repo struct {
	pool pool
}

// New creates a SQL candidate repository.
func New(p pool) *Repo {
	return &Repo{pool: p}
}

// FindCandidates returns up to limit questions matching expr, oldest first.
func (r *Repo) FindCandidates(ctx context.Context, expr filter.Expression, limit int) ([]domq.Candidate, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	var b whereBuilder
	where, err := b.render(expr)
	if err != nil {
		return nil, fmt.Errorf("render filter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectColumns)
	sb.WriteString(" FROM questions")
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	sb.WriteString(" ORDER BY created_at, id LIMIT ")
	sb.WriteString(b.bind(limit))

	rows, err := r.pool.Query(ctx, sb.String(), b.args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := []domq.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

// Get returns one indexed candidate. A missing row yields domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domq.Candidate, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+selectColumns+" FROM questions WHERE id = $1", id)
	if err != nil {
		return domq.Candidate{}, fmt.Errorf("query candidate %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domq.Candidate{}, fmt.Errorf("query candidate %s: %w", id, err)
		}
		return domq.Candidate{}, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	return scanCandidate(rows)
}

func scanCandidate(rows pgx.Rows) (domq.Candidate, error) {
	var c domq.Candidate
	var typ, lang, cat, diff string
	if err := rows.Scan(
		&c.ID, &c.Title, &c.Description, &typ, &lang,
		&cat, &diff, &c.OrganizationID, &c.IsGlobal,
		&c.CreatedBy, &c.CreatedAt, &c.EntryFunctionName,
		&c.CodeTemplate, &c.CorrectAnswer, &c.Options,
	); err != nil {
		return domq.Candidate{}, fmt.Errorf("scan candidate: %w", err)
	}
	c.Type = domq.Type(typ)
	c.Language = domq.Language(lang)
	c.Category = domq.Category(cat)
	c.Difficulty = domq.Difficulty(diff)
	return c, nil
}

// Upsert inserts or replaces candidates in a single transaction.
func (r *Repo) Upsert(ctx context.Context, items []domq.Candidate) (err error) {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for i := range items {
		c := &items[i]
		if _, err = tx.Exec(ctx, upsertSQL,
			c.ID, c.Title, c.Description, string(c.Type), string(c.Language),
			nullable(string(c.Category)), nullable(string(c.Difficulty)), nullable(c.OrganizationID), c.IsGlobal,
			nullable(c.CreatedBy), nullableTime(c.CreatedAt), nullable(c.EntryFunctionName),
			nullable(c.CodeTemplate), nullable(c.CorrectAnswer), c.Options,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", c.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete removes candidates by ID and reports which of them existed.
func (r *Repo) Delete(ctx context.Context, ids []string) ([]bool, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `DELETE FROM questions WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return nil, fmt.Errorf("delete questions: %w", err)
	}
	defer rows.Close()

	gone := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted id: %w", err)
		}
		gone[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted ids: %w", err)
	}

	removed := make([]bool, len(ids))
	for i, id := range ids {
		_, removed[i] = gone[id]
	}
	return removed, nil
}

// nullableTime leaves an unknown creation time to the column default.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
