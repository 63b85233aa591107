package questionsql

import (
	"context"
	"fmt"
)

// schemaStatements create the candidate table and its retrieval index. Every
// statement is idempotent, so concurrent starters converge.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS questions (
	id                  text PRIMARY KEY,
	title               text,
	description         text,
	type                text NOT NULL,
	language            text NOT NULL,
	category            text,
	difficulty          text,
	organization_id     text,
	is_global           boolean NOT NULL DEFAULT false,
	created_by          text,
	created_at          timestamptz NOT NULL DEFAULT now(),
	entry_function_name text,
	code_template       text,
	correct_answer      text,
	options             text[]
)`,
	`CREATE INDEX IF NOT EXISTS questions_type_language_created_idx
	ON questions (type, language, created_at, id)`,
}

// EnsureIndex creates the questions table when it is missing.
// Reports whether it was created.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	exists, err := r.tableExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	for _, stmt := range schemaStatements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return false, fmt.Errorf("create questions schema: %w", err)
		}
	}
	return true, nil
}

// CheckIndex checks that the questions table exists.
func (r *Repo) CheckIndex(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `SELECT 1 FROM questions LIMIT 0`); err != nil {
		return fmt.Errorf("check questions table: %w", err)
	}
	return nil
}

func (r *Repo) tableExists(ctx context.Context) (bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT to_regclass('questions') IS NOT NULL`)
	if err != nil {
		return false, fmt.Errorf("lookup questions table: %w", err)
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, fmt.Errorf("scan table lookup: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("lookup questions table: %w", err)
	}
	return exists, nil
}
