// Package backend opens the configured candidate index store and hands out
// the repository that serves it.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/questionbank/internal/config"
	"github.com/kailas-cloud/questionbank/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/questionbank/internal/db/redis"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
	questionrepo "github.com/kailas-cloud/questionbank/internal/repository/question"
	"github.com/kailas-cloud/questionbank/internal/repository/questionsql"
)

// Repository is the full candidate index surface both drivers provide.
type Repository interface {
	FindCandidates(ctx context.Context, expr filter.Expression, limit int) ([]question.Candidate, error)
	EnsureIndex(ctx context.Context) (bool, error)
	Upsert(ctx context.Context, items []question.Candidate) error
	Delete(ctx context.Context, ids []string) ([]bool, error)
	Get(ctx context.Context, id string) (question.Candidate, error)
	CheckIndex(ctx context.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Backend is an open store connection and its repository.
type Backend struct {
	Driver string
	Repo   Repository

	db    pinger
	close func()
}

// Open connects to the store named by cfg.Driver and waits until it answers.
func Open(ctx context.Context, cfg config.DatabaseConfig, keyPrefix string) (*Backend, error) {
	timeout := time.Duration(cfg.ReadinessTimeout) * time.Second

	switch cfg.Driver {
	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis not ready: %w", err)
		}
		return &Backend{
			Driver: cfg.Driver,
			Repo:   questionrepo.New(store, keyPrefix),
			db:     store,
			close:  store.Close,
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, postgres.Config{
			DSN:      cfg.DSN,
			MaxConns: cfg.MaxConns,
			MinConns: cfg.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		if err := postgres.WaitForReady(ctx, pool, timeout); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres not ready: %w", err)
		}
		return &Backend{
			Driver: cfg.Driver,
			Repo:   questionsql.New(pool),
			db:     pool,
			close:  pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Ping checks the store connection.
func (b *Backend) Ping(ctx context.Context) error {
	return b.db.Ping(ctx) //nolint:wrapcheck // health reports the raw driver error
}

// Close releases the connection.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}
