package questionbank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/questionbank/internal/backend"
	"github.com/kailas-cloud/questionbank/internal/config"
	dombatch "github.com/kailas-cloud/questionbank/internal/domain/batch"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	duplicateuc "github.com/kailas-cloud/questionbank/internal/usecase/duplicate"
	healthuc "github.com/kailas-cloud/questionbank/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/questionbank/internal/usecase/indexing"
)

const (
	defaultReadinessTimeoutSec = 10
	defaultKeyPrefix           = "questionbank:"
)

// Internal interfaces, swapped for fakes in tests.
type duplicateUseCase interface {
	FindSimilar(ctx context.Context, q domdup.Query, ac domdup.AccessContext) ([]domdup.Match, error)
}

type indexingUseCase interface {
	EnsureIndex(ctx context.Context) (bool, error)
	Upsert(ctx context.Context, items []question.Candidate) []dombatch.Result
	Delete(ctx context.Context, ids []string) []dombatch.Result
	Get(ctx context.Context, org, id string) (question.Candidate, error)
}

type store interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the questionbank SDK entry point.
type Client struct {
	store     store
	dupSvc    duplicateUseCase
	indexSvc  indexingUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 && cfg.dsn == "" {
		return nil, errors.New("questionbank: database required (use WithRedis or WithPostgres)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	b, err := backend.Open(ctx, config.DatabaseConfig{
		Driver:           cfg.driver,
		Addrs:            cfg.addrs,
		Password:         cfg.password,
		DSN:              cfg.dsn,
		MaxConns:         cfg.maxConns,
		MinConns:         cfg.minConns,
		ReadinessTimeout: defaultReadinessTimeoutSec,
	}, cfg.keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("questionbank: %w", err)
	}

	return wireClient(b, b.Repo, cfg, obs), nil
}

// wireClient composes services over an opened repository.
func wireClient(s store, repo backend.Repository, cfg *clientConfig, obs *observer) *Client {
	indexSvc := indexinguc.New(repo)
	if cfg.maxBatchSize > 0 {
		indexSvc = indexSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}

	return &Client{
		store:     s,
		dupSvc:    duplicateuc.New(repo, buildPolicy(cfg)),
		indexSvc:  indexSvc,
		healthSvc: healthuc.New(s, repo),
		obs:       obs,
	}
}

func buildPolicy(cfg *clientConfig) duplicateuc.Policy {
	p := duplicateuc.DefaultPolicy()
	if cfg.candidateLimit > 0 {
		p.CandidateLimit = cfg.candidateLimit
	}
	if cfg.resultLimit > 0 {
		p.ResultLimit = cfg.resultLimit
	}
	if p.ResultLimit > p.CandidateLimit {
		p.ResultLimit = p.CandidateLimit
	}
	for t, v := range cfg.thresholds {
		p.Thresholds[question.Type(t)] = v
	}
	return p
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Duplicates returns the duplicate detection service.
func (c *Client) Duplicates() *DuplicateService {
	return &DuplicateService{svc: c.dupSvc, obs: c.obs}
}

// Index returns the candidate index maintenance service.
func (c *Client) Index() *IndexService {
	return &IndexService{svc: c.indexSvc, obs: c.obs}
}
