package questionbank

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "redis" or "postgres"
	addrs    []string
	password string
	dsn      string
	maxConns int32
	minConns int32

	keyPrefix    string
	maxBatchSize int

	candidateLimit int
	resultLimit    int
	thresholds     map[QuestionType]int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis keeps the candidate index in Redis with the search module.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPostgres keeps the candidate index in a PostgreSQL table.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
	})
}

// WithPoolSize bounds the PostgreSQL connection pool. Ignored for Redis.
func WithPoolSize(minConns, maxConns int32) Option {
	return optionFunc(func(c *clientConfig) {
		c.minConns = minConns
		c.maxConns = maxConns
	})
}

// WithKeyPrefix namespaces Redis keys and the index name.
// Default: "questionbank:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithMaxBatchSize sets the maximum number of items per index batch.
// Default: 100.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithLimits overrides how many candidates are scored and how many matches
// are returned. Non-positive values keep the defaults (50 and 10).
func WithLimits(candidates, results int) Option {
	return optionFunc(func(c *clientConfig) {
		c.candidateLimit = candidates
		c.resultLimit = results
	})
}

// WithThreshold overrides the minimum similarity for one question type.
func WithThreshold(t QuestionType, minSimilarity int) Option {
	return optionFunc(func(c *clientConfig) {
		if c.thresholds == nil {
			c.thresholds = make(map[QuestionType]int)
		}
		c.thresholds[t] = minSimilarity
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
