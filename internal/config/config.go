package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// Config holds the question bank service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Duplicates DuplicatesConfig `yaml:"duplicates"`
	Indexing   IndexingConfig   `yaml:"indexing"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// RateLimitConfig holds per-organization request limits. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Database drivers.
const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, postgres (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	DSN              string   `yaml:"dsn"`
	MaxConns         int32    `yaml:"max_conns"`
	MinConns         int32    `yaml:"min_conns"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DuplicatesConfig holds duplicate detection tunables.
type DuplicatesConfig struct {
	CandidateLimit   int            `yaml:"candidate_limit"`
	ResultLimit      int            `yaml:"result_limit"`
	Weights          WeightsConfig  `yaml:"weights"`
	Thresholds       map[string]int `yaml:"thresholds"`
	DefaultThreshold int            `yaml:"default_threshold"`
	Bands            BandsConfig    `yaml:"bands"`
}

// WeightsConfig holds the similarity sub-score weights.
type WeightsConfig struct {
	Title       float64 `yaml:"title"`
	Description float64 `yaml:"description"`
	Bonus       float64 `yaml:"bonus"`
}

// BandsConfig holds the match reason similarity floors.
type BandsConfig struct {
	NearlyIdentical int `yaml:"nearly_identical"`
	VerySimilar     int `yaml:"very_similar"`
	Similar         int `yaml:"similar"`
	Related         int `yaml:"related"`
}

// IndexingConfig holds candidate index maintenance settings.
type IndexingConfig struct {
	MaxBatchSize int `yaml:"max_batch_size"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverRedis
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.MinConns <= 0 {
		c.Database.MinConns = 2
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = int(c.RateLimit.RequestsPerSecond)
		if c.RateLimit.Burst < 1 {
			c.RateLimit.Burst = 1
		}
	}
	c.Duplicates.applyDefaults()
	if c.Indexing.MaxBatchSize <= 0 {
		c.Indexing.MaxBatchSize = 100
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "questionbank:"
	}
}

func (d *DuplicatesConfig) applyDefaults() {
	if d.CandidateLimit <= 0 {
		d.CandidateLimit = 50
	}
	if d.ResultLimit <= 0 {
		d.ResultLimit = 10
	}
	if d.Weights == (WeightsConfig{}) {
		d.Weights = WeightsConfig{Title: 0.3, Description: 0.5, Bonus: 0.2}
	}
	defaults := map[string]int{
		"trueFalse":      60,
		"multipleChoice": 70,
		"fillInTheBlank": 75,
		"codeChallenge":  85,
		"codeDebugging":  85,
	}
	if d.Thresholds == nil {
		d.Thresholds = make(map[string]int, len(defaults))
	}
	for k, v := range defaults {
		if _, ok := d.Thresholds[k]; !ok {
			d.Thresholds[k] = v
		}
	}
	if d.DefaultThreshold <= 0 {
		d.DefaultThreshold = 70
	}
	if d.Bands == (BandsConfig{}) {
		d.Bands = BandsConfig{NearlyIdentical: 90, VerySimilar: 80, Similar: 70, Related: 60}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"postgres\", got %q", c.Database.Driver)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limit.requests_per_second must not be negative")
	}
	return c.Duplicates.validate()
}

func (d *DuplicatesConfig) validate() error {
	if d.ResultLimit > d.CandidateLimit {
		return fmt.Errorf("duplicates.result_limit (%d) exceeds candidate_limit (%d)", d.ResultLimit, d.CandidateLimit)
	}
	w := d.Weights
	if w.Title < 0 || w.Description < 0 || w.Bonus < 0 {
		return fmt.Errorf("duplicates.weights must not be negative")
	}
	for name, v := range d.Thresholds {
		if !question.Type(name).IsValid() {
			return fmt.Errorf("duplicates.thresholds: unknown question type %q", name)
		}
		if v < 0 || v > 100 {
			return fmt.Errorf("duplicates.thresholds.%s must be between 0 and 100, got %d", name, v)
		}
	}
	if d.DefaultThreshold > 100 {
		return fmt.Errorf("duplicates.default_threshold must be between 0 and 100, got %d", d.DefaultThreshold)
	}
	b := d.Bands
	if b.NearlyIdentical < b.VerySimilar || b.VerySimilar < b.Similar || b.Similar < b.Related {
		return fmt.Errorf("duplicates.bands must be non-increasing")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
