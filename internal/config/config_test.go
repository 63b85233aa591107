package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = DriverPostgres
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing dsn")
	}

	cfg.Database.DSN = "postgres://qb:qb@localhost:5432/qb"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "valkey"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `database.driver must be "redis" or "postgres", got "valkey"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_Duplicates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *DuplicatesConfig)
	}{
		{"unknown threshold type", func(d *DuplicatesConfig) { d.Thresholds["essay"] = 50 }},
		{"threshold out of range", func(d *DuplicatesConfig) { d.Thresholds["trueFalse"] = 101 }},
		{"negative weight", func(d *DuplicatesConfig) { d.Weights.Bonus = -0.1 }},
		{"result limit above candidate limit", func(d *DuplicatesConfig) { d.ResultLimit = 60 }},
		{"bands not ordered", func(d *DuplicatesConfig) { d.Bands.Related = 95 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Duplicates)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != DriverRedis {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Duplicates.CandidateLimit != 50 {
		t.Errorf("expected CandidateLimit=50, got %d", cfg.Duplicates.CandidateLimit)
	}
	if cfg.Duplicates.ResultLimit != 10 {
		t.Errorf("expected ResultLimit=10, got %d", cfg.Duplicates.ResultLimit)
	}
	if cfg.Duplicates.Weights != (WeightsConfig{Title: 0.3, Description: 0.5, Bonus: 0.2}) {
		t.Errorf("unexpected weights %+v", cfg.Duplicates.Weights)
	}
	if cfg.Duplicates.Thresholds["codeChallenge"] != 85 || cfg.Duplicates.Thresholds["trueFalse"] != 60 {
		t.Errorf("unexpected thresholds %v", cfg.Duplicates.Thresholds)
	}
	if cfg.Duplicates.DefaultThreshold != 70 {
		t.Errorf("expected DefaultThreshold=70, got %d", cfg.Duplicates.DefaultThreshold)
	}
	if cfg.Indexing.MaxBatchSize != 100 {
		t.Errorf("expected MaxBatchSize=100, got %d", cfg.Indexing.MaxBatchSize)
	}
	if cfg.Storage.KeyPrefix != "questionbank:" {
		t.Errorf("expected KeyPrefix='questionbank:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.RateLimit.Burst != 0 {
		t.Errorf("expected Burst=0 with limiting disabled, got %d", cfg.RateLimit.Burst)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{ReadinessTimeout: 15, Driver: DriverPostgres},
		RateLimit: RateLimitConfig{RequestsPerSecond: 5},
		Duplicates: DuplicatesConfig{
			CandidateLimit: 20,
			Thresholds:     map[string]int{"trueFalse": 50},
		},
		Storage: StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected Driver=postgres, got %q", cfg.Database.Driver)
	}
	if cfg.RateLimit.Burst != 5 {
		t.Errorf("expected Burst=5, got %d", cfg.RateLimit.Burst)
	}
	if cfg.Duplicates.CandidateLimit != 20 {
		t.Errorf("expected CandidateLimit=20, got %d", cfg.Duplicates.CandidateLimit)
	}
	if cfg.Duplicates.Thresholds["trueFalse"] != 50 || cfg.Duplicates.Thresholds["multipleChoice"] != 70 {
		t.Errorf("unexpected thresholds %v", cfg.Duplicates.Thresholds)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("QB_TEST_ADDR", "redis:6379")

	got := string(expandEnvVars([]byte("a: ${QB_TEST_ADDR}\nb: ${QB_TEST_MISSING:-fallback}\nc: ${QB_TEST_MISSING}")))
	want := "a: redis:6379\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${QB_TEST_PORT:-9090}
database:
  driver: redis
  addrs: ["localhost:6379"]
duplicates:
  thresholds:
    trueFalse: 65
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Duplicates.Thresholds["trueFalse"] != 65 || cfg.Duplicates.Thresholds["codeDebugging"] != 85 {
		t.Errorf("thresholds = %v", cfg.Duplicates.Thresholds)
	}
}
