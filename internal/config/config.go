package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete module configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	HTTP    HTTPConfig    `yaml:"http" envconfig:"HTTP"`
	Sources SourcesConfig `yaml:"sources" envconfig:"SOURCES"`
	Scan    ScanConfig    `yaml:"scan" envconfig:"SCAN"`
	Ledger  LedgerConfig  `yaml:"ledger" envconfig:"LEDGER"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// HTTPConfig contains the fault-tolerant client policy. The retry budget
// bounds the worst-case latency of one source call: Timeout * MaxAttempts
// plus the backoff sleeps.
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	MaxAttempts       int           `yaml:"max_attempts" envconfig:"MAX_ATTEMPTS" validate:"min=1,max=10"`
	InitialBackoff    time.Duration `yaml:"initial_backoff" envconfig:"INITIAL_BACKOFF"`
	MaxBackoff        time.Duration `yaml:"max_backoff" envconfig:"MAX_BACKOFF"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier" envconfig:"BACKOFF_MULTIPLIER" validate:"min=1"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" validate:"gt=0"`
	Burst             int           `yaml:"burst" envconfig:"BURST" validate:"min=1"`
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT" validate:"required"`
}

// SourceConfig configures one external data source.
type SourceConfig struct {
	Enabled   bool   `yaml:"enabled" envconfig:"ENABLED"`
	BaseURL   string `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	TrustRank int    `yaml:"trust_rank" envconfig:"TRUST_RANK" validate:"min=1"`
	Token     string `yaml:"token" envconfig:"TOKEN"`
}

// SourcesConfig configures all external data sources. Lower trust rank wins
// during reconciliation.
type SourcesConfig struct {
	Brapi         SourceConfig `yaml:"brapi" envconfig:"BRAPI"`
	StatusInvest  SourceConfig `yaml:"statusinvest" envconfig:"STATUSINVEST"`
	FundsExplorer SourceConfig `yaml:"fundsexplorer" envconfig:"FUNDSEXPLORER"`
}

// ScanConfig configures the concurrent acquisition scheduler.
type ScanConfig struct {
	Workers      int           `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=128"`
	ShortCircuit bool          `yaml:"short_circuit" envconfig:"SHORT_CIRCUIT"`
	CacheTTL     time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL"`
	CacheSize    int           `yaml:"cache_size" envconfig:"CACHE_SIZE" validate:"min=0"`
}

// LedgerConfig configures the analysis ledger store.
type LedgerConfig struct {
	Path string `yaml:"path" envconfig:"PATH" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stderr",
			FilePath: "logs/fiipulse.log",
		},
		HTTP: HTTPConfig{
			Timeout:           12 * time.Second,
			MaxAttempts:       5,
			InitialBackoff:    600 * time.Millisecond,
			MaxBackoff:        30 * time.Second,
			BackoffMultiplier: 2.0,
			RequestsPerSecond: 2,
			Burst:             2,
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		},
		Sources: SourcesConfig{
			Brapi: SourceConfig{
				Enabled:   true,
				BaseURL:   "https://brapi.dev/api/quote",
				TrustRank: 1,
			},
			StatusInvest: SourceConfig{
				Enabled:   true,
				BaseURL:   "https://statusinvest.com.br/fundos-imobiliarios",
				TrustRank: 2,
			},
			FundsExplorer: SourceConfig{
				Enabled:   true,
				BaseURL:   "https://www.fundsexplorer.com.br/funds",
				TrustRank: 3,
			},
		},
		Scan: ScanConfig{
			Workers:      16,
			ShortCircuit: true,
			CacheTTL:     15 * time.Minute,
			CacheSize:    512,
		},
		Ledger: LedgerConfig{
			Path: "data/ledger.csv",
		},
	}
}

// Load layers configuration: built-in defaults, then an optional YAML file,
// then FIIPULSE_* environment variables. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("FIIPULSE", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	// Trust ranks must be unique or reconciliation order is ambiguous.
	ranks := map[int]string{}
	for name, src := range map[string]SourceConfig{
		"brapi":         c.Sources.Brapi,
		"statusinvest":  c.Sources.StatusInvest,
		"fundsexplorer": c.Sources.FundsExplorer,
	} {
		if !src.Enabled {
			continue
		}
		if other, dup := ranks[src.TrustRank]; dup {
			return fmt.Errorf("sources %s and %s share trust rank %d", other, name, src.TrustRank)
		}
		ranks[src.TrustRank] = name
	}
	return nil
}
