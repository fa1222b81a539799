// Package config loads engine configuration from file and environment via
// viper.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the engine.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Search configuration
	Search SearchConfig `mapstructure:"search"`

	// Storage configuration
	Storage StorageConfig `mapstructure:"storage"`

	// Embedding configuration
	Embedding EmbeddingConfig `mapstructure:"embedding"`

	// Reranker configuration
	Reranker RerankerConfig `mapstructure:"reranker"`

	// Refiner configuration
	Refiner RefinerConfig `mapstructure:"refiner"`

	// Keywords configuration
	Keywords KeywordsConfig `mapstructure:"keywords"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// CircuitBreaker configuration for the refiner
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// SearchConfig holds waterfall and ranking configuration
type SearchConfig struct {
	StrictMinResults int     `mapstructure:"strict_min_results"`
	RetrieveLimit    int     `mapstructure:"retrieve_limit"`
	TierTimeoutSec   int     `mapstructure:"tier_timeout_sec"`
	DeadlineSec      int     `mapstructure:"deadline_sec"`
	MinDenseScore    float64 `mapstructure:"min_dense_score"`
	RerankPoolSize   int     `mapstructure:"rerank_pool_size"`
}

// StorageConfig holds content store and vector index configuration
type StorageConfig struct {
	// Driver selects the backend pair: "postgres" (documents in
	// PostgreSQL, vectors in badger) or "memory".
	Driver string `mapstructure:"driver"`

	// DSN is the PostgreSQL connection string when Driver is "postgres".
	DSN string `mapstructure:"dsn"`

	// BadgerPath is the vector index directory.
	BadgerPath string `mapstructure:"badger_path"`
}

// EmbeddingConfig holds embedding model configuration
type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"` // embedeverything, openai, mock
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`

	// Dimensions is only consulted by the mock provider; real providers
	// report their own dimensionality.
	Dimensions int `mapstructure:"dimensions"`
}

// RerankerConfig holds cross-encoder configuration
type RerankerConfig struct {
	Provider       string `mapstructure:"provider"` // embedeverything, openai, local, mock
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
}

// RefinerConfig holds LLM refiner configuration. An empty APIKey with an
// empty BaseURL disables refinement entirely.
type RefinerConfig struct {
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
}

// KeywordsConfig holds keyword extraction configuration
type KeywordsConfig struct {
	// UseNER enables the rust-bert NER extractor for the last-resort tier.
	UseNER     bool   `mapstructure:"use_ner"`
	NERModelID string `mapstructure:"ner_model_id"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("search.strict_min_results", 3)
	viper.SetDefault("search.retrieve_limit", 20)
	viper.SetDefault("search.tier_timeout_sec", 5)
	viper.SetDefault("search.deadline_sec", 20)
	viper.SetDefault("search.min_dense_score", 0.25)
	viper.SetDefault("search.rerank_pool_size", 4)

	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("storage.dsn", "")

	viper.SetDefault("embedding.provider", "embedeverything")
	viper.SetDefault("embedding.model", "intfloat/multilingual-e5-small")

	viper.SetDefault("reranker.provider", "embedeverything")
	viper.SetDefault("reranker.model", "BAAI/bge-reranker-base")
	viper.SetDefault("reranker.max_concurrency", 1)

	viper.SetDefault("refiner.model", "gpt-4o-mini")
	viper.SetDefault("refiner.temperature", 0.0)

	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)

	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("storage.badger_path", fmt.Sprintf("%s/.daleel/vectors", home))
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.daleel/telemetry", home))
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		if config.Refiner.APIKey == "" {
			config.Refiner.APIKey = apiKey
		}
		if config.Embedding.Provider == "openai" && config.Embedding.APIKey == "" {
			config.Embedding.APIKey = apiKey
		}
		if config.Reranker.Provider == "openai" && config.Reranker.APIKey == "" {
			config.Reranker.APIKey = apiKey
		}
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		config.Storage.DSN = dsn
		config.Storage.Driver = "postgres"
	}
	if path := os.Getenv("BADGER_PATH"); path != "" {
		config.Storage.BadgerPath = path
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			config.Server.Port = n
		}
	}

	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
