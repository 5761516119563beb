// Package config loads leasematch settings from a YAML file, falling back to
// environment variables (optionally seeded from a .env file).
//
// Example:
//
//	cfg, err := config.LoadOrEnv("leasematch.yaml")
//	threshold := cfg.Matching.Threshold
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Debug    bool           `yaml:"debug"`
}

// MatchingConfig controls the reconciliation engine
type MatchingConfig struct {
	// Threshold is the minimum per-field similarity for two addresses to match.
	Threshold float64 `yaml:"threshold"`
	// SimilarityMethod is one of embedding, jaro_winkler, levenshtein, ngram.
	SimilarityMethod string `yaml:"similarity_method"`
	// DirectionalPolicy is strict or pass_through.
	DirectionalPolicy string `yaml:"directional_policy"`
	// BucketStrategy is first_match or best_match.
	BucketStrategy string `yaml:"bucket_strategy"`
	// EmbeddingDimensions sizes the hashed embedding vectors.
	EmbeddingDimensions int `yaml:"embedding_dimensions"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// APIKey, when set, is required in the X-API-Key header of /api requests.
	APIKey string `yaml:"api_key"`
}

// DatabaseConfig holds the extracted-document database settings
type DatabaseConfig struct {
	URL            string `yaml:"url"`
	MaxConnections int    `yaml:"max_connections"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			Threshold:           0.8,
			SimilarityMethod:    "embedding",
			DirectionalPolicy:   "strict",
			BucketStrategy:      "first_match",
			EmbeddingDimensions: 256,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			MaxConnections: 10,
		},
	}
}

// Load reads and parses a YAML config file. ${VAR} references are expanded
// from the environment before parsing; unset keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds the configuration from environment variables only
func FromEnv() *Config {
	def := Default()
	return &Config{
		Matching: MatchingConfig{
			Threshold:           GetEnvFloat("COMPARE_THRESHOLD", def.Matching.Threshold),
			SimilarityMethod:    GetEnv("SIMILARITY_METHOD", def.Matching.SimilarityMethod),
			DirectionalPolicy:   GetEnv("DIRECTIONAL_POLICY", def.Matching.DirectionalPolicy),
			BucketStrategy:      GetEnv("BUCKET_STRATEGY", def.Matching.BucketStrategy),
			EmbeddingDimensions: GetEnvInt("EMBEDDING_DIMENSIONS", def.Matching.EmbeddingDimensions),
		},
		Server: ServerConfig{
			Host:   GetEnv("WEB_HOST", def.Server.Host),
			Port:   GetEnvInt("WEB_PORT", def.Server.Port),
			APIKey: GetEnv("API_KEY", ""),
		},
		Database: DatabaseConfig{
			URL:            GetEnv("DATABASE_URL", ""),
			MaxConnections: GetEnvInt("DB_MAX_CONNECTIONS", def.Database.MaxConnections),
		},
		Debug: GetEnvBool("DEBUG", false),
	}
}

// LoadOrEnv loads the YAML file when it exists and otherwise falls back to
// the environment (after reading any .env file).
func LoadOrEnv(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("matching.threshold must be within (0,1], got %.2f", c.Matching.Threshold)
	}
	switch c.Matching.SimilarityMethod {
	case "embedding", "jaro_winkler", "levenshtein", "ngram":
	default:
		return fmt.Errorf("unknown matching.similarity_method %q", c.Matching.SimilarityMethod)
	}
	switch c.Matching.DirectionalPolicy {
	case "strict", "pass_through":
	default:
		return fmt.Errorf("unknown matching.directional_policy %q", c.Matching.DirectionalPolicy)
	}
	switch c.Matching.BucketStrategy {
	case "first_match", "best_match":
	default:
		return fmt.Errorf("unknown matching.bucket_strategy %q", c.Matching.BucketStrategy)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Matching.EmbeddingDimensions <= 0 {
		return fmt.Errorf("matching.embedding_dimensions must be positive")
	}
	return nil
}
