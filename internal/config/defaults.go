package config

import "github.com/hyperjump/keiyaku/internal/risk"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 2
	}
	if cfg.Retrieval.IndexType == "" {
		cfg.Retrieval.IndexType = "memory"
	}
	if cfg.Risk.BaseURL == "" {
		cfg.Risk.BaseURL = risk.DefaultBaseURL
	}
	if cfg.Risk.Model == "" {
		cfg.Risk.Model = risk.DefaultModel
	}
	if cfg.Risk.APIKeyEnv == "" {
		cfg.Risk.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.Risk.TimeoutSeconds == 0 {
		cfg.Risk.TimeoutSeconds = 120
	}
}
