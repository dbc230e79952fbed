package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Recommend.TopN != 20 {
		t.Fatalf("expected default top_n 20, got %d", cfg.Recommend.TopN)
	}
	if cfg.Recommend.MinScore != 0.01 {
		t.Fatalf("expected default min_score 0.01, got %v", cfg.Recommend.MinScore)
	}
	if cfg.Vocabulary.MinUsage != 10 {
		t.Fatalf("expected default min_usage 10, got %d", cfg.Vocabulary.MinUsage)
	}
	if cfg.Vocabulary.MaxPerCategory != 20 {
		t.Fatalf("expected default max_per_category 20, got %d", cfg.Vocabulary.MaxPerCategory)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("expected default cache backend memory, got %q", cfg.Cache.Backend)
	}
	if cfg.Server.RequestTimeout != 15*time.Second {
		t.Fatalf("expected default request timeout 15s, got %v", cfg.Server.RequestTimeout)
	}
	if cfg.Model.Vectorizer != "tfidf_vectorizer_final.json" {
		t.Fatalf("unexpected default vectorizer file %q", cfg.Model.Vectorizer)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("APP_RECOMMEND_TOP_N", "5")
	t.Setenv("APP_RECOMMEND_MIN_SCORE", "0.2")
	t.Setenv("VOCAB_MIN_USAGE", "1")
	t.Setenv("VOCAB_MAX_PER_CATEGORY", "7")
	t.Setenv("MODEL_DIR", "/srv/models")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Recommend.TopN != 5 {
		t.Fatalf("expected top_n 5, got %d", cfg.Recommend.TopN)
	}
	if cfg.Recommend.MinScore != 0.2 {
		t.Fatalf("expected min_score 0.2, got %v", cfg.Recommend.MinScore)
	}
	if cfg.Vocabulary.MinUsage != 1 {
		t.Fatalf("expected min_usage 1, got %d", cfg.Vocabulary.MinUsage)
	}
	if cfg.Vocabulary.MaxPerCategory != 7 {
		t.Fatalf("expected max_per_category 7, got %d", cfg.Vocabulary.MaxPerCategory)
	}
	if cfg.Model.Dir != "/srv/models" {
		t.Fatalf("expected model dir override, got %q", cfg.Model.Dir)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoadConfigRejectsUnknownResolver(t *testing.T) {
	t.Setenv("APP_RESOLVER_BACKEND", "grpc")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown resolver backend")
	}
}

func TestLoadConfigHTTPResolverRequiresBaseURL(t *testing.T) {
	t.Setenv("APP_RESOLVER_BACKEND", "http")
	t.Setenv("APP_RESOLVER_BASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for http resolver without base url")
	}
}
