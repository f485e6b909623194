package config

import (
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QDRANT_VECTOR_SIZE", "768")
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.QdrantVectorSize != 768 {
		t.Errorf("vector size = %d", cfg.QdrantVectorSize)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 || cfg.MaxChunkSize != 1500 {
		t.Errorf("chunk config = %d/%d/%d", cfg.ChunkSize, cfg.ChunkOverlap, cfg.MaxChunkSize)
	}
	if cfg.TopK != 10 {
		t.Errorf("top k = %d", cfg.TopK)
	}
	if cfg.VerifyWeightHigh != 1.0 || cfg.VerifyWeightMedium != 0.65 || cfg.VerifyWeightLow != 0.3 {
		t.Errorf("weights = %v/%v/%v", cfg.VerifyWeightHigh, cfg.VerifyWeightMedium, cfg.VerifyWeightLow)
	}
	if cfg.VerifyThreshold != 0.7 || cfg.VerifyConcurrency != 4 {
		t.Errorf("verify policy = %v/%d", cfg.VerifyThreshold, cfg.VerifyConcurrency)
	}
	if cfg.CompletionTimeout != 120*time.Second || cfg.EmbedTimeout != 30*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.CompletionTimeout, cfg.EmbedTimeout)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("port = %q", cfg.APIPort)
	}
}

func TestLoadRequiresVectorSize(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("QDRANT_VECTOR_SIZE", "")

	if _, err := Load(); err == nil {
		t.Error("missing QDRANT_VECTOR_SIZE accepted")
	}

	t.Setenv("QDRANT_VECTOR_SIZE", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("non-numeric QDRANT_VECTOR_SIZE accepted")
	}

	t.Setenv("QDRANT_VECTOR_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Error("zero QDRANT_VECTOR_SIZE accepted")
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("QDRANT_VECTOR_SIZE", "768")
	t.Setenv("LLM_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("missing LLM_API_KEY accepted")
	}
}

func TestLoadRejectsInvalidChunkSizes(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CHUNK_SIZE", "2000")
	t.Setenv("MAX_CHUNK_SIZE", "1500")

	if _, err := Load(); err == nil {
		t.Error("MAX_CHUNK_SIZE below CHUNK_SIZE accepted")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VERIFY_WEIGHT_MEDIUM", "0.5")
	t.Setenv("VERIFY_THRESHOLD", "0.8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COMPLETION_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VerifyWeightMedium != 0.5 || cfg.VerifyThreshold != 0.8 {
		t.Errorf("verify overrides = %v/%v", cfg.VerifyWeightMedium, cfg.VerifyThreshold)
	}
	if cfg.LogLevel.String() != "DEBUG" {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
	if cfg.CompletionTimeout != 30*time.Second {
		t.Errorf("completion timeout = %v", cfg.CompletionTimeout)
	}
}
