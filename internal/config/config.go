package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	DBPath       string
	CorpusDir    string
	TemplatePath string
	OutputDir    string

	// Chunking (token units, measured by the injected estimator).
	ChunkSize    int
	ChunkOverlap int
	MaxChunkSize int

	// Retrieval defaults.
	TopK int

	// Caller-level timeouts around external calls. The completion service has
	// no internal latency cap, so every call gets wrapped.
	CompletionTimeout time.Duration
	EmbedTimeout      time.Duration

	// Verification policy. The bucket weights and the verified threshold are
	// policy constants with no documented derivation, so they stay tunable.
	VerifyWeightHigh   float64
	VerifyWeightMedium float64
	VerifyWeightLow    float64
	VerifyThreshold    float64
	VerifyConcurrency  int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// A .env file in the current directory or a parent (up to the module root) is
// loaded automatically; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          os.Getenv("LLM_API_KEY"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "all-MiniLM-L6-v2"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "source_docs"),
		DBPath:             getEnv("DB_PATH", "./data/docpipe.db"),
		CorpusDir:          getEnv("CORPUS_DIR", "./data/sources"),
		TemplatePath:       os.Getenv("TEMPLATE_PATH"),
		OutputDir:          getEnv("OUTPUT_DIR", "./output"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	cfg.ChunkSize = getEnvInt("CHUNK_SIZE", 1000)
	cfg.ChunkOverlap = getEnvInt("CHUNK_OVERLAP", 200)
	cfg.MaxChunkSize = getEnvInt("MAX_CHUNK_SIZE", 1500)
	cfg.TopK = getEnvInt("TOP_K", 10)

	cfg.CompletionTimeout = getEnvDuration("COMPLETION_TIMEOUT", 120*time.Second)
	cfg.EmbedTimeout = getEnvDuration("EMBED_TIMEOUT", 30*time.Second)

	cfg.VerifyWeightHigh = getEnvFloat("VERIFY_WEIGHT_HIGH", 1.0)
	cfg.VerifyWeightMedium = getEnvFloat("VERIFY_WEIGHT_MEDIUM", 0.65)
	cfg.VerifyWeightLow = getEnvFloat("VERIFY_WEIGHT_LOW", 0.3)
	cfg.VerifyThreshold = getEnvFloat("VERIFY_THRESHOLD", 0.7)
	cfg.VerifyConcurrency = getEnvInt("VERIFY_CONCURRENCY", 4)

	// Vector size must match the embedding model's output dimension exactly;
	// ingestion and query share the same model, so there is no safe default.
	vectorSizeStr := os.Getenv("QDRANT_VECTOR_SIZE")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	// Missing completion credentials are the only fatal-at-start condition;
	// everything downstream degrades instead of aborting.
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	if cfg.ChunkSize <= 0 || cfg.MaxChunkSize < cfg.ChunkSize {
		return nil, fmt.Errorf("invalid chunk sizes: CHUNK_SIZE=%d MAX_CHUNK_SIZE=%d", cfg.ChunkSize, cfg.MaxChunkSize)
	}
	if cfg.VerifyConcurrency <= 0 {
		cfg.VerifyConcurrency = 1
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		cfg.LogLevel = slog.LevelInfo
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
