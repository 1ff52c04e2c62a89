package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server
	Host        string
	Port        string
	Environment string
	GinMode     string

	// Database
	DatabaseURL string

	// Embedding Service (OpenAI compatible)
	EmbeddingAPIKey     string
	EmbeddingBaseURL    string
	EmbeddingModel      string
	EmbeddingDimensions int

	// Answer Generation (OpenAI compatible chat completions)
	GenerationAPIKey  string
	GenerationBaseURL string
	GenerationModel   string

	// Retrieval
	TopK         int
	ChunkSize    int
	ChunkOverlap int

	// File Storage
	StoragePath   string
	MaxUploadSize int64
}

func Load() *Config {
	return &Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "8088"),
		Environment: getEnv("ENVIRONMENT", "development"),
		GinMode:     getEnv("GIN_MODE", "debug"),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/askmypdf?sslmode=disable"),

		EmbeddingAPIKey:     getEnv("OPENAI_API_KEY", ""),
		EmbeddingBaseURL:    getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 1536),

		GenerationAPIKey:  getEnv("GENERATION_API_KEY", os.Getenv("OPENAI_API_KEY")),
		GenerationBaseURL: getEnv("GENERATION_BASE_URL", "https://api.openai.com/v1"),
		GenerationModel:   getEnv("GENERATION_MODEL", "gpt-4o-mini"),

		TopK:         getEnvInt("RETRIEVAL_TOP_K", 4),
		ChunkSize:    getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 200),

		StoragePath:   getEnv("STORAGE_PATH", "./storage"),
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 50*1024*1024), // 50MB
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	return int(getEnvInt64(key, int64(defaultValue)))
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
