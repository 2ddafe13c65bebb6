package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Worker   WorkerConfig
	Grading  GradingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	URL             string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LLMConfig holds model provider configuration.
type LLMConfig struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaBaseURL   string
	OllamaModel     string
	DefaultProvider string // "openai", "anthropic", or "ollama"
	MaxTokens       int
	Temperature     float64
	Timeout         time.Duration
}

// WorkerConfig holds evaluation worker configuration.
type WorkerConfig struct {
	Concurrency   int
	BatchSize     int
	StreamName    string
	ConsumerGroup string
	ConsumerName  string
}

// GradingConfig holds grading defaults.
type GradingConfig struct {
	NumericTolerance float64
	CalibrationBins  int
	RubricPath       string // optional YAML rubric; empty uses the built-in set
	DatasetPath      string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", getEnvAsInt("PORT", 8080)),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "finreason_eval"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		LLM: LLMConfig{
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:     getEnv("OLLAMA_MODEL", "llama3.1:8b"),
			DefaultProvider: getEnv("LLM_DEFAULT_PROVIDER", "ollama"),
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 1024),
			Temperature:     getEnvAsFloat("LLM_TEMPERATURE", 0.0),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvAsInt("WORKER_CONCURRENCY", 4),
			BatchSize:     getEnvAsInt("WORKER_BATCH_SIZE", 10),
			StreamName:    getEnv("WORKER_STREAM_NAME", "evaluation-runs"),
			ConsumerGroup: getEnv("WORKER_CONSUMER_GROUP", "eval-workers"),
			ConsumerName:  getEnv("WORKER_CONSUMER_NAME", "worker-1"),
		},
		Grading: GradingConfig{
			NumericTolerance: getEnvAsFloat("GRADING_NUMERIC_TOLERANCE", 0.01),
			CalibrationBins:  getEnvAsInt("GRADING_CALIBRATION_BINS", 10),
			RubricPath:       getEnv("GRADING_RUBRIC_PATH", ""),
			DatasetPath:      getEnv("DATASET_PATH", "data/problems.jsonl"),
		},
	}

	if cfg.Grading.CalibrationBins <= 0 {
		return nil, fmt.Errorf("GRADING_CALIBRATION_BINS must be positive, got %d", cfg.Grading.CalibrationBins)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.Database + "?sslmode=disable"
}

// Addr returns the Redis address.
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Addr returns the server address.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
