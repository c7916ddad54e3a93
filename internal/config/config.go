package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	defaultModel                 = "gemini-3-flash-preview"
	defaultTemperature           = 0.8
	defaultRequestTimeoutSeconds = 60
	defaultSessionMaxIdleMinutes = 30
)

// Config holds the application configuration
// Note: the service is stateless apart from in-memory per-visitor request state
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM API Keys
	GeminiAPIKey string // Google Gemini API key (GEMINI_API_KEY, falls back to API_KEY)
	OpenAIAPIKey string // OpenAI API key, only needed for gpt-* models

	// Recommendation request
	Model          string
	Temperature    float32
	RequestTimeout time.Duration // Zero disables the per-request timeout

	// Sessions
	SessionSecret  string
	SessionMaxIdle time.Duration

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		Model:             getEnv("RECOMMENDATION_MODEL", defaultModel),
		Temperature:       float32(getEnvFloat("RECOMMENDATION_TEMPERATURE", defaultTemperature)),
		RequestTimeout:    time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeoutSeconds)) * time.Second,
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionMaxIdle:    time.Duration(getEnvInt("SESSION_MAX_IDLE_MINUTES", defaultSessionMaxIdleMinutes)) * time.Minute,
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
