package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSecretKey = "dev-key-change-in-production"

type Config struct {
	Port      int
	AppEnv    string
	LogLevel  string
	SecretKey string

	DBDriver    string
	DatabaseURL string

	GeminiAPIKey       string
	GeminiParserAPIKey string
	GeminiModel        string
	LLMTimeout         time.Duration
	LLMMaxRetries      int
	LLMRetryDelay      time.Duration
	LLMRequestsPerSec  float64

	EntraClientID     string
	EntraClientSecret string
	EntraTenant       string
	EntraRedirectURI  string
	GraphMeURL        string

	NATSURL          string
	NATSConnTimeout  time.Duration
	OTELCollectorURL string

	CORSAllowedOrigins []string

	// EnvFileMissing is set when no .env file was found; startup logs it.
	EnvFileMissing bool
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	envFileMissing := false
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
		envFileMissing = true
	}

	geminiKey := getEnvString("GEMINI_API_KEY", "")

	cfg := &Config{
		Port:      getEnvInt("PORT", 8000),
		AppEnv:    getEnvString("APP_ENV", "development"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		SecretKey: getEnvString("SECRET_KEY", defaultSecretKey),

		DBDriver:    getEnvString("DB_DRIVER", "sqlite"),
		DatabaseURL: getEnvString("DATABASE_URL", "data/jobs.db"),

		GeminiAPIKey:       geminiKey,
		GeminiParserAPIKey: getEnvString("GEMINI_JOB_PARSER_API_KEY", geminiKey),
		GeminiModel:        getEnvString("GEMINI_MODEL", ""),
		LLMTimeout:         getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		LLMMaxRetries:      getEnvInt("LLM_MAX_RETRIES", 2),
		LLMRetryDelay:      getEnvDuration("LLM_RETRY_DELAY", 500*time.Millisecond),
		LLMRequestsPerSec:  getEnvFloat("LLM_REQUESTS_PER_SECOND", 2),

		EntraClientID:     getEnvString("ENTRA_CLIENT_ID", ""),
		EntraClientSecret: getEnvString("ENTRA_CLIENT_SECRET", ""),
		EntraTenant:       getEnvString("ENTRA_TENANT", "common"),
		EntraRedirectURI:  getEnvString("ENTRA_REDIRECT_URI", "http://localhost:8000/auth/callback"),
		GraphMeURL:        getEnvString("GRAPH_ME_URL", "https://graph.microsoft.com/v1.0/me"),

		NATSURL:          getEnvString("NATS_URL", ""),
		NATSConnTimeout:  getEnvDuration("NATS_CONN_TIMEOUT", 5*time.Second),
		OTELCollectorURL: getEnvString("OTEL_COLLECTOR_URL", ""),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),

		EnvFileMissing: envFileMissing,
	}

	if cfg.IsProduction() && (cfg.SecretKey == "" || cfg.SecretKey == defaultSecretKey) {
		return nil, errors.New("SECRET_KEY must be set to a non-default value in production")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
