package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env        string
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Corpus source: "postgres" or "file" (NDJSON path in CorpusFile).
	CorpusSource string
	CorpusFile   string

	// Retrieval thresholds.
	TopArticles     int
	HighBand        float64
	MediumBand      float64
	LowBand         float64
	EscalationFloor float64

	// Decision handling.
	DecisionCacheSize int
	AuditQueueSize    int

	// HTTP edge.
	RateLimitRPS   float64
	RateLimitBurst int

	// Observability.
	OTelEnabled bool
}

func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		Port:       getEnv("PORT", "9020"),
		DBHost:     getEnv("DB_HOST", "router-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "router_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "router_password"),
		DBName:     getEnv("DB_NAME", "router_db"),

		CorpusSource: getEnv("CORPUS_SOURCE", "postgres"),
		CorpusFile:   getEnv("CORPUS_FILE", ""),

		TopArticles:     getEnvInt("RETRIEVAL_TOP_ARTICLES", 3),
		HighBand:        getEnvFloat("RETRIEVAL_HIGH_BAND", 0.7),
		MediumBand:      getEnvFloat("RETRIEVAL_MEDIUM_BAND", 0.5),
		LowBand:         getEnvFloat("RETRIEVAL_LOW_BAND", 0.3),
		EscalationFloor: getEnvFloat("RETRIEVAL_ESCALATION_FLOOR", 0.2),

		DecisionCacheSize: getEnvInt("DECISION_CACHE_SIZE", 1024),
		AuditQueueSize:    getEnvInt("AUDIT_QUEUE_SIZE", 256),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),

		OTelEnabled: getEnvBool("OTEL_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
