package config

import (
	"fmt"
	"os"
	"strings"

	"healbuddy-web/pkg/validator"
)

const (
	defaultEmergencyNumber = "108"
	defaultDisclaimerText  = "For awareness only. Always consult doctors."
)

type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// CORS
	CORSOrigins []string

	// Redis
	RedisURL        string
	CacheTTLSeconds int

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableCache   bool
	EnableMetrics bool

	// Site
	SiteName        string
	SiteTagline     string
	EmergencyNumber string
	DisclaimerText  string
}

func New() *Config {
	c := &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Redis
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 300),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Features
		EnableCache:   getEnvAsBool("ENABLE_CACHE", false),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site
		SiteName:        plainText(getEnv("SITE_NAME", "HealBuddy"), "HealBuddy"),
		SiteTagline:     plainText(getEnv("SITE_TAGLINE", "Health Assistant"), "Health Assistant"),
		EmergencyNumber: plainText(getEnv("EMERGENCY_NUMBER", defaultEmergencyNumber), defaultEmergencyNumber),
		DisclaimerText:  plainText(getEnv("DISCLAIMER_TEXT", defaultDisclaimerText), defaultDisclaimerText),
	}

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// plainText strips markup from operator supplied copy shown in the shell.
func plainText(value, fallback string) string {
	if cleaned := validator.SanitizeString(value); cleaned != "" {
		return cleaned
	}
	return fallback
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
