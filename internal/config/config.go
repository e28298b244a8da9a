package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Record store backend: "file" or "github"
	RecordsBackend string
	DataDir        string

	// GitHub-backed record store
	GitHubToken   string
	GitHubOwner   string
	GitHubRepo    string
	GitHubBranch  string
	GitHubBaseDir string
	GitHubBaseURL string

	// Static doctor catalog
	DoctorsFile string

	// Outbound email: "sendgrid", "ses" or "stub"
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	SESFromName       string
	AWSRegion         string

	// Sessions and admin access
	SessionJWTSecret string
	SessionTTL       time.Duration
	AdminEmail       string
	AdminPassword    string
	BcryptCost       int

	// Per-IP rate limiting
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),

		RecordsBackend: strings.ToLower(strings.TrimSpace(getEnv("RECORDS_BACKEND", "file"))),
		DataDir:        getEnv("DATA_DIR", "data"),

		GitHubToken:   getEnv("GITHUB_TOKEN", ""),
		GitHubOwner:   getEnv("GITHUB_OWNER", ""),
		GitHubRepo:    getEnv("GITHUB_REPO", ""),
		GitHubBranch:  getEnv("GITHUB_BRANCH", ""),
		GitHubBaseDir: getEnv("GITHUB_BASE_DIR", "data"),
		GitHubBaseURL: getEnv("GITHUB_BASE_URL", ""),

		DoctorsFile: getEnv("DOCTORS_FILE", "testdata/doctors.json"),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "stub"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Doctors Friend"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Doctors Friend"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),

		SessionJWTSecret: getEnv("SESSION_JWT_SECRET", ""),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		BcryptCost:       getEnvAsInt("BCRYPT_COST", 0),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated environment variable as a slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
