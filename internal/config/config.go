package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Google Sign-In
	GoogleClientID string

	// Object storage (S3-compatible)
	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	// AI providers (summarization)
	AIAPIKey         string
	AIAPIURL         string
	AIModel          string
	AIFallbackAPIKey string
	AIFallbackAPIURL string
	AIFallbackModel  string
	AITimeout        time.Duration

	// Enrichment (related content lookup)
	SearchAPIKey   string
	SearchEngineID string
	SearchAPIURL   string
	VideoAPIKey    string
	VideoAPIURL    string
	EnrichTimeout  time.Duration

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Admin
	AdminEmails  string
	AdminUserIDs string
	AdminToken   string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "notehive_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", "notehive-uploads"),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		AIAPIKey:         getEnv("AI_API_KEY", ""),
		AIAPIURL:         getEnv("AI_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		AIModel:          getEnv("AI_MODEL", "deepseek-chat"),
		AIFallbackAPIKey: getEnv("AI_FALLBACK_API_KEY", ""),
		AIFallbackAPIURL: getEnv("AI_FALLBACK_API_URL", "https://api.openai.com/v1/chat/completions"),
		AIFallbackModel:  getEnv("AI_FALLBACK_MODEL", "gpt-4o-mini"),
		AITimeout:        parseDuration(getEnv("AI_TIMEOUT", "60s")),

		SearchAPIKey:   getEnv("SEARCH_API_KEY", ""),
		SearchEngineID: getEnv("SEARCH_ENGINE_ID", ""),
		SearchAPIURL:   getEnv("SEARCH_API_URL", "https://www.googleapis.com/customsearch/v1"),
		VideoAPIKey:    getEnv("VIDEO_API_KEY", ""),
		VideoAPIURL:    getEnv("VIDEO_API_URL", "https://www.googleapis.com/youtube/v3/search"),
		EnrichTimeout:  parseDuration(getEnv("ENRICH_TIMEOUT", "10s")),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@notehive.app"),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),
		AdminToken:   getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
