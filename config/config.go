package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	ContentDir  string
	// SMTP configuration for contact-form delivery
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Geolocation prefill
	GeoIPBaseURL string
	GeoIPTimeout time.Duration
	// Redis configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate limiting
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	// Admin auth
	AdminJWTSecret string
	// Form session lifecycle
	FormSessionTTLMinutes int
	// Cover image uploads
	UploadDir string
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignored elsewhere.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:4321"), "/"),
		ContentDir:  getEnv("CONTENT_DIR", "content"),
		// SMTP configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@localhost"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Geolocation prefill
		GeoIPBaseURL: strings.TrimRight(getEnv("GEOIP_BASE_URL", "https://ipapi.co"), "/"),
		GeoIPTimeout: time.Duration(getEnvInt("GEOIP_TIMEOUT_SECONDS", 5)) * time.Second,
		// Redis configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting (the contact form is the only unauthenticated write surface)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		// Admin auth
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		// Form sessions
		FormSessionTTLMinutes: getEnvInt("FORM_SESSION_TTL_MINUTES", 30),
		// Cover image uploads
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Articles will be served from the content directory only.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
