package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration loaded from environment
// variables.
type Config struct {
	Port                int
	DatabaseURL         string
	PublicURL           string // externally reachable base URL for redirects
	StripeAPIKey        string
	StripeWebhookSecret string
	CORSOrigins         []string
	JWTSecret           string
	AdminEmail          string
	AdminPassword       string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port, _ := strconv.Atoi(getEnv("PORT", "4000"))

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	stripeKey := getEnv("STRIPE_API_KEY", "")
	if stripeKey == "" {
		return nil, fmt.Errorf("STRIPE_API_KEY is required")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	publicURL := strings.TrimRight(getEnv("PUBLIC_URL", fmt.Sprintf("http://localhost:%d", port)), "/")

	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:                port,
		DatabaseURL:         dbURL,
		PublicURL:           publicURL,
		StripeAPIKey:        stripeKey,
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		CORSOrigins:         origins,
		JWTSecret:           jwtSecret,
		AdminEmail:          getEnv("ADMIN_EMAIL", "admin@webxmedia.com"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", "admin123"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
