package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	StripeSecretKey     string
	StripePublicKey     string
	StripeWebhookSecret string
	StripeAPIURL        string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
}

// Load reads configuration from the environment (.env is loaded if present).
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:                getEnv("PORT", "5000"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           getEnv("JWT_SECRET", "fallback-secret-for-development"),
		StripeSecretKey:     os.Getenv("STRIPE_PRIVATE_KEY"),
		StripePublicKey:     os.Getenv("STRIPE_PUBLIC_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeAPIURL:        getEnv("STRIPE_API_URL", "https://api.stripe.com"),
		SMTPHost:            getEnv("EMAIL_SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:            587,
		SMTPUser:            os.Getenv("EMAIL_AUTH_USER"),
		SMTPPass:            os.Getenv("EMAIL_AUTH_PASS"),
	}

	if os.Getenv("GIN_MODE") == "release" {
		if missing := missingRequired(cfg); len(missing) > 0 {
			log.Fatalf("❌ Missing required environment variables: %s", strings.Join(missing, ", "))
		}
	}

	return cfg
}

// missingRequired lists the variables that must be set in release mode.
func missingRequired(cfg Config) []string {
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"JWT_SECRET", os.Getenv("JWT_SECRET")},
		{"STRIPE_PRIVATE_KEY", cfg.StripeSecretKey},
		{"STRIPE_WEBHOOK_SECRET", cfg.StripeWebhookSecret},
	}
	var missing []string
	for _, v := range required {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
