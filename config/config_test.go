package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Config{
		DatabaseURL:         "postgres://localhost/store",
		StripeSecretKey:     "sk_test_123",
		StripeWebhookSecret: "whsec_123",
	}
	assert.Empty(t, missingRequired(cfg))

	cfg.StripeWebhookSecret = ""
	assert.Equal(t, []string{"STRIPE_WEBHOOK_SECRET"}, missingRequired(cfg))

	t.Setenv("JWT_SECRET", "")
	cfg.DatabaseURL = ""
	assert.Equal(t, []string{"DATABASE_URL", "JWT_SECRET", "STRIPE_WEBHOOK_SECRET"}, missingRequired(cfg))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STRIPE_API_URL", "")
	t.Setenv("GIN_MODE", "")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "https://api.stripe.com", cfg.StripeAPIURL)
}
