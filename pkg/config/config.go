package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Dodo     DodoConfig
	OpenAI   OpenAIConfig
	PostHog  PostHogConfig
	Resend   ResendConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

// DodoConfig carries the Dodo Payments credentials plus the product ids the
// checkout endpoint maps (plan, billing cycle) pairs onto.
type DodoConfig struct {
	APIKey         string
	WebhookSecret  string
	Environment    string // test_mode | live_mode
	StarterMonthly string
	StarterYearly  string
	CreatorMonthly string
	CreatorYearly  string
	Business       string
}

type OpenAIConfig struct {
	APIKey string
}

type PostHogConfig struct {
	APIKey string
	Host   string
}

type ResendConfig struct {
	APIKey string
}

func Load() *Config {
	godotenv.Load() // .env dosyasını yükle

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Dodo: DodoConfig{
			APIKey:         getEnv("DODO_PAYMENTS_API_KEY", ""),
			WebhookSecret:  getEnv("DODO_WEBHOOK_SECRET", ""),
			Environment:    getEnv("DODO_ENVIRONMENT", "test_mode"),
			StarterMonthly: getEnv("DODO_PRODUCT_STARTER_MONTHLY", ""),
			StarterYearly:  getEnv("DODO_PRODUCT_STARTER_YEARLY", ""),
			CreatorMonthly: getEnv("DODO_PRODUCT_CREATOR_MONTHLY", ""),
			CreatorYearly:  getEnv("DODO_PRODUCT_CREATOR_YEARLY", ""),
			Business:       getEnv("DODO_PRODUCT_BUSINESS", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
		},
		PostHog: PostHogConfig{
			APIKey: getEnv("POSTHOG_API_KEY", ""),
			Host:   getEnv("POSTHOG_HOST", "https://us.i.posthog.com"),
		},
		Resend: ResendConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
