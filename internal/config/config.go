package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverCloudinary = "cloudinary"
	StorageDriverSupabase   = "supabase"
)

type Config struct {
	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	AITimeout     time.Duration

	// Image storage
	StorageDriver         string
	CloudinaryURL         string
	StorageFolder         string
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
}

func Load() (*Config, error) {
	// Local development convenience; in production the environment is real.
	_ = godotenv.Load()

	aiTimeout, err := time.ParseDuration(getEnv("AI_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT: %w", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_API_BASE_URL", "https://api.openai.com/v1"),
		AITimeout:     aiTimeout,

		StorageDriver:         getEnv("STORAGE_DRIVER", StorageDriverCloudinary),
		CloudinaryURL:         getEnv("CLOUDINARY_URL", ""),
		StorageFolder:         getEnv("STORAGE_FOLDER", "gemveil"),
		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "campaign-images"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  tokenTTL,

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.StorageDriver {
	case StorageDriverCloudinary:
		if c.CloudinaryURL == "" {
			return fmt.Errorf("CLOUDINARY_URL is required when STORAGE_DRIVER=cloudinary")
		}
	case StorageDriverSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY are required when STORAGE_DRIVER=supabase")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
