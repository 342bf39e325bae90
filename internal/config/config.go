package config

import (
	"fmt"
	"os"
	"strings"
)

// Defaults applied when the optional variables are unset.
const (
	DefaultPort              = "3002"
	DefaultUploadDir         = "uploads"
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "openai/gpt-4o-mini"
)

// Config holds process-wide settings loaded from the environment once at startup.
type Config struct {
	Port              string // Listen port.
	DatabaseURL       string // GORM DSN, postgres or sqlite.
	JWTSecret         string // HMAC signing secret for admin tokens.
	UploadDir         string // Directory for uploaded product images.
	ResendAPIKey      string // Resend API key for the contact relay.
	EmailUser         string // Verified sender and recipient address.
	OpenRouterAPIKey  string // OpenRouter API key for the chat relay.
	OpenRouterBaseURL string // OpenRouter API base URL.
	OpenRouterModel   string // Model identifier for chat completions.
	LogFile           string // Optional rotating log file path.
}

// Load reads configuration from the environment. Every missing required
// variable is collected so the returned error names all of them at once.
func Load() (Config, error) {
	cfg := Config{
		Port:              envOrDefault("PORT", DefaultPort),
		UploadDir:         envOrDefault("UPLOAD_DIR", DefaultUploadDir),
		OpenRouterBaseURL: envOrDefault("OPENROUTER_BASE_URL", DefaultOpenRouterBaseURL),
		OpenRouterModel:   envOrDefault("OPENROUTER_MODEL", DefaultOpenRouterModel),
		LogFile:           strings.TrimSpace(os.Getenv("LOG_FILE")),
	}

	var missing []string
	cfg.DatabaseURL = requireEnv("DATABASE_URL", &missing)
	cfg.JWTSecret = requireEnv("JWT_SECRET", &missing)
	cfg.ResendAPIKey = requireEnv("RESEND_API_KEY", &missing)
	cfg.EmailUser = requireEnv("EMAIL_USER", &missing)
	cfg.OpenRouterAPIKey = requireEnv("OPENROUTER_API_KEY", &missing)
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// requireEnv reads a required variable, recording its name when unset or blank.
func requireEnv(name string, missing *[]string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		*missing = append(*missing, name)
	}
	return value
}

// envOrDefault reads an optional variable, falling back when unset or blank.
func envOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}
