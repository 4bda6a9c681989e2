package config

import (
	"fmt"

	"github.com/levelup-life/levelup-service/internal/envconfig"
)

// Config holds the runtime configuration, loaded from the environment.
type Config struct {
	Port      string `validate:"required"`
	Datastore string `validate:"required,oneof=memory sqlite firestore"`

	// SQLitePath is the database file used when Datastore is sqlite.
	SQLitePath string

	// GCPProjectID is required when Datastore is firestore.
	GCPProjectID string `validate:"required_if=Datastore firestore"`

	// GeminiAPIKey is optional. When empty the service falls back to
	// template-based challenge generation.
	GeminiAPIKey          string
	GeminiModel           string
	GeminiMaxOutputTokens int
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:                  envconfig.Get("PORT", "8080"),
		Datastore:             envconfig.Get("DATASTORE", "sqlite"),
		SQLitePath:            envconfig.Get("SQLITE_PATH", "levelup.db"),
		GCPProjectID:          envconfig.Get("GCP_PROJECT_ID", ""),
		GeminiAPIKey:          envconfig.Get("GEMINI_API_KEY", ""),
		GeminiModel:           envconfig.Get("GEMINI_MODEL", ""),
		GeminiMaxOutputTokens: envconfig.GetInt("GEMINI_MAX_OUTPUT_TOKENS", 0),
	}

	if err := envconfig.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
