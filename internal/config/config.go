// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the server configuration, loaded from the environment.
// JWT and password settings are loaded separately by NewJWTConfig and
// NewPasswordConfig.
type Config struct {
	Port          int    // HTTP listen port
	DatabaseURL   string // PostgreSQL connection URL
	GeminiAPIKey  string // Gemini API key for the content generators
	UploadDir     string // Local directory backing the blob store
	UploadBaseURL string // Public URL prefix under which uploads are served
}

// Load reads the server configuration from environment variables. DATABASE_URL
// and GEMINI_API_KEY are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          8080,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		UploadDir:     "uploads",
		UploadBaseURL: "/uploads",
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("config error: PORT must be an integer, got %q", port)
		}
		cfg.Port = p
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}
	if base := os.Getenv("UPLOAD_BASE_URL"); base != "" {
		cfg.UploadBaseURL = base
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("config error: upload directory must not be empty")
	}
	return nil
}
