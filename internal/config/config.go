// Package config loads application configuration from environment
// variables. Mains load a .env file first via godotenv; everything here
// only reads the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	AI        AIConfig
	GRIM      ToolConfig
	Statcheck ToolConfig
	// SignificanceLevel is the alpha used for significance classification
	// and gross-inconsistency detection.
	SignificanceLevel float64
	// DatabaseURL is optional; without it results are not persisted.
	DatabaseURL string
	Server      ServerConfig
}

// AIConfig holds settings for the extraction LLM.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ToolConfig holds per-tool extraction settings: how documents are windowed
// and which model extracts claims from each window.
type ToolConfig struct {
	Model        string
	Temperature  float64
	MaxWords     int
	OverlapWords int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// Defaults mirror the conventional tool setup: GRIM reads wide windows with
// heavy overlap because means and sample sizes sit far apart in text;
// statcheck windows are narrow because a test report is one sentence.
const (
	defaultSignificance      = 0.05
	defaultGRIMModel         = "gpt-4o"
	defaultGRIMMaxWords      = 1000
	defaultGRIMOverlap       = 200
	defaultGRIMTemperature   = 0.01
	defaultStatcheckModel    = "gpt-4o-mini"
	defaultStatcheckMaxWords = 500
	defaultStatcheckOverlap  = 8
)

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AI: AIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Timeout: 90 * time.Second,
		},
		GRIM: ToolConfig{
			Model:        envString("GRIM_MODEL", defaultGRIMModel),
			Temperature:  defaultGRIMTemperature,
			MaxWords:     defaultGRIMMaxWords,
			OverlapWords: defaultGRIMOverlap,
		},
		Statcheck: ToolConfig{
			Model:        envString("STATCHECK_MODEL", defaultStatcheckModel),
			Temperature:  0,
			MaxWords:     defaultStatcheckMaxWords,
			OverlapWords: defaultStatcheckOverlap,
		},
		SignificanceLevel: defaultSignificance,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Server: ServerConfig{
			Port: envString("PORT", "8080"),
		},
	}

	var err error
	if cfg.SignificanceLevel, err = envFloat("SIGNIFICANCE_LEVEL", defaultSignificance); err != nil {
		return nil, err
	}
	if cfg.GRIM.MaxWords, err = envInt("GRIM_MAX_WORDS", defaultGRIMMaxWords); err != nil {
		return nil, err
	}
	if cfg.GRIM.OverlapWords, err = envInt("GRIM_OVERLAP_WORDS", defaultGRIMOverlap); err != nil {
		return nil, err
	}
	if cfg.Statcheck.MaxWords, err = envInt("STATCHECK_MAX_WORDS", defaultStatcheckMaxWords); err != nil {
		return nil, err
	}
	if cfg.Statcheck.OverlapWords, err = envInt("STATCHECK_OVERLAP_WORDS", defaultStatcheckOverlap); err != nil {
		return nil, err
	}

	if cfg.SignificanceLevel <= 0 || cfg.SignificanceLevel >= 1 {
		return nil, fmt.Errorf("SIGNIFICANCE_LEVEL must be in (0, 1), got %g", cfg.SignificanceLevel)
	}
	for name, tool := range map[string]ToolConfig{"GRIM": cfg.GRIM, "STATCHECK": cfg.Statcheck} {
		if tool.MaxWords <= 0 {
			return nil, fmt.Errorf("%s_MAX_WORDS must be positive", name)
		}
		if tool.OverlapWords < 0 || tool.OverlapWords >= tool.MaxWords {
			return nil, fmt.Errorf("%s_OVERLAP_WORDS must be in [0, max words)", name)
		}
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
