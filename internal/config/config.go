package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"color-converter/internal/color"
)

// Config holds all service configuration values.
type Config struct {
	Listen         string  `json:"listen"`
	MetricsListen  string  `json:"metrics_listen"`
	PaletteOffsets []int   `json:"palette_offsets"`
	PlaceholderHex string  `json:"placeholder_hex"`
	InvalidText    string  `json:"invalid_text"`
	AllowedOrigin  string  `json:"allowed_origin"`
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`
	APIKeyHash     string  `json:"api_key_hash"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() *Config {
	return &Config{
		Listen:         ":8080",
		MetricsListen:  ":9090",
		PaletteOffsets: append([]int(nil), color.DefaultOffsets...),
		PlaceholderHex: "#D1D5DB",
		InvalidText:    "Invalid HEX code...",
		AllowedOrigin:  "*",
		RateLimitRPS:   10,
		RateLimitBurst: 20,
	}
}

// Load reads configuration from the JSON file at path (if it exists) over
// the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Env = LoadEnv()

	// Normalize the placeholder so renderers can use it verbatim
	if hex, err := color.Normalize(cfg.PlaceholderHex); err == nil {
		cfg.PlaceholderHex = hex
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Listen = getEnvOrDefault("LISTEN", c.Listen)
	c.MetricsListen = getEnvOrDefault("METRICS_LISTEN", c.MetricsListen)
	c.PlaceholderHex = getEnvOrDefault("PLACEHOLDER_HEX", c.PlaceholderHex)
	c.InvalidText = getEnvOrDefault("INVALID_TEXT", c.InvalidText)
	c.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", c.AllowedOrigin)
	c.APIKeyHash = getEnvOrDefault("API_KEY_HASH", c.APIKeyHash)
	c.RateLimitRPS = parseFloatOrDefault(os.Getenv("RATE_LIMIT_RPS"), c.RateLimitRPS)
	c.RateLimitBurst = parseIntOrDefault(os.Getenv("RATE_LIMIT_BURST"), c.RateLimitBurst)

	if v := os.Getenv("PALETTE_OFFSETS"); v != "" {
		offsets, err := color.ParseOffsets(v)
		if err != nil {
			return fmt.Errorf("PALETTE_OFFSETS: %w", err)
		}
		c.PaletteOffsets = offsets
	}
	return nil
}

// AuthEnabled reports whether API requests must carry a key.
func (c *Config) AuthEnabled() bool {
	return c.APIKeyHash != ""
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	}
	if c.MetricsListen == "" {
		errs = append(errs, "metrics_listen address is required")
	}
	if c.MetricsListen != "" && c.MetricsListen == c.Listen {
		errs = append(errs, "metrics_listen must differ from listen")
	}

	if _, err := color.Decode(c.PlaceholderHex); err != nil {
		errs = append(errs, fmt.Sprintf("placeholder_hex is not a hex color: %q", c.PlaceholderHex))
	}
	if err := color.ValidateOffsets(c.PaletteOffsets); err != nil {
		errs = append(errs, "palette_offsets: "+err.Error())
	}
	if strings.TrimSpace(c.InvalidText) == "" {
		errs = append(errs, "invalid_text must not be empty")
	}

	if c.RateLimitRPS <= 0 {
		errs = append(errs, "rate_limit_rps must be positive")
	}
	if c.RateLimitBurst <= 0 {
		errs = append(errs, "rate_limit_burst must be positive")
	}
	if c.APIKeyHash != "" && !strings.HasPrefix(c.APIKeyHash, "$2") {
		errs = append(errs, "api_key_hash must be a bcrypt hash (see `colorconv hash-key`)")
	}

	if c.Env != nil {
		switch strings.ToLower(c.Env.LogLevel) {
		case "", "debug", "info", "warn", "warning", "error":
		default:
			errs = append(errs, fmt.Sprintf("LOG_LEVEL must be debug, info, warn or error: %q", c.Env.LogLevel))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}
