package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "DEBUG", "LOG_REQUESTS", "LISTEN", "METRICS_LISTEN",
		"PALETTE_OFFSETS", "PLACEHOLDER_HEX", "INVALID_TEXT", "ALLOWED_ORIGIN",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "API_KEY_HASH",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, ":9090", cfg.MetricsListen)
	assert.Equal(t, []int{-40, -20, 0, 20, 40}, cfg.PaletteOffsets)
	assert.Equal(t, "#D1D5DB", cfg.PlaceholderHex)
	assert.Equal(t, "Invalid HEX code...", cfg.InvalidText)
	assert.False(t, cfg.AuthEnabled())
	assert.True(t, cfg.Env.IsDevelopment())
	assert.Equal(t, "debug", cfg.Env.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"listen": ":7000",
		"palette_offsets": [-10, 0, 10],
		"placeholder_hex": "ccc"
	}`), 0o644))

	t.Setenv("LISTEN", ":7001")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("APP_ENV", "PRODUCTION")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Listen)
	assert.Equal(t, []int{-10, 0, 10}, cfg.PaletteOffsets)
	assert.Equal(t, "#CCCCCC", cfg.PlaceholderHex)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.Env.IsProduction())
	assert.False(t, cfg.Env.LogRequests)
}

func TestLoadOffsetsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PALETTE_OFFSETS", "-30,0,30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []int{-30, 0, 30}, cfg.PaletteOffsets)

	t.Setenv("PALETTE_OFFSETS", "-30,x")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadBadJSON(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"listen":`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Listen = ""
	cfg.PlaceholderHex = "#GGG"
	cfg.PaletteOffsets = nil
	cfg.RateLimitRPS = 0
	cfg.APIKeyHash = "plaintext"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"listen address is required",
		"placeholder_hex",
		"palette offset",
		"rate_limit_rps",
		"api_key_hash",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateOffsetBounds(t *testing.T) {
	cfg := Default()
	cfg.PaletteOffsets = make([]int, 33)
	assert.ErrorContains(t, cfg.Validate(), "palette_offsets")

	cfg.PaletteOffsets = []int{0, 500}
	assert.ErrorContains(t, cfg.Validate(), "outside")
}

func TestValidateSameListen(t *testing.T) {
	cfg := Default()
	cfg.MetricsListen = cfg.Listen
	assert.ErrorContains(t, cfg.Validate(), "must differ")
}

func TestLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.False(t, cfg.Env.Debug)
	assert.Equal(t, "warn", cfg.Env.EffectiveLogLevel())
	assert.NoError(t, cfg.Validate())

	t.Setenv("DEBUG", "true")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Env.EffectiveLogLevel())

	cfg.Env.LogLevel = "verbose"
	assert.ErrorContains(t, cfg.Validate(), "LOG_LEVEL")
}
