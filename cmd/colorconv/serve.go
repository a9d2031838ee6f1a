package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"color-converter/internal/api"
	"color-converter/internal/color"
	"color-converter/internal/config"
	"color-converter/internal/metrics"
	"color-converter/internal/server"
	"color-converter/internal/ui"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "config.json", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ui.PrintBanner(ui.PickTagline(time.Now()))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ui.SetLevel(cfg.Env.EffectiveLogLevel())

	if cfg.Env.IsDevelopment() {
		ui.LogStatus("info", "Environment: "+ui.Warn("DEVELOPMENT"))
	} else {
		ui.LogStatus("info", "Environment: "+ui.Success("PRODUCTION"))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return serveUntil(ctx, cfg, *configPath)
}

// serveUntil runs the metrics and API servers until ctx is cancelled and
// both have stopped.
func serveUntil(ctx context.Context, cfg *config.Config, configPath string) error {
	ui.LogSection("Configuration")
	ui.LogStatus("debug", "Config file: "+configPath)
	ui.LogStatus("debug", "Log level: "+cfg.Env.EffectiveLogLevel())
	ui.LogStatus("info", "Palette offsets: "+color.FormatOffsets(cfg.PaletteOffsets))
	ui.LogStatus("debug", fmt.Sprintf("Rate limit: %g req/s, burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst))
	if cfg.AuthEnabled() {
		ui.LogStatus("info", "API key required ("+api.KeyHeader+")")
	}

	m := metrics.NewMetricsServer(cfg.MetricsListen)
	if err := m.Start(); err != nil {
		return err
	}
	ui.LogStatus("info", "Metrics: http://"+m.Addr().String()+"/metrics")

	err := server.NewServer(cfg).Start(ctx)

	ui.LogStatus("info", "Shutting down...")
	if merr := m.Shutdown(context.Background()); merr != nil {
		err = errors.Join(err, fmt.Errorf("metrics shutdown: %w", merr))
	}
	return err
}
