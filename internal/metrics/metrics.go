package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"color-converter/internal/ui"
)

var (
	// ConversionsTotal counts successful conversions by input source
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colorconv_conversions_total",
		Help: "Successful conversions by input source",
	}, []string{"source"})

	// InvalidTotal counts inputs rejected as invalid hex by input source
	InvalidTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colorconv_invalid_total",
		Help: "Inputs rejected as invalid by input source",
	}, []string{"source"})

	// PaletteShadesTotal counts generated palette shades
	PaletteShadesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colorconv_palette_shades_total",
		Help: "Total palette shades generated",
	})

	// RateLimitedTotal counts requests rejected by the rate limiter
	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colorconv_rate_limited_total",
		Help: "Total requests rejected by rate limiting",
	})

	// UnauthorizedTotal counts requests rejected for a missing or wrong API key
	UnauthorizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colorconv_unauthorized_total",
		Help: "Total requests rejected for a missing or wrong API key",
	})

	// RequestDuration tracks API request latency by route
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "colorconv_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
	}, []string{"route", "status"})
)

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
	ln     net.Listener
	done   chan struct{}
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		done: make(chan struct{}),
	}
}

// Start binds the listen address and serves metrics in the background.
// Bind errors are returned; serve errors are logged.
func (m *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", m.server.Addr, err)
	}
	m.ln = ln

	go func() {
		defer close(m.done)
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (m *MetricsServer) Addr() net.Addr {
	if m.ln == nil {
		return nil
	}
	return m.ln.Addr()
}

// Shutdown gracefully stops the metrics server and waits for the serve
// loop to exit.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := m.server.Shutdown(shutdownCtx)
	if m.ln == nil {
		return err
	}
	select {
	case <-m.done:
	case <-shutdownCtx.Done():
		if err == nil {
			err = shutdownCtx.Err()
		}
	}
	return err
}
