package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"color-converter/internal/api"
	"color-converter/internal/config"
	"color-converter/internal/metrics"
	"color-converter/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Server serves the conversion API over HTTP.
type Server struct {
	Config *config.Config

	mu sync.Mutex
	ln net.Listener
}

// NewServer creates a new API server with the given configuration.
func NewServer(cfg *config.Config) *Server {
	return &Server{Config: cfg}
}

// Addr returns the bound listen address, or nil before Start has bound it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Start listens and serves until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.instrument(api.NewHandler(s.Config)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	ui.LogStatus("success", "API listening on http://"+ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		ui.LogStatus("warning", "Shutdown timeout: "+err.Error())
		return err
	}
	ui.LogStatus("success", "API server stopped")
	return nil
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request duration per route and logs each request when
// enabled.
func (s *Server) instrument(next http.Handler) http.Handler {
	logRequests := s.Config.Env != nil && s.Config.Env.LogRequests

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		d := time.Since(start)
		metrics.RequestDuration.
			WithLabelValues(routeLabel(r.URL.Path), strconv.Itoa(rec.status)).
			Observe(d.Seconds())
		if logRequests {
			ui.LogRequest(r.Method, r.URL.Path, rec.status, d)
		}
	})
}

// routeLabel bounds metric label cardinality to the known routes.
func routeLabel(path string) string {
	switch path {
	case "/api/convert", "/api/palette.png", "/healthz":
		return path
	}
	return "other"
}
