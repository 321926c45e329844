package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/impiccato-bot/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadyFunc reports whether the process is ready to serve traffic.
type ReadyFunc func() error

// Server exposes /metrics, /healthz and /readyz.
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

// NewRouter builds the ops routes. ready may be nil.
func NewRouter(registry *prometheus.Registry, ready ReadyFunc) chi.Router {
	limiter := ratelimit.NewKeyedLimiter(5, 20)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(ratelimit.Middleware(limiter))

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if ready != nil {
			if err := ready(); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	return r
}

// NewServer creates the ops server listening on addr.
func NewServer(addr string, registry *prometheus.Registry, ready ReadyFunc, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(registry, ready),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Ops server listening", attr.String("address", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Ops server shutdown failed", attr.Error(err))
		return err
	}
	return nil
}
