// Package observability builds the logger, tracer and metrics shared by every
// module of a bot process.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds the observability settings derived from the app config. An
// empty OTLPEndpoint disables span export.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	MetricsAddress string
	OTLPEndpoint   string
}

// Observability bundles the components handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  *Metrics

	shutdown func(context.Context) error
}

// Init creates the observability components for a process. Spans are only
// exported when cfg.OTLPEndpoint is set; otherwise the global no-op tracer is used.
func Init(ctx context.Context, cfg Config) (*Observability, error) {
	logger := NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel).
		With(slog.String("service", cfg.ServiceName))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := &Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName),
		Registry: registry,
		Metrics:  NewMetrics(registry, cfg.ServiceName),
	}

	if cfg.OTLPEndpoint != "" {
		tp, err := NewTracerProvider(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Environment)
		if err != nil {
			return nil, err
		}
		installTracerProvider(tp)
		obs.Tracer = tp.Tracer(cfg.ServiceName)
		obs.shutdown = tp.Shutdown
		logger.InfoContext(ctx, "Tracing enabled", slog.String("otlp_endpoint", cfg.OTLPEndpoint))
	}

	return obs, nil
}

// Shutdown flushes pending spans. It is a no-op when tracing is disabled.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o.shutdown == nil {
		return nil
	}
	return o.shutdown(ctx)
}

// NewNoop returns components that discard everything. Used in tests.
func NewNoop() *Observability {
	registry := prometheus.NewRegistry()
	return &Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   noop.NewTracerProvider().Tracer("test"),
		Registry: registry,
		Metrics:  NewMetrics(registry, "test"),
	}
}

// NewLogger returns a JSON logger outside development and a text logger in it.
func NewLogger(w io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if environment == "development" || environment == "dev" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
