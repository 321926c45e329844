package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// NewRouter creates the watermill router shared by every module subscriber.
// registry may be nil, in which case router metrics are skipped.
func NewRouter(logger *slog.Logger, registry *prometheus.Registry) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "", "")
		builder.AddPrometheusRouterMetrics(router)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)
	return router, nil
}

// Handle adapts a typed event handler to a watermill handler. The message
// correlation id is carried into ctx and a span wraps the call.
func Handle[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(ctx context.Context, payload *T) error,
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("message.id", msg.UUID),
		))
		defer span.End()

		payload, err := Decode[T](msg)
		if err != nil {
			// malformed payloads are dropped, redelivery would not fix them
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			span.RecordError(err)
			return nil
		}

		if err := handler(ctx, payload); err != nil {
			logger.ErrorContext(ctx, "Error processing message",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			span.RecordError(err)
			return err
		}
		return nil
	}
}
