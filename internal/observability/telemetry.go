package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/impiccato-bot/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Operation describes the service an operation belongs to.
type Operation struct {
	Service string
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics OperationMetrics
}

// OperationFunc is the signature wrapped by WithTelemetry.
type OperationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// WithTelemetry wraps a service operation with tracing, metrics, logging and
// panic recovery. A recovered panic is returned as an error.
func WithTelemetry[S any, F any](
	ctx context.Context,
	o Operation,
	operationName string,
	identifier string,
	op OperationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if o.Tracer != nil {
		ctx, span = o.Tracer.Start(ctx, o.Service+"."+operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if o.Metrics != nil {
		o.Metrics.RecordOperationAttempt(ctx, operationName, o.Service)
	}

	startTime := time.Now()
	defer func() {
		if o.Metrics != nil {
			o.Metrics.RecordOperationDuration(ctx, operationName, o.Service, time.Since(startTime))
		}
	}()

	logger.DebugContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.String("identifier", identifier),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("operation", operationName),
				attr.String("identifier", identifier),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			if o.Metrics != nil {
				o.Metrics.RecordOperationFailure(ctx, operationName, o.Service)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		logger.ErrorContext(ctx, "Operation failed with error",
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.ExtractCorrelationID(ctx),
			attr.Error(wrappedErr),
		)
		if o.Metrics != nil {
			o.Metrics.RecordOperationFailure(ctx, operationName, o.Service)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		logger.InfoContext(ctx, "Operation returned failure result",
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.ExtractCorrelationID(ctx),
			attr.Any("failure", *result.Failure),
		)
	}

	if o.Metrics != nil {
		o.Metrics.RecordOperationSuccess(ctx, operationName, o.Service)
	}

	return result, nil
}
