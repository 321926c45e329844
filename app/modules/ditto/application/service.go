package dittoservice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	dittodomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ditto/domain"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/impiccato-bot/internal/results"
	"go.opentelemetry.io/otel/trace"
)

// Letter kinds recorded in metrics.
const (
	KindFirst  = "first"
	KindRepeat = "repeat"
)

// DittoService owns the tracker of the process.
type DittoService struct {
	publisher EventPublisher
	logger    *slog.Logger
	metrics   observability.DittoMetrics
	tracer    trace.Tracer

	mu      sync.Mutex
	tracker *dittodomain.Tracker
}

var _ Service = (*DittoService)(nil)

// NewDittoService creates a service with tracking off. publisher may be nil.
func NewDittoService(publisher EventPublisher, logger *slog.Logger, metrics observability.DittoMetrics, tracer trace.Tracer) *DittoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DittoService{
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		tracker:   dittodomain.NewTracker(),
	}
}

func (s *DittoService) operation() observability.Operation {
	op := observability.Operation{Service: "DittoService", Logger: s.logger, Tracer: s.tracer}
	if s.metrics != nil {
		op.Metrics = s.metrics
	}
	return op
}

func (s *DittoService) Activate(ctx context.Context) (bool, error) {
	result, err := observability.WithTelemetry(ctx, s.operation(), "Activate", "ditto", func(ctx context.Context) (results.OperationResult[bool, error], error) {
		s.mu.Lock()
		wasActive := s.tracker.Activate()
		s.mu.Unlock()

		s.logger.InfoContext(ctx, "Letter tracking activated", attr.Bool("reset", wasActive))
		return results.SuccessResult[bool, error](wasActive), nil
	})
	if err != nil {
		return false, err
	}
	return *result.Success, nil
}

func (s *DittoService) Deactivate(ctx context.Context) error {
	_, err := observability.WithTelemetry(ctx, s.operation(), "Deactivate", "ditto", func(ctx context.Context) (results.OperationResult[bool, error], error) {
		s.mu.Lock()
		s.tracker.Deactivate()
		s.mu.Unlock()

		s.logger.InfoContext(ctx, "Letter tracking deactivated")
		return results.SuccessResult[bool, error](false), nil
	})
	return err
}

// Observe feeds msg to the tracker. ok is false when tracking is off or the
// message is not a single letter.
func (s *DittoService) Observe(ctx context.Context, msg Message) (dittodomain.Observation, bool) {
	s.mu.Lock()
	obs, ok := s.tracker.Observe(msg.Content, dittodomain.Sayer{UserID: msg.UserID, Name: msg.Name})
	s.mu.Unlock()
	if !ok {
		return obs, false
	}

	kind := KindFirst
	if obs.Repeated {
		kind = KindRepeat
	}
	if s.metrics != nil {
		s.metrics.RecordLetter(ctx, kind)
	}
	s.logger.DebugContext(ctx, "Letter observed",
		attr.UserID(msg.UserID),
		attr.String("letter", obs.Letter),
		attr.String("kind", kind),
	)

	if obs.Repeated && s.publisher != nil {
		payload := events.LetterRepeatedPayloadV1{
			ChannelID:      msg.ChannelID,
			Letter:         obs.Letter,
			UserID:         msg.UserID,
			PreviousUserID: obs.Previous.UserID,
			PreviousName:   obs.Previous.Name,
		}
		if err := s.publisher.PublishEvent(ctx, events.LetterRepeatedV1, payload); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish ditto event", attr.Error(err))
		}
	}
	return obs, true
}
