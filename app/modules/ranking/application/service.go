package rankingservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/impiccato-bot/internal/results"
	"go.opentelemetry.io/otel/trace"
)

// RankingService owns the in-memory ranking document and writes it through
// the store on every mutation. The mutex serializes command handlers with the
// reset timer.
type RankingService struct {
	store     rankingdb.Store
	publisher EventPublisher
	logger    *slog.Logger
	metrics   observability.RankingMetrics
	tracer    trace.Tracer
	now       func() time.Time

	mu  sync.Mutex
	doc *rankingdomain.Document
}

var _ Service = (*RankingService)(nil)

// NewRankingService loads the document from store and returns the service.
// publisher and now may be nil.
func NewRankingService(
	ctx context.Context,
	store rankingdb.Store,
	publisher EventPublisher,
	logger *slog.Logger,
	metrics observability.RankingMetrics,
	tracer trace.Tracer,
	now func() time.Time,
) (*RankingService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}

	doc, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking document: %w", err)
	}

	logger.InfoContext(ctx, "Ranking document loaded",
		attr.String("driver", store.Driver()),
		attr.Int("daily_entries", len(doc.Daily)),
		attr.Int("historical_entries", len(doc.Historical)),
		attr.String("last_reset", doc.LastReset),
	)

	return &RankingService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		now:       now,
		doc:       doc,
	}, nil
}

func (s *RankingService) operation() observability.Operation {
	op := observability.Operation{Service: "RankingService", Logger: s.logger, Tracer: s.tracer}
	if s.metrics != nil {
		op.Metrics = s.metrics
	}
	return op
}

// save must be called with s.mu held.
func (s *RankingService) save(ctx context.Context) error {
	start := time.Now()
	err := s.store.Save(ctx, s.doc)
	if s.metrics != nil {
		s.metrics.RecordStoreWrite(ctx, s.store.Driver(), time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("failed to persist ranking document: %w", err)
	}
	return nil
}

func (s *RankingService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ranking event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// AddPoints upserts the user in both tables and persists. When the write
// fails the in-memory change stays applied and the error is returned.
func (s *RankingService) AddPoints(ctx context.Context, userID, name string, delta int, reason string) (rankingdomain.Entry, error) {
	result, err := observability.WithTelemetry(ctx, s.operation(), "AddPoints", userID, func(ctx context.Context) (results.OperationResult[rankingdomain.Entry, error], error) {
		return s.addPointsLogic(ctx, userID, name, delta, reason)
	})
	if err != nil {
		return rankingdomain.Entry{}, err
	}
	return *result.Success, nil
}

func (s *RankingService) addPointsLogic(ctx context.Context, userID, name string, delta int, reason string) (results.OperationResult[rankingdomain.Entry, error], error) {
	s.mu.Lock()
	daily, historical := s.doc.AddPoints(userID, name, delta)
	err := s.save(ctx)
	s.mu.Unlock()

	if err != nil {
		return results.OperationResult[rankingdomain.Entry, error]{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordPointsAwarded(ctx, delta)
	}
	s.logger.InfoContext(ctx, "Points awarded",
		attr.UserID(userID),
		attr.Int("delta", delta),
		attr.Int("daily", daily.Points),
		attr.Int("historical", historical.Points),
		attr.String("reason", reason),
	)
	s.publish(ctx, pointsAwardedTopic, newPointsAwarded(userID, name, delta, reason, daily, historical, s.now()))

	return results.SuccessResult[rankingdomain.Entry, error](daily), nil
}

func (s *RankingService) Top(ctx context.Context, w rankingdomain.Window, n int) ([]rankingdomain.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rankingdomain.Top(s.doc.Table(w), n), nil
}

func (s *RankingService) Lookup(_ context.Context, userID string) (string, bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, known := s.doc.Name(userID)
	return name, known, s.doc.Daily[userID].Points
}

// Snapshot returns a copy of the current document.
func (s *RankingService) Snapshot() *rankingdomain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// ResetDaily clears the daily table and stamps today, regardless of the stored date.
func (s *RankingService) ResetDaily(ctx context.Context) error {
	_, err := observability.WithTelemetry(ctx, s.operation(), "ResetDaily", "manual", func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return s.resetDailyLogic(ctx, true)
	})
	return err
}

func (s *RankingService) ResetHistorical(ctx context.Context) error {
	_, err := observability.WithTelemetry(ctx, s.operation(), "ResetHistorical", "manual", func(ctx context.Context) (results.OperationResult[bool, error], error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.doc.ResetHistorical()
		if err := s.save(ctx); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	})
	return err
}

func (s *RankingService) resetDailyLogic(ctx context.Context, manual bool) (results.OperationResult[bool, error], error) {
	today := rankingdomain.Today(s.now())

	s.mu.Lock()
	if !manual && !s.doc.NeedsDailyReset(today) {
		s.mu.Unlock()
		return results.SuccessResult[bool, error](false), nil
	}
	s.doc.ResetDaily(today)
	err := s.save(ctx)
	s.mu.Unlock()

	if err != nil {
		return results.OperationResult[bool, error]{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordDailyReset(ctx)
	}
	s.logger.InfoContext(ctx, "Daily ranking reset",
		attr.String("date", today),
		attr.Bool("manual", manual),
	)
	s.publish(ctx, dailyResetTopic, newDailyReset(today, manual))
	return results.SuccessResult[bool, error](true), nil
}
