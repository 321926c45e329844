package rankingservice

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/impiccato-bot/internal/results"
)

// CheckDailyReset clears the daily table once per calendar date change and
// reports whether it did.
func (s *RankingService) CheckDailyReset(ctx context.Context) (bool, error) {
	result, err := observability.WithTelemetry(ctx, s.operation(), "CheckDailyReset", "timer", func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return s.resetDailyLogic(ctx, false)
	})
	if err != nil {
		return false, err
	}
	return *result.Success, nil
}

func (s *RankingService) RunResetLoop(ctx context.Context, interval time.Duration) {
	s.checkAndLog(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Daily reset loop stopped")
			return
		case <-ticker.C:
			s.checkAndLog(ctx)
		}
	}
}

func (s *RankingService) checkAndLog(ctx context.Context) {
	if _, err := s.CheckDailyReset(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Daily reset check failed", attr.Error(err))
	}
}
