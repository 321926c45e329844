package rankinghandlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
)

// Handlers consumes ranking events.
type Handlers interface {
	HandlePointsAwarded(ctx context.Context, payload *events.PointsAwardedPayloadV1) error
	HandleDailyReset(ctx context.Context, payload *events.DailyResetPayloadV1) error
}

// RankingHandlers keeps the point history in sync with the ledger.
type RankingHandlers struct {
	history rankingdb.HistoryRepository
	logger  *slog.Logger
}

// NewRankingHandlers creates the handlers. history may be nil when the storage
// driver keeps no audit trail.
func NewRankingHandlers(history rankingdb.HistoryRepository, logger *slog.Logger) *RankingHandlers {
	return &RankingHandlers{history: history, logger: logger}
}

// RecordsHistory reports whether HandlePointsAwarded has somewhere to write.
func (h *RankingHandlers) RecordsHistory() bool {
	return h.history != nil
}

// HandlePointsAwarded appends one history row per ledger change.
func (h *RankingHandlers) HandlePointsAwarded(ctx context.Context, payload *events.PointsAwardedPayloadV1) error {
	if h.history == nil {
		return nil
	}
	if payload.UserID == "" {
		h.logger.WarnContext(ctx, "Ignoring points event without user")
		return nil
	}

	entry := &rankingdb.PointHistory{
		UserID:    payload.UserID,
		Name:      payload.Name,
		Delta:     payload.Delta,
		Reason:    payload.Reason,
		CreatedAt: payload.AwardedAt,
	}
	if err := h.history.Record(ctx, entry); err != nil {
		return fmt.Errorf("record history for %s: %w", payload.UserID, err)
	}

	h.logger.DebugContext(ctx, "Point history recorded",
		attr.UserID(payload.UserID),
		attr.Int("delta", payload.Delta),
		attr.String("reason", payload.Reason),
	)
	return nil
}

func (h *RankingHandlers) HandleDailyReset(ctx context.Context, payload *events.DailyResetPayloadV1) error {
	h.logger.InfoContext(ctx, "Daily ranking window closed",
		attr.String("date", payload.Date),
		attr.Bool("manual", payload.Manual),
		attr.ExtractCorrelationID(ctx),
	)
	return nil
}
