package rankingservice

import (
	"context"
	"time"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
)

// Service is the scoring ledger shared by the hangman commands.
type Service interface {
	// AddPoints applies delta to userID in both tables and persists the document.
	AddPoints(ctx context.Context, userID, name string, delta int, reason string) (rankingdomain.Entry, error)
	// Top returns the n best standings of window w.
	Top(ctx context.Context, w rankingdomain.Window, n int) ([]rankingdomain.Standing, error)
	// Lookup returns the stored name and the daily points of userID.
	Lookup(ctx context.Context, userID string) (name string, known bool, dailyPoints int)
	ResetDaily(ctx context.Context) error
	ResetHistorical(ctx context.Context) error
	// CheckDailyReset clears the daily table when the calendar date changed.
	CheckDailyReset(ctx context.Context) (bool, error)
	// RunResetLoop calls CheckDailyReset now and then every interval until ctx ends.
	RunResetLoop(ctx context.Context, interval time.Duration)
	RenderChart(ctx context.Context, w rankingdomain.Window, n int) ([]byte, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, payload any) error
}
