package rankingdb

import (
	"context"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
)

// Store persists the ranking document. Every mutation saves the whole
// document; there is no batching.
type Store interface {
	// Load returns the stored document, or a fresh one when nothing is stored yet.
	Load(ctx context.Context) (*rankingdomain.Document, error)

	// Save replaces the stored document.
	Save(ctx context.Context, doc *rankingdomain.Document) error

	// Driver names the backend for logs and metrics.
	Driver() string
}

// HistoryRepository keeps an audit trail of point changes.
type HistoryRepository interface {
	// Record appends an entry.
	Record(ctx context.Context, entry *PointHistory) error
}
