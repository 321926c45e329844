package rankingdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RankingEntry is one row of a ranking table. Board is "daily" or "historical".
type RankingEntry struct {
	bun.BaseModel `bun:"table:ranking_entries,alias:re"`

	Board     string    `bun:"board,pk"`
	UserID    string    `bun:"user_id,pk"`
	Name      string    `bun:"name,notnull"`
	Points    int       `bun:"points,notnull,default:0"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// RankingState holds the single row of document-level fields.
type RankingState struct {
	bun.BaseModel `bun:"table:ranking_state,alias:rs"`

	ID        int    `bun:"id,pk"`
	LastReset string `bun:"last_reset,notnull"`
}

// PointHistory records one ledger change.
type PointHistory struct {
	bun.BaseModel `bun:"table:ranking_point_history,alias:ph"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	UserID    string    `bun:"user_id,notnull"`
	Name      string    `bun:"name,notnull"`
	Delta     int       `bun:"delta,notnull"`
	Reason    string    `bun:"reason"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
