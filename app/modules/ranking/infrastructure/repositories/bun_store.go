package rankingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const stateRowID = 1

// BunStore keeps the document in Postgres, one row per table entry, and the
// point history next to it.
type BunStore struct {
	db  bun.IDB
	now func() time.Time
}

var (
	_ Store             = (*BunStore)(nil)
	_ HistoryRepository = (*BunStore)(nil)
)

// NewBunStore creates a store on db. now may be nil.
func NewBunStore(db bun.IDB, now func() time.Time) *BunStore {
	if now == nil {
		now = time.Now
	}
	return &BunStore{db: db, now: now}
}

func (s *BunStore) Driver() string { return "postgres" }

func (s *BunStore) Load(ctx context.Context) (*rankingdomain.Document, error) {
	doc := rankingdomain.NewDocument(rankingdomain.Today(s.now()))

	var entries []RankingEntry
	if err := s.db.NewSelect().Model(&entries).Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load ranking entries: %w", err)
	}
	for _, e := range entries {
		doc.Table(rankingdomain.Window(e.Board))[e.UserID] = rankingdomain.Entry{Name: e.Name, Points: e.Points}
	}

	state := new(RankingState)
	err := s.db.NewSelect().Model(state).Where("id = ?", stateRowID).Scan(ctx)
	switch {
	case err == nil:
		doc.LastReset = state.LastReset
	case errors.Is(err, sql.ErrNoRows):
	default:
		return nil, fmt.Errorf("failed to load ranking state: %w", err)
	}
	return doc, nil
}

// Save replaces every entry and the state row in one transaction.
func (s *BunStore) Save(ctx context.Context, doc *rankingdomain.Document) error {
	now := s.now()
	entries := make([]RankingEntry, 0, len(doc.Daily)+len(doc.Historical))
	for _, w := range []rankingdomain.Window{rankingdomain.WindowDaily, rankingdomain.WindowHistorical} {
		for userID, e := range doc.Table(w) {
			entries = append(entries, RankingEntry{
				Board:     string(w),
				UserID:    userID,
				Name:      e.Name,
				Points:    e.Points,
				UpdatedAt: now,
			})
		}
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*RankingEntry)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear ranking entries: %w", err)
		}
		if len(entries) > 0 {
			if _, err := tx.NewInsert().Model(&entries).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert ranking entries: %w", err)
			}
		}
		state := &RankingState{ID: stateRowID, LastReset: doc.LastReset}
		if _, err := tx.NewInsert().
			Model(state).
			On("CONFLICT (id) DO UPDATE").
			Set("last_reset = EXCLUDED.last_reset").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to upsert ranking state: %w", err)
		}
		return nil
	})
}

func (s *BunStore) Record(ctx context.Context, entry *PointHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if _, err := s.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record point history: %w", err)
	}
	return nil
}
