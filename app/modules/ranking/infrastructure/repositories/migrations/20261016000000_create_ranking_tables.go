package rankingmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating ranking tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS ranking_entries (
					board VARCHAR(16) NOT NULL CHECK (board IN ('daily', 'historical')),
					user_id VARCHAR(32) NOT NULL,
					name TEXT NOT NULL,
					points INTEGER NOT NULL DEFAULT 0,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (board, user_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create ranking_entries table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS ranking_state (
					id INTEGER PRIMARY KEY,
					last_reset VARCHAR(10) NOT NULL
				);
			`); err != nil {
				return fmt.Errorf("failed to create ranking_state table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS ranking_point_history (
					id UUID PRIMARY KEY,
					user_id VARCHAR(32) NOT NULL,
					name TEXT NOT NULL,
					delta INTEGER NOT NULL,
					reason TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_ranking_point_history_user ON ranking_point_history(user_id, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create ranking_point_history table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping ranking tables...")
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS ranking_point_history;
			DROP TABLE IF EXISTS ranking_state;
			DROP TABLE IF EXISTS ranking_entries;
		`)
		return err
	})
}
