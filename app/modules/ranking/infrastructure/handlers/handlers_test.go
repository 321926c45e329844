package rankinghandlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandlePointsAwarded(t *testing.T) {
	awardedAt := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	errDB := errors.New("connection refused")

	tests := []struct {
		name        string
		payload     events.PointsAwardedPayloadV1
		setup       func(*FakeHistory)
		wantErr     error
		wantTrace   []string
		wantEntries []rankingdb.PointHistory
	}{
		{
			name:      "records the change",
			payload:   events.PointsAwardedPayloadV1{UserID: "u1", Name: "Anna", Delta: 5, Reason: "phrase", AwardedAt: awardedAt},
			wantTrace: []string{"Record"},
			wantEntries: []rankingdb.PointHistory{
				{UserID: "u1", Name: "Anna", Delta: 5, Reason: "phrase", CreatedAt: awardedAt},
			},
		},
		{
			name:      "missing user is skipped",
			payload:   events.PointsAwardedPayloadV1{Delta: 1},
			wantTrace: []string{},
		},
		{
			name:    "repository error is returned for redelivery",
			payload: events.PointsAwardedPayloadV1{UserID: "u1", Delta: -1},
			setup: func(f *FakeHistory) {
				f.RecordFunc = func(context.Context, *rankingdb.PointHistory) error { return errDB }
			},
			wantErr:   errDB,
			wantTrace: []string{"Record"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := NewFakeHistory()
			if tt.setup != nil {
				tt.setup(history)
			}
			h := NewRankingHandlers(history, discardLogger())

			err := h.HandlePointsAwarded(context.Background(), &tt.payload)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantTrace, history.Trace())
			assert.Equal(t, tt.wantEntries, history.Entries)
		})
	}
}

func TestHandlePointsAwarded_NoHistory(t *testing.T) {
	h := NewRankingHandlers(nil, discardLogger())
	assert.False(t, h.RecordsHistory())
	require.NoError(t, h.HandlePointsAwarded(context.Background(), &events.PointsAwardedPayloadV1{UserID: "u1", Delta: 1}))
}

func TestHandleDailyReset(t *testing.T) {
	h := NewRankingHandlers(NewFakeHistory(), discardLogger())
	require.NoError(t, h.HandleDailyReset(context.Background(), &events.DailyResetPayloadV1{Date: "2026-10-16", Manual: true}))
}
