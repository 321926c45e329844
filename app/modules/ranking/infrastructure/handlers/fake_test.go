package rankinghandlers

import (
	"context"

	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
)

// FakeHistory implements rankingdb.HistoryRepository for handler testing.
type FakeHistory struct {
	trace   []string
	Entries []rankingdb.PointHistory

	RecordFunc func(ctx context.Context, entry *rankingdb.PointHistory) error
}

func NewFakeHistory() *FakeHistory {
	return &FakeHistory{trace: []string{}}
}

func (f *FakeHistory) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeHistory) Trace() []string {
	return f.trace
}

func (f *FakeHistory) Record(ctx context.Context, entry *rankingdb.PointHistory) error {
	f.record("Record")
	if f.RecordFunc != nil {
		return f.RecordFunc(ctx, entry)
	}
	f.Entries = append(f.Entries, *entry)
	return nil
}

var _ rankingdb.HistoryRepository = (*FakeHistory)(nil)
