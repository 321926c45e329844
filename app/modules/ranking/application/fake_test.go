package rankingservice

import (
	"context"
	"sync"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
)

// ------------------------
// Fake Store
// ------------------------

type FakeStore struct {
	mu    sync.Mutex
	trace []string
	saved []*rankingdomain.Document

	LoadFunc func(ctx context.Context) (*rankingdomain.Document, error)
	SaveFunc func(ctx context.Context, doc *rankingdomain.Document) error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{trace: []string{}}
}

func (f *FakeStore) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeStore) Load(ctx context.Context) (*rankingdomain.Document, error) {
	f.record("Load")
	if f.LoadFunc != nil {
		return f.LoadFunc(ctx)
	}
	return rankingdomain.NewDocument("2026-10-16"), nil
}

func (f *FakeStore) Save(ctx context.Context, doc *rankingdomain.Document) error {
	f.record("Save")
	f.mu.Lock()
	f.saved = append(f.saved, doc.Clone())
	f.mu.Unlock()
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, doc)
	}
	return nil
}

func (f *FakeStore) Driver() string { return "fake" }

func (f *FakeStore) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStore) LastSaved() *rankingdomain.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saved) == 0 {
		return nil
	}
	return f.saved[len(f.saved)-1]
}

var _ rankingdb.Store = (*FakeStore)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent

	PublishEventFunc func(ctx context.Context, topic string, payload any) error
}

func (f *FakePublisher) PublishEvent(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	f.mu.Unlock()
	if f.PublishEventFunc != nil {
		return f.PublishEventFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakePublisher) Events() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishedEvent, len(f.events))
	copy(out, f.events)
	return out
}
