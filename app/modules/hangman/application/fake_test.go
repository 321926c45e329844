package hangmanservice

import (
	"context"
	"sync"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
)

type ledgerCall struct {
	UserID string
	Name   string
	Delta  int
	Reason string
}

// FakeLedger implements Ledger and keeps running totals.
type FakeLedger struct {
	mu     sync.Mutex
	trace  []string
	Calls  []ledgerCall
	totals map[string]int
	names  map[string]string

	AddPointsFunc func(ctx context.Context, userID, name string, delta int, reason string) (rankingdomain.Entry, error)
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{trace: []string{}, totals: map[string]int{}, names: map[string]string{}}
}

func (f *FakeLedger) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLedger) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trace
}

func (f *FakeLedger) AddPoints(ctx context.Context, userID, name string, delta int, reason string) (rankingdomain.Entry, error) {
	f.mu.Lock()
	f.record("AddPoints")
	f.Calls = append(f.Calls, ledgerCall{UserID: userID, Name: name, Delta: delta, Reason: reason})
	f.mu.Unlock()

	if f.AddPointsFunc != nil {
		return f.AddPointsFunc(ctx, userID, name, delta, reason)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.totals[userID] += delta
	f.names[userID] = name
	return rankingdomain.Entry{Name: name, Points: f.totals[userID]}, nil
}

func (f *FakeLedger) Lookup(_ context.Context, userID string) (string, bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Lookup")
	name, ok := f.names[userID]
	return name, ok, f.totals[userID]
}

func (f *FakeLedger) Total(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totals[userID]
}

type publishedEvent struct {
	Topic   string
	Payload any
}

// FakePublisher records published events.
type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *FakePublisher) PublishEvent(_ context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (f *FakePublisher) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Topic
	}
	return out
}

func (f *FakePublisher) Last() publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[len(f.events)-1]
}
