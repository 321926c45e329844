package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OperationMetrics records the lifecycle of a service operation.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// HangmanMetrics records game events.
type HangmanMetrics interface {
	OperationMetrics
	RecordGuess(ctx context.Context, kind, outcome string)
	RecordRoundStarted(ctx context.Context)
	RecordRoundEnded(ctx context.Context, reason string)
}

// RankingMetrics records ledger and store activity.
type RankingMetrics interface {
	OperationMetrics
	RecordPointsAwarded(ctx context.Context, delta int)
	RecordStoreWrite(ctx context.Context, driver string, d time.Duration, err error)
	RecordDailyReset(ctx context.Context)
}

// DittoMetrics records letter tracking.
type DittoMetrics interface {
	OperationMetrics
	RecordLetter(ctx context.Context, kind string)
}

// Metrics is the prometheus implementation of every metrics interface above.
type Metrics struct {
	opAttempts  *prometheus.CounterVec
	opSuccesses *prometheus.CounterVec
	opFailures  *prometheus.CounterVec
	opDuration  *prometheus.HistogramVec

	guesses       *prometheus.CounterVec
	roundsStarted prometheus.Counter
	roundsEnded   *prometheus.CounterVec

	pointsAwarded *prometheus.CounterVec
	storeWrites   *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
	dailyResets   prometheus.Counter

	letters *prometheus.CounterVec
}

var (
	_ HangmanMetrics = (*Metrics)(nil)
	_ RankingMetrics = (*Metrics)(nil)
	_ DittoMetrics   = (*Metrics)(nil)
)

// NewMetrics registers the collectors on reg under the given namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		opAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_attempts_total",
			Help: "Service operations started.",
		}, []string{"service", "operation"}),
		opSuccesses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_successes_total",
			Help: "Service operations that completed.",
		}, []string{"service", "operation"}),
		opFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_failures_total",
			Help: "Service operations that returned an error or panicked.",
		}, []string{"service", "operation"}),
		opDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		guesses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "guesses_total",
			Help: "Evaluated guesses by kind and outcome.",
		}, []string{"kind", "outcome"}),
		roundsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rounds_started_total",
			Help: "Rounds started.",
		}),
		roundsEnded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "rounds_ended_total",
			Help: "Rounds closed by reason.",
		}, []string{"reason"}),
		pointsAwarded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "points_awarded_total",
			Help: "Absolute points moved through the ledger by sign.",
		}, []string{"sign"}),
		storeWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "ranking_store_writes_total",
			Help: "Ranking document writes by driver and result.",
		}, []string{"driver", "result"}),
		storeDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "ranking_store_write_seconds",
			Help:    "Ranking document write latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"driver"}),
		dailyResets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "daily_resets_total",
			Help: "Daily ranking resets.",
		}),
		letters: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "tracked_letters_total",
			Help: "Letters observed by the tracker, first or repeated.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.opAttempts.WithLabelValues(service, operation).Inc()
}

func (m *Metrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.opSuccesses.WithLabelValues(service, operation).Inc()
}

func (m *Metrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.opFailures.WithLabelValues(service, operation).Inc()
}

func (m *Metrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.opDuration.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (m *Metrics) RecordGuess(_ context.Context, kind, outcome string) {
	m.guesses.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) RecordRoundStarted(_ context.Context) {
	m.roundsStarted.Inc()
}

func (m *Metrics) RecordRoundEnded(_ context.Context, reason string) {
	m.roundsEnded.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordPointsAwarded(_ context.Context, delta int) {
	switch {
	case delta > 0:
		m.pointsAwarded.WithLabelValues("positive").Add(float64(delta))
	case delta < 0:
		m.pointsAwarded.WithLabelValues("negative").Add(float64(-delta))
	}
}

func (m *Metrics) RecordStoreWrite(_ context.Context, driver string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeWrites.WithLabelValues(driver, result).Inc()
	m.storeDuration.WithLabelValues(driver).Observe(d.Seconds())
}

func (m *Metrics) RecordDailyReset(_ context.Context) {
	m.dailyResets.Inc()
}

func (m *Metrics) RecordLetter(_ context.Context, kind string) {
	m.letters.WithLabelValues(kind).Inc()
}
