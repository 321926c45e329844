package ranking

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/impiccato-bot/app/eventbus"
	rankingservice "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/application"
	rankinghandlers "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/handlers"
	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
	rankingrouter "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/router"
	"github.com/Black-And-White-Club/impiccato-bot/config"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the ranking module.
type Module struct {
	EventBus       eventbus.EventBus
	RankingService *rankingservice.RankingService
	RankingRouter  *rankingrouter.RankingRouter
	config         *config.Config
	observability  *observability.Observability
	mu             sync.Mutex
	closed         bool
	cancelFunc     context.CancelFunc
}

// NewRankingModule loads the ranking document and registers the ranking
// subscribers. history may be nil.
func NewRankingModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	store rankingdb.Store,
	history rankingdb.HistoryRepository,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "ranking.NewRankingModule called")

	var publisher rankingservice.EventPublisher
	if eventBus != nil {
		publisher = eventBus
	}

	service, err := rankingservice.NewRankingService(ctx, store, publisher, logger, obs.Metrics, obs.Tracer, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ranking service: %w", err)
	}

	module := &Module{
		EventBus:       eventBus,
		RankingService: service,
		config:         cfg,
		observability:  obs,
	}

	if router != nil && eventBus != nil {
		module.RankingRouter = rankingrouter.NewRankingRouter(logger, router, eventBus, obs.Tracer)
		if err := module.RankingRouter.Configure(ctx, rankinghandlers.NewRankingHandlers(history, logger)); err != nil {
			return nil, fmt.Errorf("failed to configure ranking router: %w", err)
		}
	}

	return module, nil
}

// Run runs the daily reset loop until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting ranking module")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.mu.Lock()
	m.cancelFunc = cancel
	if m.closed {
		cancel()
	}
	m.mu.Unlock()

	if wg != nil {
		defer wg.Done()
	}

	m.RankingService.RunResetLoop(ctx, m.config.Game.ResetCheckInterval)
	logger.InfoContext(ctx, "Ranking module goroutine stopped")
}

// Close stops the ranking module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping ranking module")

	m.mu.Lock()
	m.closed = true
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.mu.Unlock()

	logger.Info("Ranking module stopped")
	return nil
}
