package ditto

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
	"github.com/Black-And-White-Club/impiccato-bot/app/eventbus"
	dittoservice "github.com/Black-And-White-Club/impiccato-bot/app/modules/ditto/application"
	dittohandlers "github.com/Black-And-White-Club/impiccato-bot/app/modules/ditto/infrastructure/handlers"
	"github.com/Black-And-White-Club/impiccato-bot/config"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
)

// Module represents the letter tracking module.
type Module struct {
	EventBus      eventbus.EventBus
	DittoService  *dittoservice.DittoService
	DittoHandlers *dittohandlers.DittoHandlers
	config        *config.Config
	observability *observability.Observability
	mu            sync.Mutex
	closed        bool
	cancelFunc    context.CancelFunc
}

// NewDittoModule wires the tracker to the channel sender. eventBus may be nil.
func NewDittoModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	sender dittohandlers.MessageSender,
	eventBus eventbus.EventBus,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "ditto.NewDittoModule called")

	var publisher dittoservice.EventPublisher
	if eventBus != nil {
		publisher = eventBus
	}

	service := dittoservice.NewDittoService(publisher, logger, obs.Metrics, obs.Tracer)
	return &Module{
		EventBus:      eventBus,
		DittoService:  service,
		DittoHandlers: dittohandlers.NewDittoHandlers(service, sender, logger),
		config:        cfg,
		observability: obs,
	}
}

// Commands returns the slash commands served by the module.
func (m *Module) Commands() []discord.Command {
	return m.DittoHandlers.Commands()
}

// Run blocks until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting ditto module")

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

	<-ctx.Done()
	logger.InfoContext(ctx, "Ditto module goroutine stopped")
}

// Close stops the ditto module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping ditto module")

	m.mu.Lock()
	m.closed = true
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.mu.Unlock()

	logger.Info("Ditto module stopped")
	return nil
}
