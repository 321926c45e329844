package hangman

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
	"github.com/Black-And-White-Club/impiccato-bot/app/eventbus"
	hangmanservice "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/application"
	hangmanhandlers "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/infrastructure/handlers"
	"github.com/Black-And-White-Club/impiccato-bot/config"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
)

// Module represents the hangman module.
type Module struct {
	EventBus        eventbus.EventBus
	HangmanService  *hangmanservice.HangmanService
	HangmanHandlers *hangmanhandlers.HangmanHandlers
	config          *config.Config
	observability   *observability.Observability
	mu              sync.Mutex
	closed          bool
	cancelFunc      context.CancelFunc
}

// NewHangmanModule wires the game service to the ranking ledger. eventBus
// and members may be nil.
func NewHangmanModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	ledger hangmanservice.Ledger,
	ranking hangmanhandlers.Ranking,
	members hangmanhandlers.MemberDirectory,
	eventBus eventbus.EventBus,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "hangman.NewHangmanModule called")

	var publisher hangmanservice.EventPublisher
	if eventBus != nil {
		publisher = eventBus
	}

	service := hangmanservice.NewHangmanService(ledger, publisher, logger, obs.Metrics, obs.Tracer)
	handlers := hangmanhandlers.NewHangmanHandlers(service, ranking, members, cfg.Game.DefaultLives, logger)

	return &Module{
		EventBus:        eventBus,
		HangmanService:  service,
		HangmanHandlers: handlers,
		config:          cfg,
		observability:   obs,
	}
}

// Commands returns the slash commands served by the module.
func (m *Module) Commands() []discord.Command {
	return m.HangmanHandlers.Commands()
}

// Run blocks until ctx is cancelled or Close is called. The game is driven
// entirely by interactions.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting hangman module")

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
	logger.InfoContext(ctx, "Hangman module goroutine stopped")
}

// Close stops the hangman module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping hangman module")

	m.mu.Lock()
	m.closed = true
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.mu.Unlock()

	logger.Info("Hangman module stopped")
	return nil
}
