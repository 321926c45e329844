package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
	"github.com/Black-And-White-Club/impiccato-bot/app/eventbus"
	"github.com/Black-And-White-Club/impiccato-bot/app/modules/ditto"
	"github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman"
	hangmanhandlers "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/infrastructure/handlers"
	"github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking"
	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
	rankingmigrations "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/impiccato-bot/app/permissions"
	"github.com/Black-And-White-Club/impiccato-bot/config"
	"github.com/Black-And-White-Club/impiccato-bot/internal/db/bundb"
	"github.com/Black-And-White-Club/impiccato-bot/internal/modules"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
)

// Bot selects which bot the process runs.
type Bot string

const (
	BotHangman Bot = "hangman"
	BotDitto   Bot = "ditto"
)

var errNotReady = errors.New("gateway session not ready")

const tracerShutdownTimeout = 5 * time.Second

// App holds the components of one bot process.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	Session       *discordgo.Session
	EventBus      eventbus.EventBus
	Router        *message.Router
	Dispatcher    *discord.Dispatcher
	Modules       *modules.ModuleRegistry
	db            *bun.DB
	bot           Bot
	readyOnce     sync.Once
}

// ServiceName is the observability service name of bot.
func ServiceName(bot Bot) string {
	return string(bot) + "-bot"
}

// NewApp initializes the application for bot.
func NewApp(ctx context.Context, cfg *config.Config, bot Bot) (*App, error) {
	if bot != BotHangman && bot != BotDitto {
		return nil, fmt.Errorf("unknown bot %q", bot)
	}

	obs, err := observability.Init(ctx, config.ToObsConfig(cfg, ServiceName(bot)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		Modules:       modules.NewModuleRegistry(),
		bot:           bot,
	}
	logger := app.Observability.Logger
	logger.InfoContext(ctx, "Initializing application", attr.String("bot", string(bot)))

	if err := app.initEventBus(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	session, err := discord.NewSession(cfg.Discord.Token, intents(bot))
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	app.Session = session

	switch bot {
	case BotHangman:
		err = app.initHangman(ctx)
	case BotDitto:
		err = app.initDitto(ctx)
	}
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Dispatcher.Register(app.Modules.Commands()...)
	session.AddHandler(app.Dispatcher.HandleInteraction)
	session.AddHandler(app.onReady)

	return app, nil
}

func intents(bot Bot) discordgo.Intent {
	base := discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	if bot == BotDitto {
		return base | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	}
	return base
}

func (app *App) initEventBus(ctx context.Context) error {
	logger := app.Observability.Logger

	if app.Config.NATS.URL != "" {
		bus, err := eventbus.NewNATS(ctx, app.Config.NATS.URL, logger)
		if err != nil {
			return fmt.Errorf("failed to create event bus: %w", err)
		}
		app.EventBus = bus
	} else {
		app.EventBus = eventbus.NewInProcess(logger)
	}

	router, err := eventbus.NewRouter(logger, app.Observability.Registry)
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	app.Router = router
	return nil
}

// initStore returns the ranking store and, with the postgres driver, the
// point history repository.
func (app *App) initStore(ctx context.Context) (rankingdb.Store, rankingdb.HistoryRepository, error) {
	storage := app.Config.Storage
	if storage.Driver != config.StorageDriverPostgres {
		return rankingdb.NewJSONStore(storage.DataFile, nil), nil, nil
	}

	db, err := bundb.Open(ctx, storage.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ranking database: %w", err)
	}
	app.db = db

	if err := bundb.Migrate(ctx, db, rankingmigrations.Migrations, app.Observability.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate ranking database: %w", err)
	}
	store := rankingdb.NewBunStore(db, nil)
	return store, store, nil
}

func (app *App) initHangman(ctx context.Context) error {
	obs := app.Observability
	directory := discord.NewGuildDirectory(app.Session, app.Session.State)

	store, history, err := app.initStore(ctx)
	if err != nil {
		return err
	}

	rankingModule, err := ranking.NewRankingModule(ctx, app.Config, obs, store, history, app.EventBus, app.Router)
	if err != nil {
		return fmt.Errorf("failed to initialize ranking module: %w", err)
	}
	hangmanModule := hangman.NewHangmanModule(ctx, app.Config, obs,
		rankingModule.RankingService, rankingModule.RankingService, directory, app.EventBus)

	if err := app.Modules.Add("ranking", rankingModule); err != nil {
		return err
	}
	if err := app.Modules.Add("hangman", hangmanModule); err != nil {
		return err
	}

	authorizer, err := permissions.NewAuthorizer(permissions.PolicyOwner, "", directory)
	if err != nil {
		return err
	}
	app.Dispatcher = discord.NewDispatcher(app.Session, authorizer,
		discord.Texts{Denied: hangmanhandlers.TextOwnerOnly}, obs.Logger, obs.Tracer)
	return nil
}

func (app *App) initDitto(ctx context.Context) error {
	obs := app.Observability
	directory := discord.NewGuildDirectory(app.Session, app.Session.State)

	policy := permissions.Policy(app.Config.Ditto.Policy)
	authorizer, err := permissions.NewAuthorizer(policy, app.Config.Ditto.RoleName, directory)
	if err != nil {
		return fmt.Errorf("failed to build ditto authorizer: %w", err)
	}
	obs.Logger.InfoContext(ctx, "Ditto activation policy", attr.String("policy", policy.String()))

	dittoModule := ditto.NewDittoModule(ctx, app.Config, obs, app.Session, app.EventBus)
	if err := app.Modules.Add("ditto", dittoModule); err != nil {
		return err
	}
	app.Session.AddHandler(dittoModule.DittoHandlers.HandleMessageCreate)

	app.Dispatcher = discord.NewDispatcher(app.Session, authorizer, discord.Texts{}, obs.Logger, obs.Tracer)
	return nil
}

// onReady registers the slash commands once the gateway knows the
// application id.
func (app *App) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger := app.Observability.Logger
	logger.Info("Connected to gateway", attr.String("bot_user", r.User.Username))

	app.readyOnce.Do(func() {
		if err := discord.RegisterCommands(s, r.User.ID, app.Config.Discord.GuildID, app.Dispatcher.Definitions(), logger); err != nil {
			logger.Error("Failed to register slash commands", attr.Error(err))
		}
	})
}

func (app *App) ready() error {
	if app.Session == nil || !app.Session.DataReady {
		return errNotReady
	}
	return nil
}

// Run starts the modules, the event router, the ops server and the gateway
// session, and blocks until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	app.Modules.RunAll(ctx)

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- app.Router.Run(ctx)
	}()

	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		server := observability.NewServer(addr, app.Observability.Registry, app.ready, logger)
		go func() {
			if err := server.Run(ctx); err != nil {
				logger.Error("Ops server stopped", attr.Error(err))
			}
		}()
	}

	if err := app.Session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	logger.InfoContext(ctx, "Bot is running", attr.String("bot", string(app.bot)))

	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
		return nil
	case err := <-routerErr:
		if err != nil {
			return fmt.Errorf("watermill router stopped: %w", err)
		}
		return nil
	}
}

// Close releases everything NewApp and Run acquired. It is safe to call on a
// partially initialized App.
func (app *App) Close() error {
	var errs []error

	if app.Session != nil {
		if err := app.Session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close discord session: %w", err))
		}
	}
	if err := app.Modules.CloseAll(); err != nil {
		errs = append(errs, err)
	}
	app.Modules.Wait()
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
	defer cancel()
	if err := app.Observability.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
	}

	app.Observability.Logger.Info("Application closed")
	return errors.Join(errs...)
}
