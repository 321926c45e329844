package rankingrouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/app/eventbus"
	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	rankinghandlers "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// RankingRouter binds ranking topics to their handlers on the shared router.
type RankingRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	tracer     trace.Tracer
}

// NewRankingRouter creates a new instance of the router.
func NewRankingRouter(logger *slog.Logger, router *message.Router, subscriber message.Subscriber, tracer trace.Tracer) *RankingRouter {
	return &RankingRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		tracer:     tracer,
	}
}

// handlerDeps provides a scannable structure for the registerHandler helper.
type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	logger     *slog.Logger
	tracer     trace.Tracer
}

func registerHandler[T any](deps handlerDeps, topic string, handler func(context.Context, *T) error) {
	handlerName := "ranking." + topic
	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		eventbus.Handle(handlerName, deps.logger, deps.tracer, handler),
	)
}

// Configure registers the ranking event handlers. The history subscriber is
// only attached when the handlers have a repository to write to.
func (r *RankingRouter) Configure(ctx context.Context, handlers *rankinghandlers.RankingHandlers) error {
	r.logger.InfoContext(ctx, "Registering Ranking Event Handlers")

	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	if handlers.RecordsHistory() {
		registerHandler(deps, events.PointsAwardedV1, handlers.HandlePointsAwarded)
	}
	registerHandler(deps, events.DailyResetV1, handlers.HandleDailyReset)
	return nil
}
