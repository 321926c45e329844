package discord

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/app/permissions"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Texts are the fixed replies the dispatcher produces on its own.
type Texts struct {
	Denied string
	Failed string
}

// DefaultTexts are used for any empty field of the Texts passed to NewDispatcher.
var DefaultTexts = Texts{
	Denied: "❌ You are not allowed to use this command! / Non hai il permesso di usare questo comando!",
	Failed: "⚠️ Something went wrong, please try again later. / Qualcosa è andato storto, riprova più tardi.",
}

// Reply is what a command handler wants sent back.
type Reply struct {
	Content   string
	Embeds    []*discordgo.MessageEmbed
	Files     []*discordgo.File
	Ephemeral bool
}

// HandlerFunc runs a command. A returned error is logged and answered with
// the generic failure text.
type HandlerFunc func(ctx context.Context, inv *Invocation) (Reply, error)

// Command couples a slash command definition with its handler.
type Command struct {
	Definition *discordgo.ApplicationCommand
	// Restricted commands are checked against the dispatcher's Authorizer.
	Restricted bool
	Handle     HandlerFunc
}

// Dispatcher routes application command interactions to handlers.
type Dispatcher struct {
	session    Session
	authorizer permissions.Authorizer
	commands   map[string]Command
	order      []string
	texts      Texts
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewDispatcher creates a Dispatcher. authorizer guards restricted commands.
func NewDispatcher(session Session, authorizer permissions.Authorizer, texts Texts, logger *slog.Logger, tracer trace.Tracer) *Dispatcher {
	if texts.Denied == "" {
		texts.Denied = DefaultTexts.Denied
	}
	if texts.Failed == "" {
		texts.Failed = DefaultTexts.Failed
	}
	return &Dispatcher{
		session:    session,
		authorizer: authorizer,
		commands:   make(map[string]Command),
		texts:      texts,
		logger:     logger,
		tracer:     tracer,
	}
}

// Register adds commands. A later command with the same name replaces the earlier one.
func (d *Dispatcher) Register(commands ...Command) {
	for _, c := range commands {
		name := c.Definition.Name
		if _, exists := d.commands[name]; !exists {
			d.order = append(d.order, name)
		}
		d.commands[name] = c
	}
}

// Definitions returns the registered command definitions in registration order.
func (d *Dispatcher) Definitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(d.order))
	for _, name := range d.order {
		defs = append(defs, d.commands[name].Definition)
	}
	return defs
}

// HandleInteraction is the discordgo event handler.
func (d *Dispatcher) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := d.Dispatch(context.Background(), i.Interaction); err != nil {
		d.logger.Error("Failed to answer interaction",
			attr.String("interaction_id", i.ID),
			attr.Error(err),
		)
	}
}

// Dispatch authorizes and runs the command named by the interaction and sends
// the reply. The returned error only reports a failure to respond.
func (d *Dispatcher) Dispatch(ctx context.Context, i *discordgo.Interaction) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	inv := NewInvocation(i)
	cmd, ok := d.commands[inv.Name]
	if !ok {
		d.logger.WarnContext(ctx, "Unknown command", attr.Command(inv.Name))
		return nil
	}

	ctx = attr.WithCorrelationID(ctx, uuid.NewString())
	ctx, span := d.tracer.Start(ctx, "discord.command."+inv.Name, trace.WithAttributes(
		attribute.String("command", inv.Name),
		attribute.String("user_id", inv.UserID),
		attribute.String("guild_id", inv.GuildID),
	))
	defer span.End()

	logger := d.logger.With(
		attr.Command(inv.Name),
		attr.UserID(inv.UserID),
		attr.GuildID(inv.GuildID),
		attr.ExtractCorrelationID(ctx),
	)

	if cmd.Restricted {
		if err := d.authorizer.Authorize(ctx, inv.Actor()); err != nil {
			if errors.Is(err, permissions.ErrNotAuthorized) {
				logger.InfoContext(ctx, "Command refused")
				return d.respond(i, Reply{Content: d.texts.Denied, Ephemeral: true})
			}
			logger.ErrorContext(ctx, "Authorization check failed", attr.Error(err))
			span.RecordError(err)
			return d.respond(i, Reply{Content: d.texts.Failed, Ephemeral: true})
		}
	}

	reply, err := cmd.Handle(ctx, inv)
	if err != nil {
		logger.ErrorContext(ctx, "Command failed", attr.Error(err))
		span.RecordError(err)
		return d.respond(i, Reply{Content: d.texts.Failed, Ephemeral: true})
	}

	logger.DebugContext(ctx, "Command handled")
	return d.respond(i, reply)
}

func (d *Dispatcher) respond(i *discordgo.Interaction, reply Reply) error {
	return d.session.InteractionRespond(i, Response(reply))
}

// Response converts a Reply into an interaction response.
func Response(reply Reply) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Content: reply.Content,
		Embeds:  reply.Embeds,
		Files:   reply.Files,
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}
