package dittohandlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
	dittoservice "github.com/Black-And-White-Club/impiccato-bot/app/modules/ditto/application"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/bwmarrin/discordgo"
)

// Fixed replies.
const (
	TextActivated   = "✅ **Bot activated!** / **Bot attivato!**\nTracking letters / Traccia lettere"
	TextReset       = "🔄 **Letters reset!** / **Lettere resettate!**\nStarting fresh / Si ricomincia da capo"
	TextDeactivated = "⏸️ **Bot deactivated!** / **Bot disattivato!**"
)

// RepeatedText announces a letter said again.
func RepeatedText(letter, userID, previousID, previousName string) string {
	return fmt.Sprintf("🔁 **Letter repeated!** / **Lettera ripetuta!**\n"+
		"Letter / Lettera: **%s**\n"+
		"Said now by / Detta ora da: %s\n"+
		"Previously said by / Detta prima da: %s (%s)",
		letter, discord.Mention(userID), discord.Mention(previousID), previousName)
}

// MessageSender posts plain messages to a channel.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DittoHandlers implements the on/off commands and the message listener.
type DittoHandlers struct {
	service dittoservice.Service
	sender  MessageSender
	logger  *slog.Logger
}

// NewDittoHandlers creates the handlers.
func NewDittoHandlers(service dittoservice.Service, sender MessageSender, logger *slog.Logger) *DittoHandlers {
	return &DittoHandlers{service: service, sender: sender, logger: logger}
}

func (h *DittoHandlers) On(ctx context.Context, _ *discord.Invocation) (discord.Reply, error) {
	wasActive, err := h.service.Activate(ctx)
	if err != nil {
		return discord.Reply{}, err
	}
	if wasActive {
		return discord.Reply{Content: TextReset}, nil
	}
	return discord.Reply{Content: TextActivated}, nil
}

func (h *DittoHandlers) Off(ctx context.Context, _ *discord.Invocation) (discord.Reply, error) {
	if err := h.service.Deactivate(ctx); err != nil {
		return discord.Reply{}, err
	}
	return discord.Reply{Content: TextDeactivated}, nil
}

// Commands returns the ditto slash commands. Both are checked against the
// configured policy.
func (h *DittoHandlers) Commands() []discord.Command {
	return []discord.Command{
		{
			Definition: &discordgo.ApplicationCommand{Name: "on", Description: "Activate the bot / Attiva il bot"},
			Restricted: true,
			Handle:     h.On,
		},
		{
			Definition: &discordgo.ApplicationCommand{Name: "off", Description: "Deactivate the bot / Disattiva il bot"},
			Restricted: true,
			Handle:     h.Off,
		},
	}
}

// HandleMessageCreate is the discordgo MessageCreate listener.
func (h *DittoHandlers) HandleMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil {
		return
	}
	ctx := context.Background()
	if err := h.OnMessage(ctx, m.Message); err != nil {
		h.logger.ErrorContext(ctx, "Failed to announce repeated letter",
			attr.String("channel_id", m.ChannelID),
			attr.Error(err),
		)
	}
}

// OnMessage tracks m and announces a repeated letter in its channel. Bot
// authors are ignored.
func (h *DittoHandlers) OnMessage(ctx context.Context, m *discordgo.Message) error {
	if m.Author == nil || m.Author.Bot {
		return nil
	}

	obs, ok := h.service.Observe(ctx, dittoservice.Message{
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Name:      discord.DisplayName(m.Member, m.Author),
		Content:   m.Content,
	})
	if !ok || !obs.Repeated {
		return nil
	}

	content := RepeatedText(obs.Letter, m.Author.ID, obs.Previous.UserID, obs.Previous.Name)
	if _, err := h.sender.ChannelMessageSend(m.ChannelID, content); err != nil {
		return fmt.Errorf("failed to send to channel %s: %w", m.ChannelID, err)
	}
	return nil
}
