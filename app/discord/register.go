package discord

import (
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/bwmarrin/discordgo"
)

// RegisterCommands overwrites the application's slash commands. An empty
// guildID registers them globally.
func RegisterCommands(session Session, appID, guildID string, defs []*discordgo.ApplicationCommand, logger *slog.Logger) error {
	created, err := session.ApplicationCommandBulkOverwrite(appID, guildID, defs)
	if err != nil {
		return fmt.Errorf("failed to register %d commands: %w", len(defs), err)
	}
	scope := "global"
	if guildID != "" {
		scope = "guild"
	}
	logger.Info("Slash commands registered",
		attr.Int("count", len(created)),
		attr.String("scope", scope),
		attr.GuildID(guildID),
	)
	return nil
}
