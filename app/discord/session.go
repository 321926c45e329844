// Package discord adapts the discordgo gateway session to the bots: command
// dispatch with uniform authorization, option decoding, guild lookups and
// slash command registration.
package discord

import "github.com/bwmarrin/discordgo"

// Session is the subset of *discordgo.Session the bots call.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var _ Session = (*discordgo.Session)(nil)

// NewSession creates a gateway session with synchronous event dispatch so
// handlers never run concurrently with each other.
func NewSession(token string, intents discordgo.Intent) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.SyncEvents = true
	s.Identify.Intents = intents
	return s, nil
}

// DisplayName returns the guild nickname, then the global name, then the username.
func DisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil && member != nil {
		user = member.User
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// Mention formats a user mention.
func Mention(userID string) string {
	return "<@" + userID + ">"
}
