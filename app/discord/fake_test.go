package discord

import (
	"github.com/bwmarrin/discordgo"
)

// FakeSession is a programmable Session.
type FakeSession struct {
	trace     []string
	Responses []*discordgo.InteractionResponse
	Sent      []string

	InteractionRespondFunc              func(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	ChannelMessageSendFunc              func(channelID, content string) (*discordgo.Message, error)
	GuildMemberFunc                     func(guildID, userID string) (*discordgo.Member, error)
	GuildFunc                           func(guildID string) (*discordgo.Guild, error)
	GuildRolesFunc                      func(guildID string) ([]*discordgo.Role, error)
	ApplicationCommandBulkOverwriteFunc func(appID, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error)
}

func (f *FakeSession) Trace() []string {
	return f.trace
}

func (f *FakeSession) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.trace = append(f.trace, "InteractionRespond")
	f.Responses = append(f.Responses, resp)
	if f.InteractionRespondFunc != nil {
		return f.InteractionRespondFunc(i, resp)
	}
	return nil
}

func (f *FakeSession) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.trace = append(f.trace, "ChannelMessageSend")
	f.Sent = append(f.Sent, content)
	if f.ChannelMessageSendFunc != nil {
		return f.ChannelMessageSendFunc(channelID, content)
	}
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *FakeSession) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.trace = append(f.trace, "GuildMember")
	if f.GuildMemberFunc != nil {
		return f.GuildMemberFunc(guildID, userID)
	}
	return &discordgo.Member{User: &discordgo.User{ID: userID, Username: "user-" + userID}}, nil
}

func (f *FakeSession) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	f.trace = append(f.trace, "Guild")
	if f.GuildFunc != nil {
		return f.GuildFunc(guildID)
	}
	return &discordgo.Guild{ID: guildID, OwnerID: "owner"}, nil
}

func (f *FakeSession) GuildRoles(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	f.trace = append(f.trace, "GuildRoles")
	if f.GuildRolesFunc != nil {
		return f.GuildRolesFunc(guildID)
	}
	return nil, nil
}

func (f *FakeSession) ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.trace = append(f.trace, "ApplicationCommandBulkOverwrite")
	if f.ApplicationCommandBulkOverwriteFunc != nil {
		return f.ApplicationCommandBulkOverwriteFunc(appID, guildID, cmds)
	}
	return cmds, nil
}
