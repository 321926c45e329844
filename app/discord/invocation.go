package discord

import (
	"github.com/Black-And-White-Club/impiccato-bot/app/permissions"
	"github.com/bwmarrin/discordgo"
)

// Invocation is a decoded slash command interaction.
type Invocation struct {
	Name        string
	UserID      string
	DisplayName string
	GuildID     string
	ChannelID   string
	RoleIDs     []string

	options  map[string]*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

// NewInvocation decodes an application command interaction.
func NewInvocation(i *discordgo.Interaction) *Invocation {
	data := i.ApplicationCommandData()
	inv := &Invocation{
		Name:      data.Name,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		options:   make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options)),
		resolved:  data.Resolved,
	}

	user := i.User
	if i.Member != nil {
		if i.Member.User != nil {
			user = i.Member.User
		}
		inv.RoleIDs = i.Member.Roles
	}
	if user != nil {
		inv.UserID = user.ID
	}
	inv.DisplayName = DisplayName(i.Member, user)

	for _, opt := range data.Options {
		inv.options[opt.Name] = opt
	}
	return inv
}

// Actor returns the authorization subject of the invocation.
func (inv *Invocation) Actor() permissions.Actor {
	return permissions.Actor{UserID: inv.UserID, GuildID: inv.GuildID, RoleIDs: inv.RoleIDs}
}

// String returns the string option name, or def when it was not supplied.
func (inv *Invocation) String(name, def string) string {
	opt, ok := inv.options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return def
	}
	return opt.StringValue()
}

// Int returns the integer option name, or def when it was not supplied.
func (inv *Invocation) Int(name string, def int) int {
	opt, ok := inv.options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return def
	}
	return int(opt.IntValue())
}

// TargetUser is a user chosen through a user option.
type TargetUser struct {
	ID          string
	DisplayName string
}

// User returns the user option name with its display name taken from the
// resolved interaction data.
func (inv *Invocation) User(name string) (TargetUser, bool) {
	opt, ok := inv.options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionUser {
		return TargetUser{}, false
	}
	id, _ := opt.Value.(string)
	if id == "" {
		return TargetUser{}, false
	}

	target := TargetUser{ID: id, DisplayName: id}
	if inv.resolved != nil {
		var member *discordgo.Member
		if inv.resolved.Members != nil {
			member = inv.resolved.Members[id]
		}
		var user *discordgo.User
		if inv.resolved.Users != nil {
			user = inv.resolved.Users[id]
		}
		if n := DisplayName(member, user); n != "" {
			target.DisplayName = n
		}
	}
	return target, true
}
