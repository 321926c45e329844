package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/impiccato-bot/app/permissions"
	"github.com/bwmarrin/discordgo"
)

// GuildDirectory resolves guild owners, roles and member names. Lookups hit
// the gateway state cache first and fall back to REST on a miss.
type GuildDirectory struct {
	session Session
	state   *discordgo.State
}

var _ permissions.GuildDirectory = (*GuildDirectory)(nil)

// NewGuildDirectory creates a GuildDirectory. state may be nil.
func NewGuildDirectory(session Session, state *discordgo.State) *GuildDirectory {
	return &GuildDirectory{session: session, state: state}
}

func (d *GuildDirectory) guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	if d.state != nil {
		if guild, err := d.state.Guild(guildID); err == nil {
			return guild, nil
		}
	}
	guild, err := d.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	return guild, nil
}

func (d *GuildDirectory) OwnerID(ctx context.Context, guildID string) (string, error) {
	guild, err := d.guild(ctx, guildID)
	if err != nil {
		return "", err
	}
	return guild.OwnerID, nil
}

func (d *GuildDirectory) RoleIDByName(ctx context.Context, guildID, name string) (string, bool, error) {
	var roles []*discordgo.Role
	if d.state != nil {
		if guild, err := d.state.Guild(guildID); err == nil {
			roles = guild.Roles
		}
	}
	if roles == nil {
		fetched, err := d.session.GuildRoles(guildID, discordgo.WithContext(ctx))
		if err != nil {
			return "", false, fmt.Errorf("failed to fetch roles of guild %s: %w", guildID, err)
		}
		roles = fetched
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, name) {
			return role.ID, true, nil
		}
	}
	return "", false, nil
}

// MemberName returns the display name of a guild member.
func (d *GuildDirectory) MemberName(ctx context.Context, guildID, userID string) (string, error) {
	if d.state != nil {
		if member, err := d.state.Member(guildID, userID); err == nil {
			return DisplayName(member, member.User), nil
		}
	}
	member, err := d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}
	return DisplayName(member, member.User), nil
}
