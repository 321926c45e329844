package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildDirectory(t *testing.T) {
	ctx := context.Background()
	session := &FakeSession{
		GuildRolesFunc: func(string) ([]*discordgo.Role, error) {
			return []*discordgo.Role{{ID: "r1", Name: "Everyone"}, {ID: "r2", Name: "Moderatore"}}, nil
		},
		GuildMemberFunc: func(_, userID string) (*discordgo.Member, error) {
			if userID == "gone" {
				return nil, errors.New("unknown member")
			}
			return &discordgo.Member{Nick: "Luigi", User: &discordgo.User{ID: userID}}, nil
		},
	}
	dir := NewGuildDirectory(session, nil)

	owner, err := dir.OwnerID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "owner", owner)

	id, found, err := dir.RoleIDByName(ctx, "g1", "moderatore")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "r2", id)

	_, found, err = dir.RoleIDByName(ctx, "g1", "admin")
	require.NoError(t, err)
	assert.False(t, found)

	name, err := dir.MemberName(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Luigi", name)

	_, err = dir.MemberName(ctx, "g1", "gone")
	assert.Error(t, err)
}

func TestGuildDirectory_PrefersStateCache(t *testing.T) {
	ctx := context.Background()
	state := discordgo.NewState()
	require.NoError(t, state.GuildAdd(&discordgo.Guild{
		ID:      "g1",
		OwnerID: "cached-owner",
		Roles:   []*discordgo.Role{{ID: "r7", Name: "Ditto"}},
	}))
	require.NoError(t, state.MemberAdd(&discordgo.Member{GuildID: "g1", Nick: "Peach", User: &discordgo.User{ID: "u1"}}))

	session := &FakeSession{}
	dir := NewGuildDirectory(session, state)

	owner, err := dir.OwnerID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "cached-owner", owner)

	id, found, err := dir.RoleIDByName(ctx, "g1", "ditto")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "r7", id)

	name, err := dir.MemberName(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Peach", name)
	assert.Empty(t, session.Trace())

	// a guild missing from the cache goes to REST
	owner, err = dir.OwnerID(ctx, "g2")
	require.NoError(t, err)
	assert.Equal(t, "owner", owner)
	assert.Equal(t, []string{"Guild"}, session.Trace())
}

func TestRegisterCommands(t *testing.T) {
	obs := observability.NewNoop()
	var gotGuild string
	session := &FakeSession{
		ApplicationCommandBulkOverwriteFunc: func(_, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
			gotGuild = guildID
			return cmds, nil
		},
	}
	defs := []*discordgo.ApplicationCommand{{Name: "on"}, {Name: "off"}}

	require.NoError(t, RegisterCommands(session, "app", "g1", defs, obs.Logger))
	assert.Equal(t, "g1", gotGuild)

	session.ApplicationCommandBulkOverwriteFunc = func(string, string, []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
		return nil, errors.New("missing access")
	}
	err := RegisterCommands(session, "app", "", defs, obs.Logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register 2 commands")
}
