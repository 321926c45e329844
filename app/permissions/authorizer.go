package permissions

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Actor is the member invoking a command.
type Actor struct {
	UserID  string
	GuildID string
	RoleIDs []string
}

// GuildDirectory answers the guild questions a policy needs.
type GuildDirectory interface {
	OwnerID(ctx context.Context, guildID string) (string, error)
	// RoleIDByName returns the id of the role named name, matched case-insensitively.
	RoleIDByName(ctx context.Context, guildID, name string) (string, bool, error)
}

// Authorizer decides whether an actor may run a restricted command. It
// returns ErrNotAuthorized when the actor is refused and any other error when
// the decision could not be made.
type Authorizer interface {
	Authorize(ctx context.Context, actor Actor) error
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, actor Actor) error

func (f AuthorizerFunc) Authorize(ctx context.Context, actor Actor) error {
	return f(ctx, actor)
}

// NewAuthorizer builds the Authorizer for policy.
func NewAuthorizer(policy Policy, roleName string, directory GuildDirectory) (Authorizer, error) {
	switch policy {
	case PolicyOpen:
		return AuthorizerFunc(func(context.Context, Actor) error { return nil }), nil
	case PolicyOwner:
		return &ownerAuthorizer{directory: directory}, nil
	case PolicyOwnerOrRole:
		roleName = strings.TrimSpace(roleName)
		if roleName == "" {
			return nil, ErrRoleRequired
		}
		return &ownerAuthorizer{directory: directory, roleName: roleName}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

type ownerAuthorizer struct {
	directory GuildDirectory
	roleName  string
}

func (a *ownerAuthorizer) Authorize(ctx context.Context, actor Actor) error {
	// direct messages have no owner
	if actor.GuildID == "" {
		return ErrNotAuthorized
	}

	ownerID, err := a.directory.OwnerID(ctx, actor.GuildID)
	if err != nil {
		return fmt.Errorf("failed to resolve guild owner: %w", err)
	}
	if ownerID == actor.UserID {
		return nil
	}
	if a.roleName == "" {
		return ErrNotAuthorized
	}

	roleID, found, err := a.directory.RoleIDByName(ctx, actor.GuildID, a.roleName)
	if err != nil {
		return fmt.Errorf("failed to resolve role %q: %w", a.roleName, err)
	}
	if found && slices.Contains(actor.RoleIDs, roleID) {
		return nil
	}
	return ErrNotAuthorized
}
