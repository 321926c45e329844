package permissions

import "errors"

var (
	// ErrNotAuthorized is returned when the actor fails the policy.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrUnknownPolicy is returned for a policy string outside the known set.
	ErrUnknownPolicy = errors.New("unknown authorization policy")
	// ErrRoleRequired is returned when owner_or_role has no role configured.
	ErrRoleRequired = errors.New("owner_or_role policy requires a role name")
)
