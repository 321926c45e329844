package permissions

// Policy selects who may run a restricted command.
type Policy string

const (
	// PolicyOpen lets every member through.
	PolicyOpen Policy = "open"
	// PolicyOwner admits only the guild owner.
	PolicyOwner Policy = "owner"
	// PolicyOwnerOrRole admits the guild owner or a member holding the configured role.
	PolicyOwnerOrRole Policy = "owner_or_role"
)

// IsValid checks if the policy is a known value.
func (p Policy) IsValid() bool {
	switch p {
	case PolicyOpen, PolicyOwner, PolicyOwnerOrRole:
		return true
	default:
		return false
	}
}

// String returns the string representation of the policy.
func (p Policy) String() string {
	return string(p)
}
