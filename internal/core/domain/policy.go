package domain

// Operation identifiers consulted by the role gate.
const (
	OpUserCreate = "users.create"
	OpUserUpdate = "users.update"
	OpUserDelete = "users.delete"
	OpUserList   = "users.list"
)

// AccessPolicy maps a protected operation to the roles allowed to perform it.
// Operations without an entry are denied for every role.
type AccessPolicy map[string][]Role

// DefaultAccessPolicy returns the policy table for the user management API.
func DefaultAccessPolicy() AccessPolicy {
	return AccessPolicy{
		OpUserCreate: {RoleAdmin},
		OpUserUpdate: {RoleAdmin},
		OpUserDelete: {RoleAdmin},
		OpUserList:   {RoleAdmin, RoleManager, RoleEditor},
	}
}

// Allows reports whether role may perform operation.
func (p AccessPolicy) Allows(operation string, role Role) bool {
	allowed, ok := p[operation]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
