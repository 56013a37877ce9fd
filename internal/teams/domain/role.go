package domain

// Role is a member's role on a single team. Privilege ordering is
// owner > admin > member.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// rank returns the numeric privilege level for comparisons. Unknown roles
// rank below member so malformed data always fails closed.
func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

// Assignable reports whether r may be granted via invitation or role
// change. The owner role is created with the team and never assigned.
func (r Role) Assignable() bool {
	return r == RoleAdmin || r == RoleMember
}

// CanManageMembers reports whether the role may invite, cancel invitations,
// and view the invitation list.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Outranks reports whether r is strictly senior to other.
func (r Role) Outranks(other Role) bool {
	return r.rank() > other.rank()
}
