package booking

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleStaff:
		return RoleStaff
	default:
		return RoleUser
	}
}

// ===============================
// Access decisions
// ===============================

type Decision int

const (
	Allow Decision = iota
	Deny
	// DenyNoOwner: the resource has no owner assigned, so ownership cannot
	// be established; callers must be told apart from a plain Deny.
	DenyNoOwner
)

// DecideMutation gates update/delete on an owned resource. Admins may
// always mutate; everyone else only what they own. A resource without an
// owner is admin territory.
func DecideMutation(role Role, isOwner bool, hasOwner bool) Decision {
	if role == RoleAdmin {
		return Allow
	}
	if !hasOwner {
		return DenyNoOwner
	}
	if isOwner {
		return Allow
	}
	return Deny
}

// CanSeeAllAppointments reports whether the role may list or read
// appointments belonging to other users.
func CanSeeAllAppointments(role Role) bool {
	return role == RoleAdmin || role == RoleStaff
}

// ExemptFromCap reports whether the role is allowed to exceed the booking
// cap.
func ExemptFromCap(role Role) bool {
	return role == RoleAdmin
}
