package authz

// Role is the role claim carried by a session. An empty Role means the
// request is unauthenticated.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
	RoleNone    Role = ""
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// AccessClass declares which roles may reach a route or action. It is a
// static policy input, not a stored entity.
type AccessClass string

const (
	Public         AccessClass = "PUBLIC"
	Authenticated  AccessClass = "AUTHENTICATED"
	AdminOnly      AccessClass = "ADMIN_ONLY"
	AdminOrManager AccessClass = "ADMIN_OR_MANAGER"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize is the single source of truth for route and action access.
// It is a pure function of its inputs; every screen boundary and every
// mutation consults it instead of carrying its own role check.
func Authorize(class AccessClass, role Role) Decision {
	switch class {
	case Public:
		return Allow
	case Authenticated:
		if role.Valid() {
			return Allow
		}
	case AdminOnly:
		if role == RoleAdmin {
			return Allow
		}
	case AdminOrManager:
		if role == RoleAdmin || role == RoleManager {
			return Allow
		}
	}
	return Deny
}

// CanRecordTransactions reports whether role may record purchases and
// sales. Stock transactions are manager work: ADMIN is deliberately
// denied alongside STAFF, it does not inherit the manager's exclusive
// actions.
func CanRecordTransactions(role Role) bool {
	return role == RoleManager
}
