package rbac

// Role names carried in access tokens.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

func IsAdmin(role string) bool { return role == RoleAdmin }

func IsKnownRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
