package lockout

// Role is the role assigned at account provisioning. It is read-only here;
// landing pages and permissions are resolved from the parsed value once,
// never re-matched as ad hoc strings.
type Role string

const (
	// RoleEmployee can view their own records and file requests.
	RoleEmployee Role = "employee"
	// RoleHR can manage employee records, attendance, and leave.
	RoleHR Role = "hr"
	// RoleAdmin can additionally administer user accounts.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level
func (r Role) IsAtLeast(minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleEmployee: 0,
		RoleHR:       1,
		RoleAdmin:    2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleEmployee,
		RoleHR,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
