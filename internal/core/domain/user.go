package domain

import "strings"

// Role is the closed set of identities a user can log in as.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

// DashboardFilter names the categorical filter a role's dashboard offers.
type DashboardFilter string

const (
	FilterByStatus   DashboardFilter = "status"
	FilterByPriority DashboardFilter = "priority"
)

// Capabilities is what a role is allowed to do. Components consult this table
// instead of comparing role names.
type Capabilities struct {
	CanSeeAllBugs     bool
	CanReportBugs     bool
	CanTransitionBugs bool
	CanDeleteBugs     bool
	DashboardFilter   DashboardFilter
}

var capabilities = map[Role]Capabilities{
	RoleAdmin: {
		CanSeeAllBugs:   true,
		CanReportBugs:   true,
		CanDeleteBugs:   true,
		DashboardFilter: FilterByStatus,
	},
	RoleDeveloper: {
		CanTransitionBugs: true,
		DashboardFilter:   FilterByPriority,
	},
}

// Roles lists every known role in display order.
var Roles = []Role{RoleAdmin, RoleDeveloper}

// ParseRole validates a raw role string. The empty string yields ErrRoleRequired.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrRoleRequired
	}
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := capabilities[r]
	return ok
}

// Capabilities returns the capability row for r. Unknown roles get no capabilities.
func (r Role) Capabilities() Capabilities {
	return capabilities[r]
}

// User models an actor. Identity is the (case-insensitive name, role) pair;
// the id is an opaque handle assigned on first login.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Matches reports whether u is the identity named by (name, role).
func (u User) Matches(name string, role Role) bool {
	return u.Role == role && strings.EqualFold(u.Name, name)
}
