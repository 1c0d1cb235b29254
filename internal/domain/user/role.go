package user

// Role is the closed set of caller roles. The token carries the role as a
// plain string; anything outside this set parses to RoleView so an unknown
// role never gains write access.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleHR      Role = "hr"
	RoleManager Role = "manager"
	RoleView    Role = "view"
)

// ParseRole maps a claim string onto the closed role set. An empty role
// defaults to manager, matching how existing tokens were issued; unknown
// values degrade to view.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleHR, RoleManager, RoleView:
		return Role(s)
	case "":
		return RoleManager
	default:
		return RoleView
	}
}
