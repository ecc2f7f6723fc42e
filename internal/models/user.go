package models

// Role decides which load path runs and which view is shown.
type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
	RoleAdmin  Role = "admin"
)

// ParseRole returns the role for s; anything unrecognised is treated as parent.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleChild:
		return RoleChild
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleParent
	}
}

type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// IsChild reports whether the user gets the read-only "my goal" view.
func (u User) IsChild() bool {
	return u.Role == RoleChild
}
