package models

// Principal is the authenticated identity attached to a request. Role comes
// from the token claim as issued and is not re-read from the users table.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// IsAdmin reports whether the principal carries the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
