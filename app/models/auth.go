package models

// Role is the demo role flag. It grants UI access only; nothing verifies it.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// AuthState is the persisted sign-in flag.
type AuthState struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the flag carries the admin role.
func (a AuthState) IsAdmin() bool { return a.Role == RoleAdmin }
