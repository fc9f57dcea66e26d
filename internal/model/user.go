package model

import "time"

// AdminRoleID is the role id the backend assigns to administrators.
const AdminRoleID = 1

// Role is a named permission level.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserAccount is an account as the backend returns it. Password holds the
// stored bcrypt hash, never a plaintext password.
type UserAccount struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"`
	RoleID    int       `json:"role_id"`
	Role      *Role     `json:"role,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// RoleName returns a display name for the account's role, preferring the
// embedded role record when the backend sent one.
func (u UserAccount) RoleName() string {
	if u.Role != nil && u.Role.Name != "" {
		return u.Role.Name
	}
	if u.RoleID == AdminRoleID {
		return "Admin"
	}
	return "User"
}
