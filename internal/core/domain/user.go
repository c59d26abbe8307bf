package domain

import "time"

// User models an authenticated actor. A user belongs to exactly one tenant and
// holds exactly one role.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	TenantID     string
	RoleID       string
	Role         *Role
	Tenant       *Tenant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleName returns the name of the user's role, or "" when it was not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
