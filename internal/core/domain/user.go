package domain

import "time"

// Role is the account type chosen at registration. It never changes afterwards.
type Role string

const (
	RoleUser         Role = "user"
	RoleBlogger      Role = "blogger"
	RoleRestaurateur Role = "restaurateur"
)

// Roles lists every recognised account type.
var Roles = []Role{RoleBlogger, RoleRestaurateur, RoleUser}

// Label is the human-facing name of the role used in messages.
func (r Role) Label() string {
	if r == RoleUser {
		return "typical user"
	}
	return string(r)
}

// Valid reports whether r is one of the recognised roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User models a registered account. The password hash never leaves the service layer.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"userType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the public identity returned alongside a session token.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"userType"`
}
