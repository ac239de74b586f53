package models

import "github.com/golang-jwt/jwt/v5"

// UserRole selects which half of the portal a session sees.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
)

// Valid reports whether the role is one the portal understands.
func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// SessionClaims is the payload of a role session token. It selects a view, it does not authenticate.
type SessionClaims struct {
	Role        UserRole `json:"role"`
	DisplayName string   `json:"display_name"`
	Guest       bool     `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// ViewerID identifies the browser session owning per-viewer state.
func (c *SessionClaims) ViewerID() string {
	if c == nil || c.Subject == "" {
		return "guest"
	}
	return c.Subject
}
