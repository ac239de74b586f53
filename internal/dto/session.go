package dto

import (
	"time"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// CreateSessionRequest selects the role for a new portal session.
type CreateSessionRequest struct {
	Role        string `json:"role" validate:"required,role"`
	DisplayName string `json:"display_name" validate:"omitempty,max=80"`
}

// SessionResponse returns the signed role token.
type SessionResponse struct {
	Token       string          `json:"token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Subject     string          `json:"subject"`
	Role        models.UserRole `json:"role"`
	DisplayName string          `json:"display_name"`
}

// SessionInfo describes the role resolved for the current request.
type SessionInfo struct {
	Subject     string          `json:"subject"`
	Role        models.UserRole `json:"role"`
	DisplayName string          `json:"display_name"`
	Guest       bool            `json:"guest"`
}

// NavItem is one entry of the sidebar navigation.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

// PageTitle is the header text for a route.
type PageTitle struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}
