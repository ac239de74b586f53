package dto

import "github.com/noah-isme/scholarsync-api/internal/models"

// AnnouncementFeed is the announcements page state for one viewer.
type AnnouncementFeed struct {
	Items       []models.Announcement `json:"items"`
	ExpandedID  *string               `json:"expanded_id"`
	UnreadCount int                   `json:"unread_count"`
}

// ToggleResponse reports the expanded announcement after a toggle.
type ToggleResponse struct {
	ExpandedID *string `json:"expanded_id"`
}

// CreateAnnouncementRequest publishes a new announcement.
type CreateAnnouncementRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,priority"`
	Sender   string `json:"sender" validate:"omitempty,max=120"`
}

// GeneratedText carries AI text and whether it is a fallback.
type GeneratedText struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
	Cached   bool   `json:"cached"`
}

// SummaryResponse is the outcome of summarising an announcement.
type SummaryResponse struct {
	AnnouncementID string `json:"announcement_id"`
	GeneratedText
}
