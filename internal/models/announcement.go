package models

import "time"

// AnnouncementPriority defines ordering for announcements.
type AnnouncementPriority string

const (
	AnnouncementPriorityHigh   AnnouncementPriority = "HIGH"
	AnnouncementPriorityMedium AnnouncementPriority = "MEDIUM"
	AnnouncementPriorityLow    AnnouncementPriority = "LOW"
)

// Valid reports whether p is a known priority.
func (p AnnouncementPriority) Valid() bool {
	switch p {
	case AnnouncementPriorityHigh, AnnouncementPriorityMedium, AnnouncementPriorityLow:
		return true
	default:
		return false
	}
}

// Announcement is a message broadcast to the campus feed.
type Announcement struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Sender   string               `json:"sender"`
	Date     time.Time            `json:"date"`
	Content  string               `json:"content"`
	IsRead   bool                 `json:"is_read"`
	Priority AnnouncementPriority `json:"priority"`
	Summary  *string              `json:"summary,omitempty"`
}
