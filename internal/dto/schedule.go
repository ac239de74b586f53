package dto

import (
	"time"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// ScheduleEventView decorates an event with presentation hints.
type ScheduleEventView struct {
	models.ScheduleEvent
	Category        models.EventCategory `json:"category"`
	DisplayLocation string               `json:"display_location"`
}

// ScheduleDay is one weekday column of the calendar grid.
type ScheduleDay struct {
	Date    string              `json:"date"`
	Weekday string              `json:"weekday"`
	IsToday bool                `json:"is_today"`
	Events  []ScheduleEventView `json:"events"`
}

// ScheduleWeek is the Monday-to-Friday grid.
type ScheduleWeek struct {
	Label     string        `json:"label"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Offset    int           `json:"offset"`
	Days      []ScheduleDay `json:"days"`
}

// CreateEventRequest adds a calendar entry.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Type        string    `json:"type" validate:"required,event_type"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	Location    *string   `json:"location" validate:"omitempty,max=120"`
	CourseCode  *string   `json:"course_code" validate:"omitempty,max=20"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
}

// SyncStatusResponse reports the calendar sync lifecycle.
type SyncStatusResponse struct {
	State      models.SyncState `json:"state"`
	LastSynced *time.Time       `json:"last_synced,omitempty"`
	JobID      string           `json:"job_id,omitempty"`
}
