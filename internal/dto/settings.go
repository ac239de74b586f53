package dto

import "github.com/noah-isme/scholarsync-api/internal/models"

// UpdatePreferencesRequest changes notification settings.
type UpdatePreferencesRequest struct {
	ClassReminderMinutes int   `json:"class_reminder_minutes" validate:"required,oneof=15 30 60"`
	ExamAlerts           *bool `json:"exam_alerts" validate:"required"`
}

// PortalToggleResponse reports a queued portal connection change.
type PortalToggleResponse struct {
	Portal models.PortalConfig `json:"portal"`
	JobID  string              `json:"job_id"`
}
