package models

import "time"

// PortalStatus tracks transient connection work for an integration.
type PortalStatus string

const (
	PortalStatusIdle       PortalStatus = "IDLE"
	PortalStatusConnecting PortalStatus = "CONNECTING"
)

// PortalConfig describes an external learning platform integration.
type PortalConfig struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	IsConnected bool         `json:"is_connected"`
	LastSynced  *time.Time   `json:"last_synced,omitempty"`
	Logo        string       `json:"logo"`
	Status      PortalStatus `json:"status"`
}

// Preferences holds per-viewer notification settings.
type Preferences struct {
	ClassReminderMinutes int  `json:"class_reminder_minutes"`
	ExamAlerts           bool `json:"exam_alerts"`
}

// DefaultPreferences mirrors the settings page defaults.
func DefaultPreferences() Preferences {
	return Preferences{ClassReminderMinutes: 15, ExamAlerts: true}
}
