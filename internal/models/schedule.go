package models

import "time"

// EventType classifies calendar entries.
type EventType string

const (
	EventTypeClass      EventType = "CLASS"
	EventTypeExam       EventType = "EXAM"
	EventTypeCAT        EventType = "CAT"
	EventTypeDeadline   EventType = "DEADLINE"
	EventTypeStudyBlock EventType = "STUDY_BLOCK"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeClass, EventTypeExam, EventTypeCAT, EventTypeDeadline, EventTypeStudyBlock:
		return true
	default:
		return false
	}
}

// EventCategory groups event types for presentation.
type EventCategory string

const (
	EventCategoryAssessment EventCategory = "ASSESSMENT"
	EventCategoryDeadline   EventCategory = "DEADLINE"
	EventCategorySession    EventCategory = "SESSION"
)

// Category maps an event type onto its display group.
func (t EventType) Category() EventCategory {
	switch t {
	case EventTypeCAT, EventTypeExam:
		return EventCategoryAssessment
	case EventTypeDeadline:
		return EventCategoryDeadline
	default:
		return EventCategorySession
	}
}

// IsAlert reports whether the event should surface as a priority alert.
func (t EventType) IsAlert() bool {
	return t == EventTypeDeadline || t == EventTypeCAT
}

// ScheduleEvent is a single calendar entry.
type ScheduleEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        EventType `json:"type"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    *string   `json:"location,omitempty"`
	CourseCode  *string   `json:"course_code,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// EventFilter narrows event listings to a half-open time range.
type EventFilter struct {
	From *time.Time
	To   *time.Time
}

// SyncState describes the calendar sync lifecycle.
type SyncState string

const (
	SyncStateIdle    SyncState = "IDLE"
	SyncStateSyncing SyncState = "SYNCING"
	SyncStateSynced  SyncState = "SYNCED"
)
