package dto

import (
	"time"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// TimelineItem is an event on today's timeline.
type TimelineItem struct {
	ScheduleEventView
	Completed bool `json:"completed"`
}

// StudyDay is one bar of the weekly study focus chart.
type StudyDay struct {
	Day       string  `json:"day"`
	Hours     float64 `json:"hours"`
	Highlight bool    `json:"highlight"`
}

// StudyFocus is the weekly study chart.
type StudyFocus struct {
	Days       []StudyDay `json:"days"`
	TotalHours float64    `json:"total_hours"`
	Trend      string     `json:"trend"`
}

// PriorityAlerts groups what needs the student's attention.
type PriorityAlerts struct {
	UnreadAnnouncements int                 `json:"unread_announcements"`
	UpcomingDeadlines   []ScheduleEventView `json:"upcoming_deadlines"`
}

// StudentDashboardResponse is the student landing page.
type StudentDashboardResponse struct {
	Greeting   string             `json:"greeting"`
	Date       time.Time          `json:"date"`
	StudyTip   GeneratedText      `json:"study_tip"`
	UpNext     *ScheduleEventView `json:"up_next,omitempty"`
	Alerts     PriorityAlerts     `json:"alerts"`
	StudyFocus StudyFocus         `json:"study_focus"`
	Timeline   []TimelineItem     `json:"timeline"`
	Stats      models.UserStats   `json:"stats"`
}

// CourseOverview is a course card on the faculty dashboard.
type CourseOverview struct {
	models.Course
	FeedbackCount int `json:"feedback_count"`
}

// TeacherDashboardResponse is the faculty landing page.
type TeacherDashboardResponse struct {
	Greeting            string                  `json:"greeting"`
	Date                time.Time               `json:"date"`
	Courses             []CourseOverview        `json:"courses"`
	AtRiskStudents      []models.StudentProfile `json:"at_risk_students"`
	TotalStudents       int                     `json:"total_students"`
	Timeline            []TimelineItem          `json:"timeline"`
	UnreadAnnouncements int                     `json:"unread_announcements"`
}

// DashboardResponse wraps the role-specific variant.
type DashboardResponse struct {
	Role    models.UserRole           `json:"role"`
	Student *StudentDashboardResponse `json:"student,omitempty"`
	Teacher *TeacherDashboardResponse `json:"teacher,omitempty"`
}
