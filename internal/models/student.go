package models

// RiskLevel flags students who may need intervention.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// GradePoint is one sample of a student's grade trend.
type GradePoint struct {
	Month string  `json:"month"`
	Score float64 `json:"score"`
}

// StudentProfile is a roster entry visible to faculty.
type StudentProfile struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Attendance   float64      `json:"attendance"`
	AverageGrade float64      `json:"average_grade"`
	RiskLevel    RiskLevel    `json:"risk_level"`
	Grades       []GradePoint `json:"grades"`
}

// UserStats summarises a student's week for the dashboard.
type UserStats struct {
	StudyHours         float64 `json:"study_hours"`
	ClassesAttended    int     `json:"classes_attended"`
	AssignmentsPending int     `json:"assignments_pending"`
	ExamReadiness      int     `json:"exam_readiness"`
}
