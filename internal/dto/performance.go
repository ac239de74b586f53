package dto

import "github.com/noah-isme/scholarsync-api/internal/models"

// ProgressPoint is one week of the semester progression chart.
type ProgressPoint struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// StudentPerformance is the student analytics view.
type StudentPerformance struct {
	Progression     []ProgressPoint `json:"progression"`
	Improvement     string          `json:"improvement"`
	Rank            int             `json:"rank"`
	ClassSize       int             `json:"class_size"`
	PredictedScore  float64         `json:"predicted_score"`
	PredictedGrade  string          `json:"predicted_grade"`
	EngagementScore int             `json:"engagement_score"`
}

// RosterSummary is the faculty view of all students.
type RosterSummary struct {
	Students          []models.StudentProfile `json:"students"`
	AtRiskCount       int                     `json:"at_risk_count"`
	AverageGrade      float64                 `json:"average_grade"`
	AverageAttendance float64                 `json:"average_attendance"`
}

// PerformanceView is returned by the role-aware performance endpoint.
type PerformanceView struct {
	Role    models.UserRole     `json:"role"`
	Student *StudentPerformance `json:"student,omitempty"`
	Roster  *RosterSummary      `json:"roster,omitempty"`
}

// UpdateGradeRequest replaces a student's average grade.
type UpdateGradeRequest struct {
	AverageGrade *float64 `json:"average_grade" validate:"required,gte=0,lte=100"`
}

// StudentAnalysis is an AI intervention strategy for one student.
type StudentAnalysis struct {
	StudentID string `json:"student_id"`
	GeneratedText
}
