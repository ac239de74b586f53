package dto

import (
	"io"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// CreateMaterialRequest describes an uploaded course asset.
type CreateMaterialRequest struct {
	Title string `json:"title" form:"title" validate:"omitempty,max=200"`
	Type  string `json:"type" form:"type" validate:"omitempty,material_type"`
}

// MaterialUpload is an optional file attached to CreateMaterialRequest.
type MaterialUpload struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

// FeedbackRequest is a student's note to course faculty.
type FeedbackRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// FeedbackAck acknowledges submitted feedback.
type FeedbackAck struct {
	Message  string                `json:"message"`
	Feedback models.CourseFeedback `json:"feedback"`
}

// CourseInsights is the AI read of a course's feedback.
type CourseInsights struct {
	CourseCode    string `json:"course_code"`
	FeedbackCount int    `json:"feedback_count"`
	GeneratedText
}
