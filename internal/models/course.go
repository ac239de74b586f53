package models

import "time"

// Course is a module offered in the current term.
type Course struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	StudentsCount int       `json:"students_count"`
	NextClass     time.Time `json:"next_class"`
}

// MaterialType enumerates supported material formats.
type MaterialType string

const (
	MaterialTypePDF   MaterialType = "PDF"
	MaterialTypeSlide MaterialType = "SLIDE"
	MaterialTypeVideo MaterialType = "VIDEO"
	MaterialTypeDoc   MaterialType = "DOC"
)

// Valid reports whether t is a known material type.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialTypePDF, MaterialTypeSlide, MaterialTypeVideo, MaterialTypeDoc:
		return true
	default:
		return false
	}
}

// CourseMaterial is a learning asset attached to a course.
type CourseMaterial struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        MaterialType `json:"type"`
	CourseCode  string       `json:"course_code"`
	UploadDate  time.Time    `json:"upload_date"`
	Size        string       `json:"size"`
	URL         *string      `json:"url,omitempty"`
	StoragePath string       `json:"-"`
	FileName    string       `json:"-"`
}

// CourseFeedback is an anonymous note a student leaves for course faculty.
type CourseFeedback struct {
	CourseCode  string    `json:"course_code"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}
