package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// CourseRepository stores courses, their materials and student feedback.
type CourseRepository struct {
	mu        sync.RWMutex
	courses   []models.Course
	materials []models.CourseMaterial
	feedback  map[string][]models.CourseFeedback
}

// NewCourseRepository creates the repository from seed data.
func NewCourseRepository(courses []models.Course, materials []models.CourseMaterial, feedback []models.CourseFeedback) *CourseRepository {
	repo := &CourseRepository{
		courses:   append([]models.Course(nil), courses...),
		materials: append([]models.CourseMaterial(nil), materials...),
		feedback:  make(map[string][]models.CourseFeedback),
	}
	for _, fb := range feedback {
		repo.feedback[fb.CourseCode] = append(repo.feedback[fb.CourseCode], fb)
	}
	return repo
}

// List returns all courses in catalogue order.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Course(nil), r.courses...), nil
}

// Get fetches a course by code.
func (r *CourseRepository) Get(ctx context.Context, code string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.courses {
		if strings.EqualFold(c.Code, code) {
			course := c
			return &course, nil
		}
	}
	return nil, ErrNotFound
}

// ListMaterials returns a course's materials, newest upload first, optionally filtered by title.
func (r *CourseRepository) ListMaterials(ctx context.Context, code, search string) ([]models.CourseMaterial, error) {
	needle := strings.ToLower(strings.TrimSpace(search))
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.CourseMaterial, 0)
	for _, m := range r.materials {
		if !strings.EqualFold(m.CourseCode, code) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		result = append(result, m)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UploadDate.After(result[j].UploadDate)
	})
	return result, nil
}

// CreateMaterial appends a material.
func (r *CourseRepository) CreateMaterial(ctx context.Context, material *models.CourseMaterial) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials = append(r.materials, *material)
	return nil
}

// GetMaterial fetches a material by id.
func (r *CourseRepository) GetMaterial(ctx context.Context, id string) (*models.CourseMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.materials {
		if m.ID == id {
			material := m
			return &material, nil
		}
	}
	return nil, ErrNotFound
}

// AddFeedback appends feedback to a course.
func (r *CourseRepository) AddFeedback(ctx context.Context, feedback models.CourseFeedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback[feedback.CourseCode] = append(r.feedback[feedback.CourseCode], feedback)
	return nil
}

// ListFeedback returns feedback for a course in submission order.
func (r *CourseRepository) ListFeedback(ctx context.Context, code string) ([]models.CourseFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.CourseFeedback(nil), r.feedback[code]...), nil
}

// FeedbackCounts returns the number of feedback items per course code.
func (r *CourseRepository) FeedbackCounts(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int, len(r.feedback))
	for code, items := range r.feedback {
		counts[code] = len(items)
	}
	return counts, nil
}
