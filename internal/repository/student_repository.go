package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// StudentRepository keeps the faculty roster in memory.
type StudentRepository struct {
	mu       sync.RWMutex
	students []models.StudentProfile
}

// NewStudentRepository creates the repository.
func NewStudentRepository(seed []models.StudentProfile) *StudentRepository {
	students := make([]models.StudentProfile, len(seed))
	for i, s := range seed {
		students[i] = cloneStudent(s)
	}
	return &StudentRepository{students: students}
}

// List returns the roster in seed order.
func (r *StudentRepository) List(ctx context.Context) ([]models.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.StudentProfile, len(r.students))
	for i, s := range r.students {
		result[i] = cloneStudent(s)
	}
	return result, nil
}

// FindByID fetches one student.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.students {
		if s.ID == id {
			student := cloneStudent(s)
			return &student, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces a stored student profile.
func (r *StudentRepository) Update(ctx context.Context, student *models.StudentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.students {
		if r.students[i].ID == student.ID {
			r.students[i] = cloneStudent(*student)
			return nil
		}
	}
	return ErrNotFound
}

func cloneStudent(s models.StudentProfile) models.StudentProfile {
	s.Grades = append([]models.GradePoint(nil), s.Grades...)
	return s
}
