package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.StudentProfile, error)
	FindByID(ctx context.Context, id string) (*models.StudentProfile, error)
	Update(ctx context.Context, student *models.StudentProfile) error
}

type studentAnalyst interface {
	StudentAnalysis(ctx context.Context, student models.StudentProfile) dto.GeneratedText
	ForgetStudent(ctx context.Context, studentID string)
}

type rosterExporter interface {
	Roster(students []models.StudentProfile) (*ExportResult, error)
}

// semester progression for the signed-in student.
var studentProgression = []dto.ProgressPoint{
	{Name: "Wk 1", Score: 65},
	{Name: "Wk 2", Score: 70},
	{Name: "Wk 3", Score: 68},
	{Name: "Wk 4", Score: 75},
	{Name: "Wk 5", Score: 82},
	{Name: "Wk 6", Score: 88},
}

const (
	studentImprovement     = "+12% Improvement"
	studentRank            = 12
	studentClassSize       = 140
	studentPredictedScore  = 89
	studentEngagementScore = 92
)

// PerformanceService serves student analytics and the faculty roster.
type PerformanceService struct {
	students  studentRepository
	analyst   studentAnalyst
	exporter  rosterExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPerformanceService constructs the service.
func NewPerformanceService(students studentRepository, analyst studentAnalyst, exporter rosterExporter, validate *validator.Validate, logger *zap.Logger) *PerformanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PerformanceService{students: students, analyst: analyst, exporter: exporter, validator: validate, logger: logger}
}

// View returns the role-specific performance page.
func (s *PerformanceService) View(ctx context.Context, role models.UserRole) (*dto.PerformanceView, error) {
	view := &dto.PerformanceView{Role: role}
	if role == models.RoleTeacher {
		roster, err := s.Roster(ctx)
		if err != nil {
			return nil, err
		}
		view.Roster = roster
		return view, nil
	}
	view.Student = s.StudentView()
	return view, nil
}

// StudentView returns the signed-in student's semester analytics.
func (s *PerformanceService) StudentView() *dto.StudentPerformance {
	progression := make([]dto.ProgressPoint, len(studentProgression))
	copy(progression, studentProgression)
	return &dto.StudentPerformance{
		Progression:     progression,
		Improvement:     studentImprovement,
		Rank:            studentRank,
		ClassSize:       studentClassSize,
		PredictedScore:  studentPredictedScore,
		PredictedGrade:  LetterGrade(studentPredictedScore),
		EngagementScore: studentEngagementScore,
	}
}

// Roster summarises every student for faculty.
func (s *PerformanceService) Roster(ctx context.Context) (*dto.RosterSummary, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	summary := &dto.RosterSummary{Students: students}
	if len(students) == 0 {
		summary.Students = []models.StudentProfile{}
		return summary, nil
	}
	var gradeSum, attendanceSum float64
	for _, st := range students {
		if st.RiskLevel == models.RiskLevelHigh {
			summary.AtRiskCount++
		}
		gradeSum += st.AverageGrade
		attendanceSum += st.Attendance
	}
	n := float64(len(students))
	summary.AverageGrade = round1(gradeSum / n)
	summary.AverageAttendance = round1(attendanceSum / n)
	return summary, nil
}

// AtRisk returns students flagged HIGH risk.
func (s *PerformanceService) AtRisk(ctx context.Context) ([]models.StudentProfile, int, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	atRisk := make([]models.StudentProfile, 0)
	for _, st := range students {
		if st.RiskLevel == models.RiskLevelHigh {
			atRisk = append(atRisk, st)
		}
	}
	return atRisk, len(students), nil
}

// Student returns one roster entry.
func (s *PerformanceService) Student(ctx context.Context, id string) (*models.StudentProfile, error) {
	student, err := s.students.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Analysis asks for an intervention strategy for one student.
func (s *PerformanceService) Analysis(ctx context.Context, id string) (*dto.StudentAnalysis, error) {
	student, err := s.Student(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.StudentAnalysis{StudentID: student.ID, GeneratedText: s.analyst.StudentAnalysis(ctx, *student)}, nil
}

// UpdateGrade replaces a student's average grade.
func (s *PerformanceService) UpdateGrade(ctx context.Context, id string, req dto.UpdateGradeRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "average_grade must be between 0 and 100")
	}
	student, err := s.Student(ctx, id)
	if err != nil {
		return nil, err
	}
	student.AverageGrade = *req.AverageGrade
	if err := s.students.Update(ctx, student); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
	}
	s.analyst.ForgetStudent(ctx, student.ID)
	s.logger.Info("student grade updated", zap.String("student_id", student.ID), zap.Float64("average_grade", student.AverageGrade))
	return student, nil
}

// ExportRoster renders the roster as a workbook.
func (s *PerformanceService) ExportRoster(ctx context.Context) (*ExportResult, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	return s.exporter.Roster(students)
}

// LetterGrade maps a percentage to a letter grade.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 65:
		return "C+"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
