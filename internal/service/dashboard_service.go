package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

const (
	alertLimit          = 3
	studyHighlightHours = 5
	studyTrend          = "+12% vs last week"
)

var weeklyStudyHours = []dto.StudyDay{
	{Day: "Mon", Hours: 4},
	{Day: "Tue", Hours: 6},
	{Day: "Wed", Hours: 3},
	{Day: "Thu", Hours: 7},
	{Day: "Fri", Hours: 5},
	{Day: "Sat", Hours: 2},
	{Day: "Sun", Hours: 4},
}

type dashboardSchedule interface {
	Day(ctx context.Context, day time.Time) ([]dto.ScheduleEventView, error)
	Events(ctx context.Context, from, to *time.Time) ([]dto.ScheduleEventView, error)
	Location() *time.Location
}

type unreadCounter interface {
	UnreadCount(ctx context.Context) (int, error)
}

type studyTipGenerator interface {
	StudyTip(ctx context.Context, titles []string) dto.GeneratedText
}

type courseOverviewSource interface {
	List(ctx context.Context) ([]models.Course, error)
	FeedbackCounts(ctx context.Context) (map[string]int, error)
}

type atRiskSource interface {
	AtRisk(ctx context.Context) ([]models.StudentProfile, int, error)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Schedule      dashboardSchedule
	Announcements unreadCounter
	Tips          studyTipGenerator
	Courses       courseOverviewSource
	Students      atRiskSource
	Stats         func() models.UserStats
	Logger        *zap.Logger
}

// DashboardService composes the role-specific landing page.
type DashboardService struct {
	schedule      dashboardSchedule
	announcements unreadCounter
	tips          studyTipGenerator
	courses       courseOverviewSource
	students      atRiskSource
	stats         func() models.UserStats
	logger        *zap.Logger
	now           func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Stats == nil {
		params.Stats = func() models.UserStats { return models.UserStats{} }
	}
	return &DashboardService{
		schedule:      params.Schedule,
		announcements: params.Announcements,
		tips:          params.Tips,
		courses:       params.Courses,
		students:      params.Students,
		stats:         params.Stats,
		logger:        params.Logger,
		now:           time.Now,
	}
}

// Get returns the dashboard variant for the viewer's role.
func (s *DashboardService) Get(ctx context.Context, claims *models.SessionClaims) (*dto.DashboardResponse, error) {
	role := models.RoleStudent
	name := ""
	if claims != nil {
		if claims.Role.Valid() {
			role = claims.Role
		}
		name = claims.DisplayName
	}
	resp := &dto.DashboardResponse{Role: role}
	if role == models.RoleTeacher {
		teacher, err := s.teacher(ctx, name)
		if err != nil {
			return nil, err
		}
		resp.Teacher = teacher
		return resp, nil
	}
	student, err := s.student(ctx, name)
	if err != nil {
		return nil, err
	}
	resp.Student = student
	return resp, nil
}

func (s *DashboardService) student(ctx context.Context, name string) (*dto.StudentDashboardResponse, error) {
	now := s.now().In(s.schedule.Location())

	today, err := s.schedule.Day(ctx, now)
	if err != nil {
		return nil, err
	}
	alerts, err := s.upcomingAlerts(ctx, now)
	if err != nil {
		return nil, err
	}
	unread, err := s.announcements.UnreadCount(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(alerts))
	for _, e := range alerts {
		titles = append(titles, e.Title)
	}

	return &dto.StudentDashboardResponse{
		Greeting:   Greeting(now, name),
		Date:       now,
		StudyTip:   s.tips.StudyTip(ctx, titles),
		UpNext:     upNext(today, now),
		Alerts:     dto.PriorityAlerts{UnreadAnnouncements: unread, UpcomingDeadlines: alerts},
		StudyFocus: studyFocus(),
		Timeline:   timeline(today, now),
		Stats:      s.stats(),
	}, nil
}

func (s *DashboardService) teacher(ctx context.Context, name string) (*dto.TeacherDashboardResponse, error) {
	now := s.now().In(s.schedule.Location())

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	counts, err := s.courses.FeedbackCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count feedback")
	}
	overview := make([]dto.CourseOverview, 0, len(courses))
	for _, c := range courses {
		overview = append(overview, dto.CourseOverview{Course: c, FeedbackCount: counts[c.Code]})
	}

	atRisk, total, err := s.students.AtRisk(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.schedule.Day(ctx, now)
	if err != nil {
		return nil, err
	}
	unread, err := s.announcements.UnreadCount(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherDashboardResponse{
		Greeting:            Greeting(now, name),
		Date:                now,
		Courses:             overview,
		AtRiskStudents:      atRisk,
		TotalStudents:       total,
		Timeline:            timeline(today, now),
		UnreadAnnouncements: unread,
	}, nil
}

// upcomingAlerts returns up to three DEADLINE or CAT events from today onwards.
func (s *DashboardService) upcomingAlerts(ctx context.Context, now time.Time) ([]dto.ScheduleEventView, error) {
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	events, err := s.schedule.Events(ctx, &from, nil)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.ScheduleEventView, 0, alertLimit)
	for _, e := range events {
		if !e.Type.IsAlert() {
			continue
		}
		alerts = append(alerts, e)
		if len(alerts) == alertLimit {
			break
		}
	}
	return alerts, nil
}

// Greeting picks a salutation for the hour of now.
func Greeting(now time.Time, name string) string {
	var greeting string
	switch h := now.Hour(); {
	case h < 12:
		greeting = "Good morning"
	case h < 18:
		greeting = "Good afternoon"
	default:
		greeting = "Good evening"
	}
	if name = strings.TrimSpace(name); name != "" {
		return greeting + ", " + name
	}
	return greeting
}

func upNext(today []dto.ScheduleEventView, now time.Time) *dto.ScheduleEventView {
	if len(today) == 0 {
		return nil
	}
	for i := range today {
		if today[i].StartTime.After(now) {
			next := today[i]
			return &next
		}
	}
	first := today[0]
	return &first
}

func timeline(today []dto.ScheduleEventView, now time.Time) []dto.TimelineItem {
	items := make([]dto.TimelineItem, 0, len(today))
	for _, e := range today {
		items = append(items, dto.TimelineItem{ScheduleEventView: e, Completed: e.StartTime.Before(now)})
	}
	return items
}

func studyFocus() dto.StudyFocus {
	days := make([]dto.StudyDay, len(weeklyStudyHours))
	var total float64
	for i, d := range weeklyStudyHours {
		d.Highlight = d.Hours > studyHighlightHours
		days[i] = d
		total += d.Hours
	}
	return dto.StudyFocus{Days: days, TotalHours: total, Trend: studyTrend}
}
