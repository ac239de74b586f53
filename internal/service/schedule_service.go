package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

const (
	dateLayout   = "2006-01-02"
	weekdayCount = 5

	// MaxWeekOffset bounds week navigation to roughly ten years either way.
	MaxWeekOffset = 520
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.ScheduleEvent, error)
	Create(ctx context.Context, event *models.ScheduleEvent) error
}

// ScheduleService buckets calendar events into the Monday-to-Friday grid.
type ScheduleService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewScheduleService constructs the service. Calendar dates are evaluated in loc.
func NewScheduleService(repo eventRepository, loc *time.Location, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger, loc: loc, now: time.Now}
}

// Location returns the portal timezone.
func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

// ParseDate parses a YYYY-MM-DD string in the portal timezone. Empty input yields today.
func (s *ScheduleService) ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now().In(s.loc), nil
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	return parsed, nil
}

// WeekStart returns midnight of the Monday of the week containing t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	sinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc)
}

// Week returns the weekday grid for the week containing anchor, shifted by offset weeks.
func (s *ScheduleService) Week(ctx context.Context, anchor time.Time, offset int) (*dto.ScheduleWeek, error) {
	if offset < -MaxWeekOffset || offset > MaxWeekOffset {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("offset must be between -%d and %d", MaxWeekOffset, MaxWeekOffset))
	}
	if anchor.IsZero() {
		anchor = s.now()
	}
	monday := WeekStart(anchor, s.loc)
	y, m, d := monday.Date()
	start := time.Date(y, m, d+7*offset, 0, 0, 0, 0, s.loc)
	sy, sm, sd := start.Date()
	end := time.Date(sy, sm, sd+weekdayCount, 0, 0, 0, 0, s.loc)

	events, err := s.repo.List(ctx, models.EventFilter{From: &start, To: &end})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events")
	}

	buckets := make(map[string][]dto.ScheduleEventView, weekdayCount)
	for _, e := range events {
		key := e.StartTime.In(s.loc).Format(dateLayout)
		buckets[key] = append(buckets[key], s.view(e))
	}

	today := s.now().In(s.loc).Format(dateLayout)
	days := make([]dto.ScheduleDay, 0, weekdayCount)
	for i := 0; i < weekdayCount; i++ {
		day := time.Date(sy, sm, sd+i, 0, 0, 0, 0, s.loc)
		key := day.Format(dateLayout)
		items := buckets[key]
		if items == nil {
			items = []dto.ScheduleEventView{}
		}
		sortViews(items)
		days = append(days, dto.ScheduleDay{
			Date:    key,
			Weekday: day.Weekday().String(),
			IsToday: key == today,
			Events:  items,
		})
	}

	friday := time.Date(sy, sm, sd+weekdayCount-1, 0, 0, 0, 0, s.loc)
	return &dto.ScheduleWeek{
		Label:     start.Format("Jan 2") + " - " + friday.Format("Jan 2, 2006"),
		StartDate: start.Format(dateLayout),
		EndDate:   friday.Format(dateLayout),
		Offset:    offset,
		Days:      days,
	}, nil
}

// Events lists events starting in [from, to), both bounds optional.
func (s *ScheduleService) Events(ctx context.Context, from, to *time.Time) ([]dto.ScheduleEventView, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}
	events, err := s.repo.List(ctx, models.EventFilter{From: from, To: to})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events")
	}
	views := make([]dto.ScheduleEventView, 0, len(events))
	for _, e := range events {
		views = append(views, s.view(e))
	}
	sortViews(views)
	return views, nil
}

// Day lists the events on the calendar date of day.
func (s *ScheduleService) Day(ctx context.Context, day time.Time) ([]dto.ScheduleEventView, error) {
	y, m, d := day.In(s.loc).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	to := time.Date(y, m, d+1, 0, 0, 0, 0, s.loc)
	return s.Events(ctx, &from, &to)
}

// CreateEvent validates and stores a new event.
func (s *ScheduleService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.ScheduleEventView, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := &models.ScheduleEvent{
		Title:       req.Title,
		Type:        models.EventType(req.Type),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    trimmedOrNil(req.Location),
		CourseCode:  trimmedOrNil(req.CourseCode),
		Description: trimmedOrNil(req.Description),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.logger.Info("event created", zap.String("event_id", event.ID), zap.String("type", string(event.Type)))
	view := s.view(*event)
	return &view, nil
}

func (s *ScheduleService) view(e models.ScheduleEvent) dto.ScheduleEventView {
	e.StartTime = e.StartTime.In(s.loc)
	e.EndTime = e.EndTime.In(s.loc)
	location := "Online"
	if e.Location != nil && strings.TrimSpace(*e.Location) != "" {
		location = *e.Location
	}
	return dto.ScheduleEventView{ScheduleEvent: e, Category: e.Type.Category(), DisplayLocation: location}
}

func sortViews(items []dto.ScheduleEventView) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime.Before(items[j].StartTime)
	})
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
