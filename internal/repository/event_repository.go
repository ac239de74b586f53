package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// EventRepository keeps calendar entries in memory.
type EventRepository struct {
	mu     sync.RWMutex
	events []models.ScheduleEvent
}

// NewEventRepository seeds the repository with the provided events.
func NewEventRepository(seed []models.ScheduleEvent) *EventRepository {
	events := make([]models.ScheduleEvent, len(seed))
	copy(events, seed)
	return &EventRepository{events: events}
}

// List returns events overlapping the filter window, ordered by start time.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.ScheduleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.ScheduleEvent, 0, len(r.events))
	for _, e := range r.events {
		if filter.From != nil && e.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.StartTime.Before(*filter.To) {
			continue
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

// Create appends a new event, assigning an id when missing.
func (r *EventRepository) Create(ctx context.Context, event *models.ScheduleEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}
