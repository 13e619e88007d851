package out

import (
	"context"

	"teamboard/internal/modules/calendar/domain"
	calendarout "teamboard/internal/modules/calendar/port/out"
	eventin "teamboard/internal/modules/event/port/in"
)

type EventSourceAdapter struct {
	events eventin.Usecase
}

func NewEventSourceAdapter(events eventin.Usecase) calendarout.EventSource {
	return &EventSourceAdapter{events: events}
}

func (a *EventSourceAdapter) List(ctx context.Context) ([]domain.Entry, error) {
	events, err := a.events.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(events))
	for _, e := range events {
		entries = append(entries, domain.Entry{
			ID:          e.ID,
			Title:       e.Title,
			Type:        e.Type,
			Icon:        e.Icon,
			Label:       e.Label,
			At:          e.Date,
			Description: e.Description,
		})
	}
	return entries, nil
}
