package service

import (
	"context"
	"fmt"
	"time"

	"teamboard/internal/modules/calendar/domain"
	calendarout "teamboard/internal/modules/calendar/port/out"
	"teamboard/internal/platform/clock"
)

type CalendarService struct {
	source    calendarout.EventSource
	clock     clock.Clock
	loc       *time.Location
	weekStart time.Weekday
}

func NewCalendarService(source calendarout.EventSource, clk clock.Clock, loc *time.Location, weekStart time.Weekday) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{source: source, clock: clk, loc: loc, weekStart: weekStart}
}

func (s *CalendarService) Fetch(ctx context.Context) ([]domain.Entry, error) {
	entries, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return entries, nil
}

func (s *CalendarService) Month(year int, month time.Month, entries []domain.Entry, selected time.Time) (domain.Month, domain.Agenda) {
	agenda := domain.NewAgenda(entries, s.loc)
	return domain.BuildMonth(year, month, s.weekStart, s.loc, agenda, s.Today(), selected), agenda
}

func (s *CalendarService) Today() time.Time {
	return clock.Today(s.clock, s.loc)
}

func (s *CalendarService) WeekStart() time.Weekday {
	return s.weekStart
}

func (s *CalendarService) Location() *time.Location {
	return s.loc
}
