package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"teamboard/internal/modules/event/domain"
	eventout "teamboard/internal/modules/event/port/out"
	apperrors "teamboard/internal/platform/errors"
)

type EventService struct {
	repo     eventout.Repository
	exporter eventout.Exporter
	loc      *time.Location
}

func NewEventService(repo eventout.Repository, exporter eventout.Exporter, loc *time.Location) *EventService {
	if loc == nil {
		loc = time.Local
	}
	return &EventService{repo: repo, exporter: exporter, loc: loc}
}

func (s *EventService) Location() *time.Location {
	return s.loc
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}

// Save validates before any network call. An empty id creates.
func (s *EventService) Save(ctx context.Context, id string, day time.Time, draft domain.Draft) (domain.Event, error) {
	event, err := draft.Build(id, day, s.loc)
	if err != nil {
		return domain.Event{}, err
	}
	if id == "" {
		return s.repo.Create(ctx, event)
	}
	return s.repo.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: event id is required", apperrors.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

func (s *EventService) Export(ctx context.Context, w io.Writer) (int, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.exporter.Export(ctx, events, w); err != nil {
		return 0, fmt.Errorf("export events: %w", err)
	}
	return len(events), nil
}
