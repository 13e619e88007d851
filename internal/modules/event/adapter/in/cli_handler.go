package in

import (
	"context"
	"io"
	"time"

	eventdto "teamboard/internal/modules/event/dto"
	eventin "teamboard/internal/modules/event/port/in"
)

type CLIHandler struct {
	usecase eventin.Usecase
}

func NewCLIHandler(usecase eventin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]eventdto.EventOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Types() []eventdto.TypeOption {
	return h.usecase.Types()
}

func (h CLIHandler) NewDraft() eventdto.DraftOutput {
	return h.usecase.NewDraft()
}

func (h CLIHandler) DraftFor(event eventdto.EventOutput) eventdto.DraftOutput {
	return h.usecase.DraftFor(event)
}

func (h CLIHandler) Validate(input eventdto.SaveInput) eventdto.FieldErrors {
	return h.usecase.Validate(input)
}

func (h CLIHandler) Create(ctx context.Context, input eventdto.SaveInput) (eventdto.EventOutput, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, id string, input eventdto.SaveInput) (eventdto.EventOutput, error) {
	return h.usecase.Update(ctx, id, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Export(ctx context.Context, w io.Writer) (int, error) {
	return h.usecase.Export(ctx, w)
}

// Find looks an event up by id in the current collection.
func (h CLIHandler) Find(ctx context.Context, id string) (eventdto.EventOutput, bool, error) {
	events, err := h.usecase.List(ctx)
	if err != nil {
		return eventdto.EventOutput{}, false, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, true, nil
		}
	}
	return eventdto.EventOutput{}, false, nil
}

// SaveInputFor merges overrides into the current event. Zero values keep the event's own.
func (h CLIHandler) SaveInputFor(event eventdto.EventOutput, loc *time.Location, overrides eventdto.SaveInput) eventdto.SaveInput {
	draft := h.usecase.DraftFor(event)
	local := event.Date.In(loc)
	input := eventdto.SaveInput{
		Day:         time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
		Title:       draft.Title,
		Type:        draft.Type,
		Hour:        draft.Hour,
		Description: draft.Description,
	}
	if !overrides.Day.IsZero() {
		input.Day = overrides.Day
	}
	if overrides.Title != "" {
		input.Title = overrides.Title
	}
	if overrides.Type != "" {
		input.Type = overrides.Type
	}
	if overrides.Hour != "" {
		input.Hour = overrides.Hour
	}
	if overrides.Description != "" {
		input.Description = overrides.Description
	}
	return input
}
