package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"teamboard/internal/modules/event/domain"
	eventdto "teamboard/internal/modules/event/dto"
	eventin "teamboard/internal/modules/event/port/in"
	"teamboard/internal/modules/event/service"
	apperrors "teamboard/internal/platform/errors"
)

type Interactor struct {
	svc *service.EventService
}

func NewInteractor(svc *service.EventService) eventin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]eventdto.EventOutput, error) {
	events, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]eventdto.EventOutput, 0, len(events))
	for _, e := range events {
		out = append(out, toOutput(e))
	}
	return out, nil
}

func (i *Interactor) Types() []eventdto.TypeOption {
	types := domain.Types()
	out := make([]eventdto.TypeOption, 0, len(types))
	for _, t := range types {
		out = append(out, eventdto.TypeOption{Value: string(t), Icon: t.Icon(), Label: t.Label()})
	}
	return out
}

func (i *Interactor) NewDraft() eventdto.DraftOutput {
	return toDraftOutput(domain.NewDraft())
}

func (i *Interactor) DraftFor(event eventdto.EventOutput) eventdto.DraftOutput {
	return toDraftOutput(domain.DraftFor(fromOutput(event), i.svc.Location()))
}

func (i *Interactor) Validate(input eventdto.SaveInput) eventdto.FieldErrors {
	err := toDraft(input).Validate()
	if err == nil {
		return nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return eventdto.FieldErrors(verr.Fields)
	}
	return eventdto.FieldErrors{"form": err.Error()}
}

func (i *Interactor) Create(ctx context.Context, input eventdto.SaveInput) (eventdto.EventOutput, error) {
	created, err := i.svc.Save(ctx, "", input.Day, toDraft(input))
	if err != nil {
		return eventdto.EventOutput{}, err
	}
	slog.Info("event created", "event_id", created.ID, "type", created.Type)
	return toOutput(created), nil
}

func (i *Interactor) Update(ctx context.Context, id string, input eventdto.SaveInput) (eventdto.EventOutput, error) {
	if strings.TrimSpace(id) == "" {
		return eventdto.EventOutput{}, fmt.Errorf("event id is required for update: %w", apperrors.ErrInvalidInput)
	}
	updated, err := i.svc.Save(ctx, id, input.Day, toDraft(input))
	if err != nil {
		return eventdto.EventOutput{}, err
	}
	slog.Info("event updated", "event_id", id)
	return toOutput(updated), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	if err := i.svc.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("event deleted", "event_id", id)
	return nil
}

func (i *Interactor) Export(ctx context.Context, w io.Writer) (int, error) {
	return i.svc.Export(ctx, w)
}

func toDraft(input eventdto.SaveInput) domain.Draft {
	return domain.Draft{
		Title:       input.Title,
		Type:        domain.Type(input.Type),
		Hour:        input.Hour,
		Description: input.Description,
	}
}

func toDraftOutput(d domain.Draft) eventdto.DraftOutput {
	return eventdto.DraftOutput{Title: d.Title, Type: string(d.Type), Hour: d.Hour, Description: d.Description}
}

func toOutput(e domain.Event) eventdto.EventOutput {
	return eventdto.EventOutput{
		ID:          e.ID,
		Title:       e.Title,
		Type:        string(e.Type),
		Icon:        e.Type.Icon(),
		Label:       e.Type.Label(),
		Date:        e.Date,
		Description: e.Description,
	}
}

func fromOutput(e eventdto.EventOutput) domain.Event {
	return domain.Event{ID: e.ID, Title: e.Title, Type: domain.Type(e.Type), Date: e.Date, Description: e.Description}
}
