package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"teamboard/internal/modules/event/domain"
	eventout "teamboard/internal/modules/event/port/out"
	"teamboard/internal/platform/apiclient"
	apperrors "teamboard/internal/platform/errors"
)

type HTTPEventRepository struct {
	api   *apiclient.Client
	creds eventout.CredentialSource
}

func NewHTTPEventRepository(api *apiclient.Client, creds eventout.CredentialSource) eventout.Repository {
	return &HTTPEventRepository{api: api, creds: creds}
}

type wireEvent struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func (r *HTTPEventRepository) List(ctx context.Context) ([]domain.Event, error) {
	token, err := r.creds.Credential(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := r.api.Request(ctx, token).Get("/events")
	if err := apiclient.Check(resp, err); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	payload := struct {
		Events []wireEvent `json:"events"`
	}{}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("list events: %w: decode response: %v", apperrors.ErrServer, err)
	}
	events := make([]domain.Event, 0, len(payload.Events))
	for _, w := range payload.Events {
		events = append(events, fromWire(w))
	}
	return events, nil
}

func (r *HTTPEventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	token, err := r.creds.Credential(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	resp, err := r.api.Request(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(toWire(event)).
		Post("/events")
	if err := apiclient.Check(resp, err); err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	return decodeSaved(resp.Body(), event), nil
}

func (r *HTTPEventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	token, err := r.creds.Credential(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	resp, err := r.api.Request(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(toWire(event)).
		Put("/events/" + url.PathEscape(event.ID))
	if err := apiclient.Check(resp, err); err != nil {
		return domain.Event{}, fmt.Errorf("update event %s: %w", event.ID, err)
	}
	return decodeSaved(resp.Body(), event), nil
}

func (r *HTTPEventRepository) Delete(ctx context.Context, id string) error {
	token, err := r.creds.Credential(ctx)
	if err != nil {
		return err
	}
	resp, err := r.api.Request(ctx, token).Delete("/events/" + url.PathEscape(id))
	if err := apiclient.Check(resp, err); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

// decodeSaved accepts a bare event or one wrapped in {"event": ...}. The board
// refetches after every mutation, so an unreadable body falls back to what was sent.
func decodeSaved(body []byte, sent domain.Event) domain.Event {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return sent
	}
	wrapped := struct {
		Event *wireEvent `json:"event"`
	}{}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Event != nil && wrapped.Event.ID != "" {
		return fromWire(*wrapped.Event)
	}
	bare := wireEvent{}
	if err := json.Unmarshal(body, &bare); err == nil && bare.ID != "" {
		return fromWire(bare)
	}
	return sent
}

func toWire(e domain.Event) wireEvent {
	return wireEvent{
		Title:       e.Title,
		Type:        string(e.Type),
		Description: e.Description,
		Date:        e.Date.UTC(),
	}
}

func fromWire(w wireEvent) domain.Event {
	return domain.Event{
		ID:          w.ID,
		Title:       w.Title,
		Type:        domain.Type(w.Type),
		Date:        w.Date,
		Description: w.Description,
	}
}
