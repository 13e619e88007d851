package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "teamboard/internal/platform/errors"
)

// DefaultHour is the time offered for new events.
const DefaultHour = "14:00"

const (
	FieldTitle = "title"
	FieldType  = "type"
	FieldHour  = "hour"
)

// Draft is the editor's form state before it becomes an Event.
type Draft struct {
	Title       string
	Type        Type
	Hour        string
	Description string
}

func NewDraft() Draft {
	return Draft{Type: TypeTraining, Hour: DefaultHour}
}

// DraftFor prefills the editor from an existing event, reading the hour in loc.
func DraftFor(e Event, loc *time.Location) Draft {
	return Draft{
		Title:       e.Title,
		Type:        e.Type,
		Hour:        e.Date.In(loc).Format("15:04"),
		Description: e.Description,
	}
}

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, e.Fields[key])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == apperrors.ErrInvalidInput
}

func (d Draft) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(d.Title) == "" {
		fields[FieldTitle] = "Title is required"
	}
	if err := d.Type.Validate(); err != nil {
		fields[FieldType] = "Type is invalid"
	}
	if strings.TrimSpace(d.Hour) == "" {
		fields[FieldHour] = "Hour is required"
	} else if _, _, err := ParseHour(d.Hour); err != nil {
		fields[FieldHour] = "Hour is invalid"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ParseHour reads an HH:MM wall-clock time.
func ParseHour(raw string) (int, int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hour %q must be HH:MM", apperrors.ErrInvalidInput, raw)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// Compose places hour on day's calendar date in loc.
func Compose(day time.Time, hour string, loc *time.Location) (time.Time, error) {
	h, m, err := ParseHour(hour)
	if err != nil {
		return time.Time{}, err
	}
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), h, m, 0, 0, loc), nil
}

// Build validates the draft and turns it into an event on day. Title and
// description are sent as typed; trimming only applies to validation.
func (d Draft) Build(id string, day time.Time, loc *time.Location) (Event, error) {
	if err := d.Validate(); err != nil {
		return Event{}, err
	}
	at, err := Compose(day, d.Hour, loc)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          id,
		Title:       d.Title,
		Type:        d.Type,
		Date:        at,
		Description: d.Description,
	}, nil
}
