package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "teamboard/internal/platform/errors"
)

type Type string

const (
	TypeTraining      Type = "training"
	TypeGame          Type = "game"
	TypeGym           Type = "gym"
	TypeMeeting       Type = "meeting"
	TypeConcentration Type = "concentration"
)

// Types lists every type in the order the editor offers them.
func Types() []Type {
	return []Type{TypeTraining, TypeGame, TypeGym, TypeMeeting, TypeConcentration}
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	for _, known := range Types() {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown event type %q", apperrors.ErrInvalidInput, string(t))
}

func (t Type) Icon() string {
	switch t {
	case TypeTraining:
		return "⚽"
	case TypeGame:
		return "🏆"
	case TypeGym:
		return "💪"
	case TypeMeeting:
		return "🗣️"
	case TypeConcentration:
		return "🧘"
	default:
		return "•"
	}
}

var titleCaser = cases.Title(language.English)

func (t Type) Label() string {
	return titleCaser.String(string(t))
}

type Event struct {
	ID          string
	Title       string
	Type        Type
	Date        time.Time
	Description string
}
