package domain_test

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"teamboard/internal/modules/event/domain"
	apperrors "teamboard/internal/platform/errors"
)

func TestDraftValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		draft domain.Draft
		want  map[string]string
	}{
		{"valid", domain.Draft{Title: "Training", Type: domain.TypeTraining, Hour: "14:00"}, nil},
		{"blank title", domain.Draft{Title: "   ", Type: domain.TypeGame, Hour: "14:00"}, map[string]string{"title": "Title is required"}},
		{"empty hour", domain.Draft{Title: "x", Type: domain.TypeGame}, map[string]string{"hour": "Hour is required"}},
		{"bad hour", domain.Draft{Title: "x", Type: domain.TypeGame, Hour: "25:10"}, map[string]string{"hour": "Hour is invalid"}},
		{"bad type", domain.Draft{Title: "x", Type: "party", Hour: "10:00"}, map[string]string{"type": "Type is invalid"}},
		{"everything", domain.Draft{}, map[string]string{"title": "Title is required", "hour": "Hour is required", "type": "Type is invalid"}},
	}
	for _, tc := range cases {
		err := tc.draft.Validate()
		if tc.want == nil {
			if err != nil {
				t.Fatalf("%s: expected valid, got %v", tc.name, err)
			}
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: validation error must match ErrInvalidInput", tc.name)
		}
		if len(verr.Fields) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, verr.Fields)
		}
		for field, msg := range tc.want {
			if verr.Fields[field] != msg {
				t.Fatalf("%s: field %s expected %q, got %q", tc.name, field, msg, verr.Fields[field])
			}
		}
	}
}

func TestNewDraftDefaults(t *testing.T) {
	t.Parallel()
	d := domain.NewDraft()
	if d.Hour != "14:00" || d.Type != domain.TypeTraining || d.Title != "" {
		t.Fatalf("unexpected defaults %+v", d)
	}
}

func TestComposeUsesViewerLocation(t *testing.T) {
	t.Parallel()
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, saoPaulo)
	at, err := domain.Compose(day, "14:00", saoPaulo)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := at.UTC().Format(time.RFC3339); got != "2024-05-10T17:00:00Z" {
		t.Fatalf("expected 17:00Z, got %s", got)
	}

	late, err := domain.Compose(day, "23:30", saoPaulo)
	if err != nil {
		t.Fatalf("compose late: %v", err)
	}
	// The UTC instant falls on the next day but the local day is unchanged.
	if late.UTC().Day() != 11 || late.In(saoPaulo).Day() != 10 {
		t.Fatalf("unexpected late instant %s", late.UTC())
	}
}

func TestComposeAcrossDSTGap(t *testing.T) {
	t.Parallel()
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	day := time.Date(2024, 3, 31, 0, 0, 0, 0, berlin)
	at, err := domain.Compose(day, "14:00", berlin)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := at.UTC().Format(time.RFC3339); got != "2024-03-31T12:00:00Z" {
		t.Fatalf("expected CEST offset after the spring change, got %s", got)
	}
}

func TestDraftForPrefillsLocalHour(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("BRT", -3*3600)
	e := domain.Event{ID: "e1", Title: "Game", Type: domain.TypeGame, Date: time.Date(2024, 5, 10, 17, 0, 0, 0, time.UTC), Description: "away"}
	d := domain.DraftFor(e, loc)
	if d.Hour != "14:00" {
		t.Fatalf("expected local hour 14:00, got %s", d.Hour)
	}
	if d.Title != "Game" || d.Type != domain.TypeGame || d.Description != "away" {
		t.Fatalf("unexpected draft %+v", d)
	}
}

func TestBuildKeepsTextAndComposes(t *testing.T) {
	t.Parallel()
	loc := time.UTC
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, loc)
	e, err := domain.Draft{Title: "  Gym  ", Type: domain.TypeGym, Hour: "7:05", Description: " legs "}.Build("e9", day, loc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if e.ID != "e9" || e.Title != "  Gym  " || e.Description != " legs " {
		t.Fatalf("unexpected event %+v", e)
	}
	if !e.Date.Equal(time.Date(2024, 5, 10, 7, 5, 0, 0, loc)) {
		t.Fatalf("unexpected date %s", e.Date)
	}
	if _, err := (domain.Draft{Type: domain.TypeGym, Hour: "07:00"}).Build("", day, loc); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestTypes(t *testing.T) {
	t.Parallel()
	want := []domain.Type{domain.TypeTraining, domain.TypeGame, domain.TypeGym, domain.TypeMeeting, domain.TypeConcentration}
	got := domain.Types()
	if len(got) != len(want) {
		t.Fatalf("expected %d types, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: %s vs %s", i, got[i], want[i])
		}
	}
	if domain.TypeConcentration.Label() != "Concentration" || domain.TypeTraining.Icon() != "⚽" {
		t.Fatalf("unexpected presentation for types")
	}
	if _, err := domain.ParseType(" GAME "); err != nil {
		t.Fatalf("parse type: %v", err)
	}
	if _, err := domain.ParseType("party"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid type, got %v", err)
	}
}
