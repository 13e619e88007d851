package out_test

import (
	"context"
	"strings"
	"testing"
	"time"

	eventout "teamboard/internal/modules/event/adapter/out"
	"teamboard/internal/modules/event/domain"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }

func TestICSExporterWritesOneVEventPerEvent(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("BRT", -3*3600)
	events := []domain.Event{
		{ID: "e1", Title: "Tactical training", Type: domain.TypeTraining, Date: time.Date(2024, 5, 10, 14, 0, 0, 0, loc), Description: "bring cones"},
		{ID: "e2", Title: "Derby", Type: domain.TypeGame, Date: time.Date(2024, 5, 12, 16, 0, 0, 0, time.UTC)},
	}
	var out strings.Builder
	if err := eventout.NewICSExporter(fixedClock{}).Export(context.Background(), events, &out); err != nil {
		t.Fatalf("export: %v", err)
	}
	ics := out.String()
	if n := strings.Count(ics, "BEGIN:VEVENT"); n != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", n, ics)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"UID:e1@teamboard",
		"SUMMARY:Tactical training",
		"DTSTART:20240510T170000Z",
		"DTEND:20240510T180000Z",
		"CATEGORIES:training",
		"CATEGORIES:game",
		"DESCRIPTION:bring cones",
	} {
		if !strings.Contains(ics, want) {
			t.Fatalf("expected %q in output:\n%s", want, ics)
		}
	}
}
