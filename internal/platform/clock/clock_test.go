package clock_test

import (
	"testing"
	"time"

	"teamboard/internal/platform/clock"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestTodayUsesLocationCalendarDay(t *testing.T) {
	t.Parallel()
	saoPaulo := time.FixedZone("BRT", -3*3600)
	// 01:30 UTC on the 10th is still the 9th in UTC-3.
	c := fixedClock{now: time.Date(2024, 5, 10, 1, 30, 0, 0, time.UTC)}

	got := clock.Today(c, saoPaulo)
	want := time.Date(2024, 5, 9, 0, 0, 0, 0, saoPaulo)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got.Location() != saoPaulo {
		t.Fatalf("expected location %s, got %s", saoPaulo, got.Location())
	}
}
