package in

import (
	"context"
	"time"

	"teamboard/internal/modules/calendar/dto"
)

type Usecase interface {
	Fetch(ctx context.Context) ([]dto.EntryOutput, error)
	Layout(input dto.LayoutInput) dto.LayoutOutput
	DayEntries(entries []dto.EntryOutput, day time.Time) []dto.EntryOutput
	Today() time.Time
	ShiftDays(day time.Time, n int) time.Time
	ShiftMonths(day time.Time, n int) time.Time
	Location() *time.Location
}
