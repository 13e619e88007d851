package usecase

import (
	"context"
	"time"

	"teamboard/internal/modules/calendar/domain"
	calendardto "teamboard/internal/modules/calendar/dto"
	calendarin "teamboard/internal/modules/calendar/port/in"
	"teamboard/internal/modules/calendar/service"
)

type Interactor struct {
	svc *service.CalendarService
}

func NewInteractor(svc *service.CalendarService) calendarin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Fetch(ctx context.Context) ([]calendardto.EntryOutput, error) {
	entries, err := i.svc.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return toEntryOutputs(entries), nil
}

func (i *Interactor) Layout(input calendardto.LayoutInput) calendardto.LayoutOutput {
	entries := fromEntryOutputs(input.Entries)
	month, agenda := i.svc.Month(input.Year, input.Month, entries, input.Selected)

	out := calendardto.LayoutOutput{
		Year:       month.Year,
		Month:      month.Month,
		Weeks:      make([][]calendardto.CellOutput, 0, len(month.Weeks)),
		Selected:   input.Selected,
		DayEntries: toEntryOutputs(agenda.On(input.Selected)),
	}
	for _, wd := range domain.Weekdays(i.svc.WeekStart()) {
		out.Weekdays = append(out.Weekdays, wd)
	}
	for _, week := range month.Weeks {
		row := make([]calendardto.CellOutput, 0, len(week))
		for _, cell := range week {
			row = append(row, calendardto.CellOutput{
				Date:      cell.Date,
				InMonth:   cell.InMonth,
				Today:     cell.Today,
				Selected:  cell.Selected,
				HasEvents: cell.HasEvents,
				Count:     cell.Count,
			})
		}
		out.Weeks = append(out.Weeks, row)
	}
	return out
}

func (i *Interactor) DayEntries(entries []calendardto.EntryOutput, day time.Time) []calendardto.EntryOutput {
	agenda := domain.NewAgenda(fromEntryOutputs(entries), i.svc.Location())
	return toEntryOutputs(agenda.On(day))
}

func (i *Interactor) Today() time.Time {
	return i.svc.Today()
}

func (i *Interactor) ShiftDays(day time.Time, n int) time.Time {
	return domain.ShiftDays(day, n, i.svc.Location())
}

func (i *Interactor) ShiftMonths(day time.Time, n int) time.Time {
	return domain.ShiftMonths(day, n, i.svc.Location())
}

func (i *Interactor) Location() *time.Location {
	return i.svc.Location()
}

func toEntryOutputs(entries []domain.Entry) []calendardto.EntryOutput {
	out := make([]calendardto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, calendardto.EntryOutput{
			ID:          e.ID,
			Title:       e.Title,
			Type:        e.Type,
			Icon:        e.Icon,
			Label:       e.Label,
			At:          e.At,
			Description: e.Description,
		})
	}
	return out
}

func fromEntryOutputs(entries []calendardto.EntryOutput) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Entry{
			ID:          e.ID,
			Title:       e.Title,
			Type:        e.Type,
			Icon:        e.Icon,
			Label:       e.Label,
			At:          e.At,
			Description: e.Description,
		})
	}
	return out
}
