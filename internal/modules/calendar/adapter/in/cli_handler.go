package in

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	calendardto "teamboard/internal/modules/calendar/dto"
	calendarin "teamboard/internal/modules/calendar/port/in"
)

type CLIHandler struct {
	usecase calendarin.Usecase
}

func NewCLIHandler(usecase calendarin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Fetch(ctx context.Context) ([]calendardto.EntryOutput, error) {
	return h.usecase.Fetch(ctx)
}

func (h CLIHandler) Layout(entries []calendardto.EntryOutput, selected time.Time) calendardto.LayoutOutput {
	local := selected.In(h.usecase.Location())
	return h.usecase.Layout(calendardto.LayoutInput{
		Entries:  entries,
		Year:     local.Year(),
		Month:    local.Month(),
		Selected: selected,
	})
}

func (h CLIHandler) DayEntries(entries []calendardto.EntryOutput, day time.Time) []calendardto.EntryOutput {
	return h.usecase.DayEntries(entries, day)
}

func (h CLIHandler) Today() time.Time {
	return h.usecase.Today()
}

func (h CLIHandler) ShiftDays(day time.Time, n int) time.Time {
	return h.usecase.ShiftDays(day, n)
}

func (h CLIHandler) ShiftMonths(day time.Time, n int) time.Time {
	return h.usecase.ShiftMonths(day, n)
}

func (h CLIHandler) Location() *time.Location {
	return h.usecase.Location()
}

// WriteMonth prints the grid with "*" markers and "[]" around the selected day,
// followed by the selected day's agenda.
func (h CLIHandler) WriteMonth(w io.Writer, layout calendardto.LayoutOutput) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", layout.Month, layout.Year)
	for _, wd := range layout.Weekdays {
		fmt.Fprintf(&b, " %-4s", wd.String()[:2])
	}
	b.WriteString("\n")
	for _, week := range layout.Weeks {
		for _, cell := range week {
			b.WriteString(formatCell(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Selected.In(h.usecase.Location()).Format("Monday, 02/01/2006"))
	b.WriteString("\n")
	if err := writeAgenda(&b, layout.DayEntries, h.usecase.Location()); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAgenda prints one line per entry, or "No events.".
func (h CLIHandler) WriteAgenda(w io.Writer, entries []calendardto.EntryOutput) error {
	var b strings.Builder
	if err := writeAgenda(&b, entries, h.usecase.Location()); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeAgenda(b *strings.Builder, entries []calendardto.EntryOutput, loc *time.Location) error {
	if len(entries) == 0 {
		b.WriteString("No events.\n")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(b, "  %s  %s %s  [%s]  %s\n", e.At.In(loc).Format("15:04"), e.Icon, e.Title, e.Label, e.ID)
	}
	return nil
}

func formatCell(cell calendardto.CellOutput) string {
	day := fmt.Sprintf("%2d", cell.Date.Day())
	if !cell.InMonth {
		day = " ."
	}
	marker := " "
	if cell.HasEvents {
		marker = "*"
	}
	if cell.Selected {
		return fmt.Sprintf("[%s%s]", day, marker)
	}
	if cell.Today {
		return fmt.Sprintf("(%s%s)", day, marker)
	}
	return fmt.Sprintf(" %s%s ", day, marker)
}
