package out

import (
	"context"
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"teamboard/internal/modules/event/domain"
	eventout "teamboard/internal/modules/event/port/out"
	"teamboard/internal/platform/clock"
)

const defaultEventDuration = time.Hour

type ICSExporter struct {
	clock clock.Clock
}

func NewICSExporter(clk clock.Clock) eventout.Exporter {
	return &ICSExporter{clock: clk}
}

func (x *ICSExporter) Export(_ context.Context, events []domain.Event, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TeamBoard//Calendar Export//EN")

	stamp := x.clock.Now().UTC()
	for _, e := range events {
		uid := e.ID
		if uid == "" {
			uid = fmt.Sprintf("%d", e.Date.Unix())
		}
		vevent := cal.AddEvent(uid + "@teamboard")
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(e.Date)
		vevent.SetEndAt(e.Date.Add(defaultEventDuration))
		vevent.SetSummary(e.Title)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
		vevent.SetProperty(ics.ComponentPropertyCategories, string(e.Type))
	}
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}
