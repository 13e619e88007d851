package domain

import (
	"sort"
	"time"
)

// Agenda groups entries by calendar day in one location.
type Agenda struct {
	loc   *time.Location
	byDay map[string][]Entry
}

func NewAgenda(entries []Entry, loc *time.Location) Agenda {
	byDay := map[string][]Entry{}
	for _, e := range entries {
		key := DayKey(e.At, loc)
		byDay[key] = append(byDay[key], e)
	}
	for _, day := range byDay {
		sort.SliceStable(day, func(i, j int) bool { return day[i].At.Before(day[j].At) })
	}
	return Agenda{loc: loc, byDay: byDay}
}

// On returns day's entries ordered by time, ties kept in input order.
func (a Agenda) On(day time.Time) []Entry {
	return a.byDay[DayKey(day, a.loc)]
}

func (a Agenda) Has(day time.Time) bool {
	return len(a.byDay[DayKey(day, a.loc)]) > 0
}

func (a Agenda) Count(day time.Time) int {
	return len(a.byDay[DayKey(day, a.loc)])
}
