package domain

import "time"

type Cell struct {
	Date      time.Time
	InMonth   bool
	Today     bool
	Selected  bool
	HasEvents bool
	Count     int
}

type Month struct {
	Year  int
	Month time.Month
	Weeks [][7]Cell
}

// BuildMonth lays out the weeks covering year/month, each starting on weekStart.
func BuildMonth(year int, month time.Month, weekStart time.Weekday, loc *time.Location, agenda Agenda, today, selected time.Time) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	days := DaysIn(year, month, loc)
	weeks := (lead + days + 6) / 7

	out := Month{Year: year, Month: month, Weeks: make([][7]Cell, weeks)}
	for i := 0; i < weeks*7; i++ {
		date := time.Date(year, month, 1-lead+i, 0, 0, 0, 0, loc)
		count := agenda.Count(date)
		out.Weeks[i/7][i%7] = Cell{
			Date:      date,
			InMonth:   date.Month() == month,
			Today:     SameDay(date, today, loc),
			Selected:  SameDay(date, selected, loc),
			HasEvents: count > 0,
			Count:     count,
		}
	}
	return out
}

// Weekdays lists the column order for weekStart.
func Weekdays(weekStart time.Weekday) [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}
