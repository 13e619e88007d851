package dto

import "time"

type EntryOutput struct {
	ID          string
	Title       string
	Type        string
	Icon        string
	Label       string
	At          time.Time
	Description string
}

type LayoutInput struct {
	Entries  []EntryOutput
	Year     int
	Month    time.Month
	Selected time.Time
}

type CellOutput struct {
	Date      time.Time
	InMonth   bool
	Today     bool
	Selected  bool
	HasEvents bool
	Count     int
}

type LayoutOutput struct {
	Year       int
	Month      time.Month
	Weekdays   []time.Weekday
	Weeks      [][]CellOutput
	Selected   time.Time
	DayEntries []EntryOutput
}
