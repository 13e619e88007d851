package domain

import "time"

// Entry is an event as the calendar sees it.
type Entry struct {
	ID          string
	Title       string
	Type        string
	Icon        string
	Label       string
	At          time.Time
	Description string
}
