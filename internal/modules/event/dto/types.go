package dto

import "time"

type EventOutput struct {
	ID          string
	Title       string
	Type        string
	Icon        string
	Label       string
	Date        time.Time
	Description string
}

// SaveInput carries the editor form plus the calendar day it was opened on.
type SaveInput struct {
	Day         time.Time
	Title       string
	Type        string
	Hour        string
	Description string
}

// FieldErrors maps a form field to its message. Empty means valid.
type FieldErrors map[string]string

type TypeOption struct {
	Value string
	Icon  string
	Label string
}

// DraftOutput is the editor prefill for a new or existing event.
type DraftOutput struct {
	Title       string
	Type        string
	Hour        string
	Description string
}
