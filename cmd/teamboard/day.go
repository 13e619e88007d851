package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	apperrors "teamboard/internal/platform/errors"
)

var dayParser = newDayParser()

func newDayParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// parseDay resolves --day values to local midnight. Empty means today; ISO dates
// are exact; anything else goes through the natural-language parser.
func parseDay(text string, now time.Time, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	base := now.In(loc)
	if text == "" {
		return startOfDay(base), nil
	}
	if day, err := time.ParseInLocation("2006-01-02", text, loc); err == nil {
		return day, nil
	}
	result, err := dayParser.Parse(text, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", text, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("day %q not understood: %w", text, apperrors.ErrInvalidInput)
	}
	return startOfDay(result.Time.In(loc)), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
