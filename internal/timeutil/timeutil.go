// Package timeutil provides utility functions for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// FormatDuration renders a duration as HH:MM:SS. Durations of a day or
// more keep accumulating hours instead of rolling over.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSecs := int64(d.Seconds())
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	seconds := totalSecs % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatDurationShort renders a duration as HH:MM, dropping seconds.
func FormatDurationShort(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSecs := int64(d.Seconds())

	return fmt.Sprintf("%02d:%02d", totalSecs/3600, (totalSecs%3600)/60)
}

// MonthLabel returns the month of t in the form YYYY-MM.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// ISOWeekLabel returns the ISO week of t in the form YYYY-Www.
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfNextMonth returns midnight on the first day of the month
// following t's month.
func StartOfNextMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

var (
	yearMonthDayRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearMonthRegex    = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearWeekRegex     = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)
)

// ParseWindowBound parses a report window boundary. Accepted forms are
// YYYY-MM-DD, YYYY-MM, and YYYY-Www (ISO week, resolving to the Monday
// of that week). The result is midnight local time.
func ParseWindowBound(value string) (time.Time, error) {
	switch {
	case yearMonthDayRegex.MatchString(value):
		return time.ParseInLocation(time.DateOnly, value, time.Local)
	case yearMonthRegex.MatchString(value):
		return time.ParseInLocation("2006-01", value, time.Local)
	case yearWeekRegex.MatchString(value):
		m := yearWeekRegex.FindStringSubmatch(value)

		var year, week int

		fmt.Sscanf(m[1], "%d", &year)
		fmt.Sscanf(m[2], "%d", &week)

		return mondayOfISOWeek(year, week), nil
	}

	return time.Time{}, fmt.Errorf(
		"%q is not in one of the formats YYYY-MM, YYYY-MM-DD or YYYY-Www",
		value,
	)
}

// mondayOfISOWeek returns midnight on the Monday of the given ISO week.
func mondayOfISOWeek(year, week int) time.Time {
	// January 4th is always in ISO week 1.
	t := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)

	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}

	monday := t.AddDate(0, 0, -(wd - 1))

	return monday.AddDate(0, 0, (week-1)*7)
}

// ParseDay parses a date in the form YYYY-MM-DD into midnight local time.
func ParseDay(value string) (time.Time, error) {
	if !yearMonthDayRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf(
			"%q is not in the format YYYY-MM-DD",
			value,
		)
	}

	return time.ParseInLocation(time.DateOnly, value, time.Local)
}
