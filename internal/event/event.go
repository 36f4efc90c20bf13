// Package event defines the atomic log record and its on-disk line codec.
package event

import (
	"fmt"
	"strings"
	"time"
)

// Separator divides the fields of a serialized record.
const Separator = "|"

// Category classifies a record as a session or a task event.
type Category string

const (
	CategorySession Category = "session"
	CategoryTask    Category = "task"
)

// Type marks a record as the beginning or the end of a tracked period.
type Type string

const (
	TypeStart Type = "start"
	TypeStop  Type = "stop"
)

// ParseCategory validates a raw category value.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategorySession, CategoryTask:
		return Category(s), nil
	}

	return "", fmt.Errorf(
		"invalid category %q: must be one of %q, %q",
		s,
		CategorySession,
		CategoryTask,
	)
}

// ParseType validates a raw type value.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeStart, TypeStop:
		return Type(s), nil
	}

	return "", fmt.Errorf(
		"invalid type %q: must be one of %q, %q",
		s,
		TypeStart,
		TypeStop,
	)
}

// Event is a single record of the worklog. CommitTime records when the
// record was physically written and is never used for ordering or any
// derived computation; LogTime is the instant the event is effective at.
// Identifier is only set for task events.
type Event struct {
	CommitTime time.Time
	LogTime    time.Time
	Category   Category
	Type       Type
	Identifier string
}

// Day returns the calendar day of the event's log time in the form
// YYYY-MM-DD, in the log time's location.
func (e Event) Day() string {
	return e.LogTime.Format(time.DateOnly)
}

// MarshalLine serializes the event into a single backing-store line
// without a trailing newline.
func (e Event) MarshalLine() string {
	return strings.Join([]string{
		e.CommitTime.Format(time.RFC3339),
		e.LogTime.Format(time.RFC3339),
		string(e.Category),
		string(e.Type),
		e.Identifier,
	}, Separator)
}

// ParseLine parses one backing-store line into an Event. The expected
// field order is commit time, log time, category, type, identifier.
func ParseLine(line string) (Event, error) {
	fields := strings.Split(line, Separator)
	if len(fields) != 5 {
		return Event{}, fmt.Errorf(
			"malformed record: expected 5 fields, got %d",
			len(fields),
		)
	}

	commitTime, err := parseTimestamp(fields[0])
	if err != nil {
		return Event{}, fmt.Errorf("malformed commit time: %w", err)
	}

	logTime, err := parseTimestamp(fields[1])
	if err != nil {
		return Event{}, fmt.Errorf("malformed log time: %w", err)
	}

	category, err := ParseCategory(fields[2])
	if err != nil {
		return Event{}, err
	}

	typ, err := ParseType(fields[3])
	if err != nil {
		return Event{}, err
	}

	if category == CategorySession && fields[4] != "" {
		return Event{}, fmt.Errorf(
			"malformed record: session events must not carry an identifier, got %q",
			fields[4],
		)
	}

	return Event{
		CommitTime: commitTime,
		LogTime:    logTime,
		Category:   category,
		Type:       typ,
		Identifier: fields[4],
	}, nil
}

// parseTimestamp accepts RFC 3339 timestamps, assuming the local timezone
// when the offset is absent.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}

	return time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
}
