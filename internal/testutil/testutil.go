// Package testutil provides shared helpers for worklog tests.
package testutil

import (
	"time"

	"worklog/internal/event"
)

// FixedClock returns a clock function that always reports t, making
// commits and status computations deterministic.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time {
		return t
	}
}

// MustTime parses an RFC 3339 timestamp, panicking on failure. For use
// in test fixtures only.
func MustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}

	return t
}

// SessionEvent builds a session event effective at the given RFC 3339
// log time.
func SessionEvent(typ event.Type, logTime string) event.Event {
	t := MustTime(logTime)

	return event.Event{
		CommitTime: t,
		LogTime:    t,
		Category:   event.CategorySession,
		Type:       typ,
	}
}

// TaskEvent builds a task event effective at the given RFC 3339 log
// time.
func TaskEvent(typ event.Type, identifier, logTime string) event.Event {
	t := MustTime(logTime)

	return event.Event{
		CommitTime: t,
		LogTime:    t,
		Category:   event.CategoryTask,
		Type:       typ,
		Identifier: identifier,
	}
}
