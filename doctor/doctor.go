// Package doctor runs read-only consistency checks over the event log.
// Session events on a single day, and task events sharing a day and
// identifier, must alternate start, stop, start, stop in log-time order;
// every violation is reported as a structured diagnostic and never stops
// the scan.
package doctor

import (
	"fmt"
	"sort"

	"worklog/internal/event"
)

// Kind classifies a diagnostic.
type Kind string

const (
	KindMissingStart Kind = "missing-start"
	KindMissingStop  Kind = "missing-stop"
	KindWrongOrder   Kind = "wrong-order"
)

// Diagnostic describes one ordering violation found in the log.
// TaskID is empty for session diagnostics.
type Diagnostic struct {
	Kind     Kind
	Day      string
	Category event.Category
	TaskID   string
}

// Message renders a human-readable description of the diagnostic.
func (d Diagnostic) Message() string {
	switch d.Category {
	case event.CategoryTask:
		switch d.Kind {
		case KindMissingStart:
			return fmt.Sprintf(
				"task %q is missing a start entry on date %s",
				d.TaskID, d.Day,
			)
		case KindMissingStop:
			return fmt.Sprintf(
				"task %q is missing a stop entry on date %s",
				d.TaskID, d.Day,
			)
		case KindWrongOrder:
			return fmt.Sprintf(
				"wrong order of task entries for task %q on date %s: "+
					"a task was stopped before it was started, or started or stopped twice in a row",
				d.TaskID, d.Day,
			)
		}
	case event.CategorySession:
		switch d.Kind {
		case KindMissingStart:
			return fmt.Sprintf(
				"at least one session has a missing start entry on date %s",
				d.Day,
			)
		case KindMissingStop:
			return fmt.Sprintf(
				"at least one session has a missing stop entry on date %s",
				d.Day,
			)
		case KindWrongOrder:
			return fmt.Sprintf(
				"wrong order of session entries on date %s: "+
					"a session was stopped before it was started, or started or stopped twice in a row",
				d.Day,
			)
		}
	}

	return fmt.Sprintf("%s on date %s", d.Kind, d.Day)
}

// Check scans all events and reports every ordering violation. Events
// must already be sorted by log time. Diagnostics are ordered by day,
// sessions before tasks, tasks by identifier; at most one diagnostic is
// reported per group.
func Check(events []event.Event) []Diagnostic {
	sessionGroups := make(map[string][]event.Event)
	taskGroups := make(map[[2]string][]event.Event)

	for _, e := range events {
		switch e.Category {
		case event.CategorySession:
			day := e.Day()
			sessionGroups[day] = append(sessionGroups[day], e)
		case event.CategoryTask:
			key := [2]string{e.Day(), e.Identifier}
			taskGroups[key] = append(taskGroups[key], e)
		}
	}

	var diagnostics []Diagnostic

	for day, group := range sessionGroups {
		if kind, ok := checkGroup(group); ok {
			diagnostics = append(diagnostics, Diagnostic{
				Kind:     kind,
				Day:      day,
				Category: event.CategorySession,
			})
		}
	}

	for key, group := range taskGroups {
		if kind, ok := checkGroup(group); ok {
			diagnostics = append(diagnostics, Diagnostic{
				Kind:     kind,
				Day:      key[0],
				Category: event.CategoryTask,
				TaskID:   key[1],
			})
		}
	}

	sort.Slice(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}

		if a.Category != b.Category {
			return a.Category == event.CategorySession
		}

		return a.TaskID < b.TaskID
	})

	return diagnostics
}

// checkGroup validates one day (or day+identifier) group. The checks are
// mutually exclusive: missing-start wins over missing-stop, which wins
// over wrong-order.
func checkGroup(group []event.Event) (Kind, bool) {
	var starts, stops int

	for _, e := range group {
		switch e.Type {
		case event.TypeStart:
			starts++
		case event.TypeStop:
			stops++
		}
	}

	switch {
	case starts < stops:
		return KindMissingStart, true
	case starts > stops:
		return KindMissingStop, true
	}

	// Counts match: the sequence is healthy only if it is a perfect
	// start/stop alternation beginning with a start.
	expect := event.TypeStart

	for _, e := range group {
		if e.Type != expect {
			return KindWrongOrder, true
		}

		if expect == event.TypeStart {
			expect = event.TypeStop
		} else {
			expect = event.TypeStart
		}
	}

	return "", false
}
