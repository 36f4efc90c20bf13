// Package tasks pairs task start/stop events into closed intervals and
// derives per-task durations and the set of currently active tasks.
// Tasks may be nested or interleaved freely; pairing is always scoped to
// a single identifier, so overlapping other tasks never affect it.
package tasks

import (
	"fmt"
	"sort"
	"time"

	"worklog/internal/event"
)

// Interval is one closed [Start, Stop) period of a task.
type Interval struct {
	Day      string
	Start    time.Time
	Stop     time.Time
	Duration time.Duration
}

// Anomaly describes an event that could not be paired into an interval.
// Anomalies are reported, never fatal; the offending event is excluded
// from the results and processing continues.
type Anomaly struct {
	Event  event.Event
	Reason string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s: skipped entry", a.Reason)
}

// ExtractIntervals pairs one task's chronological start/stop events into
// closed intervals. A stop without a pending start, a start shadowing an
// earlier pending start, an unterminated trailing start, and events of
// unknown type are each reported as an anomaly and skipped.
func ExtractIntervals(events []event.Event) ([]Interval, []Anomaly) {
	var (
		intervals []Interval
		anomalies []Anomaly
		pending   *event.Event
	)

	for i := range events {
		e := events[i]

		switch e.Type {
		case event.TypeStart:
			if pending != nil {
				anomalies = append(anomalies, Anomaly{
					Event: *pending,
					Reason: fmt.Sprintf(
						"start entry at %s has no stop entry",
						pending.LogTime.Format(time.RFC3339),
					),
				})
			}

			pending = &events[i]
		case event.TypeStop:
			if pending == nil {
				anomalies = append(anomalies, Anomaly{
					Event:  e,
					Reason: "no start entry found",
				})

				continue
			}

			intervals = append(intervals, Interval{
				Day:      pending.Day(),
				Start:    pending.LogTime,
				Stop:     e.LogTime,
				Duration: e.LogTime.Sub(pending.LogTime),
			})
			pending = nil
		default:
			anomalies = append(anomalies, Anomaly{
				Event:  e,
				Reason: fmt.Sprintf("found unknown type %q", e.Type),
			})
		}
	}

	if pending != nil {
		anomalies = append(anomalies, Anomaly{
			Event: *pending,
			Reason: fmt.Sprintf(
				"start entry at %s has no stop entry",
				pending.LogTime.Format(time.RFC3339),
			),
		})
	}

	return intervals, anomalies
}

// Durations sums the closed interval durations of every task identifier
// present in events. Identifiers without a single closed interval are
// absent from the result.
func Durations(events []event.Event) map[string]time.Duration {
	totals := make(map[string]time.Duration)

	for id, group := range groupByIdentifier(events) {
		intervals, _ := ExtractIntervals(group)

		var total time.Duration
		for _, iv := range intervals {
			total += iv.Duration
		}

		if len(intervals) > 0 {
			totals[id] = total
		}
	}

	return totals
}

// ActiveIDs returns the identifiers whose most recent event is a start,
// sorted lexicographically.
func ActiveIDs(events []event.Event) []string {
	var active []string

	for id, group := range groupByIdentifier(events) {
		if group[len(group)-1].Type == event.TypeStart {
			active = append(active, id)
		}
	}

	sort.Strings(active)

	return active
}

// groupByIdentifier splits task events by identifier, each group sorted
// chronologically with starts ordered before stops at the same instant.
func groupByIdentifier(events []event.Event) map[string][]event.Event {
	groups := make(map[string][]event.Event)

	for _, e := range events {
		if e.Category != event.CategoryTask {
			continue
		}

		groups[e.Identifier] = append(groups[e.Identifier], e)
	}

	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].LogTime.Equal(group[j].LogTime) {
				return group[i].LogTime.Before(group[j].LogTime)
			}

			return group[i].Type == event.TypeStart &&
				group[j].Type == event.TypeStop
		})
	}

	return groups
}
