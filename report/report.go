// Package report aggregates session time into day, week and month
// buckets and task time by identifier over a half-open date window.
package report

import (
	"sort"
	"time"

	"worklog/internal/autobreak"
	"worklog/internal/event"
	"worklog/internal/timeutil"
	"worklog/tasks"
)

// Row is one line of an aggregation table. Break and Bookable are only
// meaningful when the report's auto-break policy is active.
type Row struct {
	Label    string
	Total    time.Duration
	Break    time.Duration
	Bookable time.Duration
}

// Report holds the four aggregation tables for a reporting window.
// HasBreaks indicates whether break/bookable columns apply; consumers
// must omit them entirely when it is false.
type Report struct {
	From      time.Time
	To        time.Time
	Monthly   []Row
	Weekly    []Row
	Daily     []Row
	ByTask    []Row
	HasBreaks bool
}

// Generate aggregates all events whose log time falls within the
// half-open window [from, to). Session events are paired consecutively
// as in the status computation; each closed pair is booked on the
// calendar day of its start.
func Generate(
	events []event.Event,
	from, to time.Time,
	policy *autobreak.Policy,
) *Report {
	var sessionEvents, taskEvents []event.Event

	for _, e := range events {
		if e.LogTime.Before(from) || !e.LogTime.Before(to) {
			continue
		}

		switch e.Category {
		case event.CategorySession:
			sessionEvents = append(sessionEvents, e)
		case event.CategoryTask:
			taskEvents = append(taskEvents, e)
		}
	}

	daily := make(map[string]time.Duration)
	weekly := make(map[string]time.Duration)
	monthly := make(map[string]time.Duration)

	for i := 1; i < len(sessionEvents); i++ {
		if sessionEvents[i].Type != event.TypeStop {
			continue
		}

		start := sessionEvents[i-1].LogTime
		elapsed := sessionEvents[i].LogTime.Sub(start)

		daily[start.Format(time.DateOnly)] += elapsed
		weekly[timeutil.ISOWeekLabel(start)] += elapsed
		monthly[timeutil.MonthLabel(start)] += elapsed
	}

	rpt := &Report{
		From:      from,
		To:        to,
		Monthly:   bucketRows(monthly, policy),
		Weekly:    bucketRows(weekly, policy),
		Daily:     bucketRows(daily, policy),
		HasBreaks: policy.Active(),
	}

	// The break correction applies to workday totals, not to individual
	// tasks, so task rows only ever carry a total.
	for id, total := range tasks.Durations(taskEvents) {
		rpt.ByTask = append(rpt.ByTask, Row{Label: id, Total: total})
	}

	sort.Slice(rpt.ByTask, func(i, j int) bool {
		return rpt.ByTask[i].Label < rpt.ByTask[j].Label
	})

	return rpt
}

// bucketRows converts a label-to-duration map into sorted rows with the
// policy's break correction applied per bucket.
func bucketRows(
	buckets map[string]time.Duration,
	policy *autobreak.Policy,
) []Row {
	rows := make([]Row, 0, len(buckets))

	for label, total := range buckets {
		breakDuration := policy.DurationFor(total)

		rows = append(rows, Row{
			Label:    label,
			Total:    total,
			Break:    breakDuration,
			Bookable: total - breakDuration,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Label < rows[j].Label
	})

	return rows
}
