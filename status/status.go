// Package status computes the tracking snapshot for a single day:
// whether tracking is on, elapsed, remaining and overtime durations,
// the projected end of work, and the day's task statistics.
package status

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"worklog/internal/autobreak"
	"worklog/internal/event"
	"worklog/internal/timeutil"
	"worklog/tasks"
)

// ErrNoData signals a globally empty log.
var ErrNoData = errors.New(
	"no log data available. Start a new log entry with 'wl session start'",
)

// ErrFutureDate rejects status queries for days after today; the
// sentinel stop substitution is only defined for today and the past.
var ErrFutureDate = errors.New(
	"only dates on the same day or in the past are supported",
)

// NoDataForDateError signals a log without any session events on the
// queried day.
type NoDataForDateError struct {
	Date time.Time
}

func (e *NoDataForDateError) Error() string {
	return fmt.Sprintf(
		"no log data available for %s",
		e.Date.Format(time.DateOnly),
	)
}

// Config carries the workday bounds and the current-time source.
type Config struct {
	HoursTarget time.Duration
	HoursMax    time.Duration
	Now         func() time.Time
}

// TaskStat pairs a task identifier with its total closed duration.
type TaskStat struct {
	ID       string
	Duration time.Duration
}

// Snapshot is the computed status for one day.
type Snapshot struct {
	Date             time.Time
	Active           bool
	TotalTime        time.Duration
	BreakDuration    time.Duration
	RemainingTime    time.Duration
	Overtime         time.Duration
	EndOfWork        time.Time
	PercentDone      int
	PercentRemaining int
	PercentOvertime  int
	ActiveTasks      []string
	TouchedTasks     []TaskStat
}

// Compute derives the status snapshot for the day of queryDate from the
// full event collection. An open session is closed with a sentinel stop
// bounded by "now" and the end of the queried day. Session events are
// paired mechanically; ordering violations a doctor run would flag do
// not stop the computation.
func Compute(
	events []event.Event,
	queryDate time.Time,
	cfg Config,
	policy *autobreak.Policy,
) (*Snapshot, error) {
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	current := now().Truncate(time.Second)

	if timeutil.RoundToStart(queryDate).After(timeutil.RoundToStart(current)) {
		return nil, ErrFutureDate
	}

	if len(events) == 0 {
		return nil, ErrNoData
	}

	var daySessions []event.Event

	for _, e := range events {
		if e.Category == event.CategorySession &&
			timeutil.SameDay(e.LogTime, queryDate) {
			daySessions = append(daySessions, e)
		}
	}

	if len(daySessions) == 0 {
		return nil, &NoDataForDateError{Date: queryDate}
	}

	active := daySessions[len(daySessions)-1].Type == event.TypeStart

	if active {
		sentinel := timeutil.RoundToEnd(queryDate)
		if current.Before(sentinel) {
			sentinel = current
		}

		daySessions = append(daySessions, event.Event{
			LogTime:  sentinel,
			Category: event.CategorySession,
			Type:     event.TypeStop,
		})
	}

	var total time.Duration

	for i := 1; i < len(daySessions); i++ {
		if daySessions[i].Type == event.TypeStop {
			total += daySessions[i].LogTime.Sub(daySessions[i-1].LogTime)
		}
	}

	breakDuration := policy.DurationFor(total)

	// Break time is not working time, so it extends both bounds.
	target := cfg.HoursTarget + breakDuration
	maxHours := cfg.HoursMax + breakDuration

	endOfWork := current.Add(target - total)

	remaining := target - total
	if remaining < 0 {
		remaining = 0
	}

	overtime := total - target
	if overtime < 0 {
		overtime = 0
	}

	snapshot := &Snapshot{
		Date:          timeutil.RoundToStart(queryDate),
		Active:        active,
		TotalTime:     total,
		BreakDuration: breakDuration,
		RemainingTime: remaining,
		Overtime:      overtime,
		EndOfWork:     endOfWork,
	}

	if target > 0 {
		snapshot.PercentDone = int(
			math.Round(total.Seconds() / target.Seconds() * 100),
		)
	}

	snapshot.PercentRemaining = 100 - snapshot.PercentDone
	if snapshot.PercentRemaining < 0 {
		snapshot.PercentRemaining = 0
	}

	if maxHours > target {
		snapshot.PercentOvertime = int(math.Round(
			overtime.Seconds() / (maxHours - target).Seconds() * 100,
		))
	}

	var dayTasks []event.Event

	for _, e := range events {
		if e.Category == event.CategoryTask &&
			timeutil.SameDay(e.LogTime, queryDate) {
			dayTasks = append(dayTasks, e)
		}
	}

	snapshot.ActiveTasks = tasks.ActiveIDs(dayTasks)

	for id, d := range tasks.Durations(dayTasks) {
		snapshot.TouchedTasks = append(snapshot.TouchedTasks, TaskStat{
			ID:       id,
			Duration: d,
		})
	}

	sort.Slice(snapshot.TouchedTasks, func(i, j int) bool {
		return snapshot.TouchedTasks[i].ID < snapshot.TouchedTasks[j].ID
	})

	return snapshot, nil
}
