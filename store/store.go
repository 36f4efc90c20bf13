// Package store owns the append-only worklog file and its in-memory
// materialization. All engines receive read-only, pre-filtered views of
// the event collection; only Commit and Append mutate it, and every
// mutation is flushed to disk before the in-memory state is considered
// authoritative.
package store

import (
	"bufio"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"worklog/internal/event"
	"worklog/internal/timeutil"
	"worklog/tasks"
)

// Store reads and appends worklog records. It assumes a single process
// and a single writer; concurrent external writers may corrupt the file.
type Store struct {
	path   string
	events []event.Event
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the current-time source. Used by tests to make
// commits deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger overrides the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New opens the worklog file at path, creating it (and its directory)
// if absent, and loads every record into memory. An empty file yields
// an empty collection; a malformed line is a fatal error.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.touch(); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// touch creates the backing file if it does not exist yet.
func (s *Store) touch() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating worklog directory: %w", err)
	}

	var fileMode fs.FileMode = 0o644

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("creating worklog file: %w", err)
	}

	return f.Close()
}

// load parses the backing file into the in-memory collection and sorts
// it by log time. Lines starting with '#' are comments and skipped.
func (s *Store) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening worklog file: %w", err)
	}
	defer f.Close()

	s.events = nil

	scanner := bufio.NewScanner(f)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e, err := event.ParseLine(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", s.path, lineNo, err)
		}

		s.events = append(s.events, e)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading worklog file: %w", err)
	}

	s.sortByLogTime()

	return nil
}

// sortByLogTime restores log-time order. The sort is stable so that
// same-instant commits keep their original relative order.
func (s *Store) sortByLogTime() {
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].LogTime.Before(s.events[j].LogTime)
	})
}

// Events returns a copy of the full event collection in log-time order.
func (s *Store) Events() []event.Event {
	out := make([]event.Event, len(s.events))
	copy(out, s.events)

	return out
}

// Len returns the number of events in the collection.
func (s *Store) Len() int {
	return len(s.events)
}

// EventsByCategory returns all events matching any of the given
// categories, in log-time order. With no categories it behaves like
// Events.
func (s *Store) EventsByCategory(
	categories ...event.Category,
) []event.Event {
	if len(categories) == 0 {
		return s.Events()
	}

	var out []event.Event

	for _, e := range s.events {
		if slices.Contains(categories, e.Category) {
			out = append(out, e)
		}
	}

	return out
}

// EventsOnDay returns the events of one category on the calendar day
// of the given time.
func (s *Store) EventsOnDay(
	category event.Category,
	day time.Time,
) []event.Event {
	var out []event.Event

	for _, e := range s.events {
		if e.Category == category && timeutil.SameDay(e.LogTime, day) {
			out = append(out, e)
		}
	}

	return out
}

// EventsInWindow returns the events of one category whose log time
// falls within the half-open window [from, to).
func (s *Store) EventsInWindow(
	category event.Category,
	from, to time.Time,
) []event.Event {
	var out []event.Event

	for _, e := range s.events {
		if e.Category != category {
			continue
		}

		if e.LogTime.Before(from) || !e.LogTime.Before(to) {
			continue
		}

		out = append(out, e)
	}

	return out
}

// Append persists one event to the end of the backing file and inserts
// it into the in-memory collection, restoring log-time order.
func (s *Store) Append(e event.Event) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening worklog file for append: %w", err)
	}

	_, err = f.WriteString(e.MarshalLine() + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("appending to worklog file: %w", err)
	}

	s.events = append(s.events, e)
	s.sortByLogTime()

	return nil
}

// Commit resolves the effective log time from the offset or explicit
// time string, validates the category and type, and persists a new
// event. Stopping a session while tasks are still open fails with an
// ActiveTasksError unless force is set, in which case stop events are
// synthesized for every open task first. The resolved log time is
// returned for caller echo purposes.
func (s *Store) Commit(
	category event.Category,
	typ event.Type,
	offsetMinutes int,
	timeStr string,
	identifier string,
	force bool,
) (time.Time, error) {
	logTime, err := ResolveLogTime(s.now(), offsetMinutes, timeStr)
	if err != nil {
		return time.Time{}, err
	}

	if err := s.commitAt(category, typ, logTime, identifier, force); err != nil {
		return time.Time{}, err
	}

	return logTime, nil
}

func (s *Store) commitAt(
	category event.Category,
	typ event.Type,
	logTime time.Time,
	identifier string,
	force bool,
) error {
	if _, err := event.ParseCategory(string(category)); err != nil {
		return err
	}

	if _, err := event.ParseType(string(typ)); err != nil {
		return err
	}

	if category == event.CategorySession && typ == event.TypeStop {
		active := s.activeTasksInStartOrder(logTime)

		if len(active) > 0 && !force {
			return &ActiveTasksError{TaskIDs: active}
		}

		for _, taskID := range active {
			err := s.commitAt(
				event.CategoryTask,
				event.TypeStop,
				logTime,
				taskID,
				false,
			)
			if err != nil {
				return err
			}

			s.logger.Info(
				"force-stopped active task",
				slog.String("task_id", taskID),
				slog.Time("log_time", logTime),
			)
		}
	}

	return s.Append(event.Event{
		CommitTime: s.now().Truncate(time.Second),
		LogTime:    logTime,
		Category:   category,
		Type:       typ,
		Identifier: identifier,
	})
}

// StopActiveTasks commits a stop event for every task that is active on
// the day of the given log time, at that log time. It returns the
// stopped identifiers in the order they were stopped.
func (s *Store) StopActiveTasks(logTime time.Time) ([]string, error) {
	active := s.activeTasksInStartOrder(logTime)

	for _, taskID := range active {
		err := s.commitAt(
			event.CategoryTask,
			event.TypeStop,
			logTime,
			taskID,
			false,
		)
		if err != nil {
			return nil, err
		}
	}

	return active, nil
}

// activeTasksInStartOrder returns the identifiers of tasks active on
// the given day, ordered by the log time of their most recent start
// event, ties broken by identifier. This keeps cascaded force-stops
// deterministic even when several tasks share a start timestamp.
func (s *Store) activeTasksInStartOrder(day time.Time) []string {
	dayEvents := s.EventsOnDay(event.CategoryTask, day)

	active := tasks.ActiveIDs(dayEvents)
	if len(active) == 0 {
		return nil
	}

	lastStart := make(map[string]time.Time, len(active))

	for _, e := range dayEvents {
		if e.Type == event.TypeStart && slices.Contains(active, e.Identifier) {
			lastStart[e.Identifier] = e.LogTime
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		a, b := lastStart[active[i]], lastStart[active[j]]
		if !a.Equal(b) {
			return a.Before(b)
		}

		return active[i] < active[j]
	})

	return active
}

// ResolveLogTime computes the effective log time for a commit from the
// current time, an offset in minutes and an optional explicit time
// string. The time string is tried as HH:MM on the current day first,
// then as a full ISO 8601 datetime; without an explicit UTC offset the
// local timezone is assumed. Explicit times are truncated to the full
// minute.
func ResolveLogTime(
	now time.Time,
	offsetMinutes int,
	timeStr string,
) (time.Time, error) {
	logTime := now.Truncate(time.Second).
		Add(time.Duration(offsetMinutes) * time.Minute)

	if timeStr == "" {
		return logTime, nil
	}

	if hm, err := time.Parse("15:04", timeStr); err == nil {
		return time.Date(
			logTime.Year(),
			logTime.Month(),
			logTime.Day(),
			hm.Hour(),
			hm.Minute(),
			0,
			0,
			logTime.Location(),
		), nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, timeStr, time.Local); err == nil {
			return t.Truncate(time.Minute), nil
		}
	}

	return time.Time{}, fmt.Errorf(
		"invalid time %q: must be HH:MM or an ISO 8601 datetime",
		timeStr,
	)
}
