package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"worklog/doctor"
	"worklog/internal/event"
	"worklog/internal/timeutil"
	"worklog/report"
	"worklog/status"
	"worklog/store"
	"worklog/tasks"
)

var errExclusiveTimeFlags = errors.New(
	"--offset-minutes and --time are mutually exclusive",
)

var errMissingTaskID = errors.New("a task identifier is required (--id)")

// openStore opens the worklog backing file configured for this run.
func openStore() (*store.Store, error) {
	return store.New(conf.Worklog.Path)
}

// commitFlags extracts the time-shift flags shared by all commit-style
// commands, enforcing their mutual exclusivity.
func commitFlags(ctx *cli.Context) (int, string, error) {
	offset := ctx.Int("offset-minutes")
	timeStr := ctx.String("time")

	if ctx.IsSet("offset-minutes") && ctx.IsSet("time") {
		return 0, "", errExclusiveTimeFlags
	}

	return offset, timeStr, nil
}

// echoTime renders a commit's resolved log time for terminal echo:
// time-only when the date is today, a full datetime otherwise.
func echoTime(t time.Time) string {
	if timeutil.SameDay(t, time.Now()) {
		return t.Format("15:04:05")
	}

	return t.Format("2006-01-02 15:04:05")
}

func commitSession(ctx *cli.Context, typ event.Type) error {
	offset, timeStr, err := commitFlags(ctx)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	logTime, err := s.Commit(
		event.CategorySession,
		typ,
		offset,
		timeStr,
		"",
		ctx.Bool("force"),
	)
	if err != nil {
		return err
	}

	verb := "started"
	if typ == event.TypeStop {
		verb = "stopped"
	}

	pterm.Info.Printfln("Session %s at %s", verb, echoTime(logTime))

	return nil
}

func sessionStartAction(ctx *cli.Context) error {
	return commitSession(ctx, event.TypeStart)
}

func sessionStopAction(ctx *cli.Context) error {
	return commitSession(ctx, event.TypeStop)
}

func taskStartAction(ctx *cli.Context) error {
	taskID := ctx.String("id")
	if taskID == "" {
		return errMissingTaskID
	}

	offset, timeStr, err := commitFlags(ctx)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	if ctx.Bool("auto-stop") {
		logTime, err := store.ResolveLogTime(time.Now(), offset, timeStr)
		if err != nil {
			return err
		}

		stopped, err := s.StopActiveTasks(logTime)
		if err != nil {
			return err
		}

		for _, id := range stopped {
			pterm.Info.Printfln("Task %s stopped at %s", id, echoTime(logTime))
		}
	}

	logTime, err := s.Commit(
		event.CategoryTask,
		event.TypeStart,
		offset,
		timeStr,
		taskID,
		false,
	)
	if err != nil {
		return err
	}

	pterm.Info.Printfln("Task %s started at %s", taskID, echoTime(logTime))

	return nil
}

func taskStopAction(ctx *cli.Context) error {
	taskID := ctx.String("id")
	if taskID == "" {
		return errMissingTaskID
	}

	offset, timeStr, err := commitFlags(ctx)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	logTime, err := s.Commit(
		event.CategoryTask,
		event.TypeStop,
		offset,
		timeStr,
		taskID,
		false,
	)
	if err != nil {
		return err
	}

	pterm.Info.Printfln("Task %s stopped at %s", taskID, echoTime(logTime))

	return nil
}

func taskListAction(_ *cli.Context) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})

	var ids []string

	for _, e := range s.EventsByCategory(event.CategoryTask) {
		if _, ok := seen[e.Identifier]; !ok {
			seen[e.Identifier] = struct{}{}
			ids = append(ids, e.Identifier)
		}
	}

	if len(ids) == 0 {
		pterm.Info.Println("No tasks found in the log")
		return nil
	}

	sort.Slice(ids, func(i, j int) bool {
		return natural.Less(ids[i], ids[j])
	})

	pterm.Info.Println("These tasks are listed in the log:")

	for _, id := range ids {
		pterm.Println(id)
	}

	return nil
}

func taskReportAction(ctx *cli.Context) error {
	taskID := ctx.String("id")
	if taskID == "" {
		return errMissingTaskID
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	var taskEvents []event.Event

	for _, e := range s.EventsByCategory(event.CategoryTask) {
		if e.Identifier == taskID {
			taskEvents = append(taskEvents, e)
		}
	}

	if len(taskEvents) == 0 {
		return fmt.Errorf(
			"task ID %q is unknown. See 'wl task list' to list all known tasks",
			taskID,
		)
	}

	intervals, anomalies := tasks.ExtractIntervals(taskEvents)

	for _, a := range anomalies {
		slog.Warn("task report anomaly",
			slog.String("task_id", taskID),
			slog.String("reason", a.Reason),
		)
		pterm.Warning.Println(a)
	}

	renderTaskReport(taskID, intervals)

	return nil
}

func statusAction(ctx *cli.Context) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	queryDate := time.Now()

	switch {
	case ctx.Bool("yesterday") && ctx.IsSet("date"):
		return errors.New("--yesterday and --date are mutually exclusive")
	case ctx.Bool("yesterday"):
		queryDate = queryDate.AddDate(0, 0, -1)
	case ctx.IsSet("date"):
		queryDate, err = timeutil.ParseDay(ctx.String("date"))
		if err != nil {
			return err
		}
	}

	policy, err := conf.AutoBreak()
	if err != nil {
		return err
	}

	snapshot, err := status.Compute(s.Events(), queryDate, status.Config{
		HoursTarget: conf.HoursTarget(),
		HoursMax:    conf.HoursMax(),
	}, policy)
	if err != nil {
		var noData *status.NoDataForDateError

		// An empty log is an expected condition: with a custom format
		// string requested the command still succeeds with a sentinel
		// payload, otherwise it is a user-facing fatal error.
		if errors.Is(err, status.ErrNoData) || errors.As(err, &noData) {
			if ctx.IsSet("fmt") {
				pterm.Print("N/A")
				return nil
			}

			return err
		}

		return err
	}

	if ctx.IsSet("fmt") {
		pterm.Print(formatStatus(ctx.String("fmt"), snapshot))
		return nil
	}

	renderStatus(snapshot, policy.Active())

	return nil
}

func doctorAction(_ *cli.Context) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	diagnostics := doctor.Check(s.Events())

	if len(diagnostics) == 0 {
		pterm.Success.Println("No inconsistencies found")
		return nil
	}

	// Diagnostics are reported in full, never fatal.
	for _, d := range diagnostics {
		pterm.Warning.Println(d.Message())
	}

	return nil
}

func logAction(ctx *cli.Context) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	if s.Len() == 0 {
		pterm.Info.Println("No data available")
		return nil
	}

	var categories []event.Category

	if ctx.IsSet("category") {
		category, err := event.ParseCategory(ctx.String("category"))
		if err != nil {
			return err
		}

		categories = append(categories, category)
	}

	events := s.EventsByCategory(categories...)

	// Newest first.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	n := ctx.Int("number")
	if !ctx.Bool("all") && n > 0 && n < len(events) {
		events = events[:n]
	}

	usePager := !ctx.Bool("no-pager") &&
		(ctx.Bool("all") || ctx.Int("number") > conf.Worklog.NoPagerMaxEntries)

	return renderLog(events, usePager)
}

func reportAction(ctx *cli.Context) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	now := time.Now()
	from := timeutil.StartOfMonth(now)
	to := timeutil.StartOfNextMonth(now)

	if ctx.IsSet("date-from") {
		from, err = timeutil.ParseWindowBound(ctx.String("date-from"))
		if err != nil {
			return err
		}
	}

	if ctx.IsSet("date-to") {
		to, err = timeutil.ParseWindowBound(ctx.String("date-to"))
		if err != nil {
			return err
		}
	}

	if !from.Before(to) {
		return errors.New("--date-from must be before --date-to")
	}

	policy, err := conf.AutoBreak()
	if err != nil {
		return err
	}

	events := s.EventsInWindow(event.CategorySession, from, to)
	events = append(events, s.EventsInWindow(event.CategoryTask, from, to)...)

	renderReport(report.Generate(events, from, to, policy))

	return nil
}
