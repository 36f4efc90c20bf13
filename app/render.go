package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"worklog/internal/event"
	"worklog/internal/timeutil"
	"worklog/report"
	"worklog/status"
	"worklog/tasks"
)

// taskStats renders a task list as "(2) [task1, task2]".
func taskStats(ids []string) string {
	return fmt.Sprintf("(%d) [%s]", len(ids), strings.Join(ids, ", "))
}

// touchedStats renders the touched tasks with their durations as
// "(2) [task1 (01:00:00), task2 (00:01:00)]".
func touchedStats(stats []status.TaskStat) string {
	parts := make([]string, 0, len(stats))

	for _, ts := range stats {
		parts = append(parts, fmt.Sprintf(
			"%s (%s)",
			ts.ID,
			timeutil.FormatDuration(ts.Duration),
		))
	}

	return fmt.Sprintf("(%d) [%s]", len(stats), strings.Join(parts, ", "))
}

func trackingStatus(active bool) string {
	if active {
		return "on"
	}

	return "off"
}

// renderStatus prints the default status view.
func renderStatus(snapshot *status.Snapshot, breaksActive bool) {
	type line struct {
		key   string
		value string
	}

	lines := []line{
		{"Status", "Tracking " + trackingStatus(snapshot.Active)},
		{"Total time", fmt.Sprintf(
			"%s (%3d%%)",
			timeutil.FormatDuration(snapshot.TotalTime),
			snapshot.PercentDone,
		)},
		{"Remaining time", fmt.Sprintf(
			"%s (%3d%%)",
			timeutil.FormatDuration(snapshot.RemainingTime),
			snapshot.PercentRemaining,
		)},
		{"Overtime", fmt.Sprintf(
			"%s (%3d%%)",
			timeutil.FormatDuration(snapshot.Overtime),
			snapshot.PercentOvertime,
		)},
	}

	if breaksActive {
		lines = append(lines, line{
			"Break",
			timeutil.FormatDuration(snapshot.BreakDuration),
		})
	}

	if snapshot.Active && timeutil.SameDay(snapshot.Date, time.Now()) {
		lines = append(lines, line{
			"End of work",
			snapshot.EndOfWork.Format("15:04:05"),
		})
	}

	lines = append(lines,
		line{"All touched tasks", touchedStats(snapshot.TouchedTasks)},
		line{"Active tasks", taskStats(snapshot.ActiveTasks)},
	)

	keyWidth := 0
	for _, l := range lines {
		if len(l.key) > keyWidth {
			keyWidth = len(l.key)
		}
	}

	for _, l := range lines {
		pterm.Printfln("%-*s : %s", keyWidth, l.key, l.value)
	}
}

// formatStatus fills a user-supplied format string with the snapshot's
// fields. Unknown placeholders are left verbatim.
func formatStatus(format string, snapshot *status.Snapshot) string {
	total := timeutil.FormatDuration(snapshot.TotalTime)
	remaining := timeutil.FormatDuration(snapshot.RemainingTime)
	overtime := timeutil.FormatDuration(snapshot.Overtime)
	breakDuration := timeutil.FormatDuration(snapshot.BreakDuration)

	replacer := strings.NewReplacer(
		"{tracking_status}", trackingStatus(snapshot.Active),
		"{total_time_short}", timeutil.FormatDurationShort(snapshot.TotalTime),
		"{total_time}", total,
		"{percentage_done}", strconv.Itoa(snapshot.PercentDone),
		"{remaining_time_short}", timeutil.FormatDurationShort(snapshot.RemainingTime),
		"{remaining_time}", remaining,
		"{percentage_remaining}", strconv.Itoa(snapshot.PercentRemaining),
		"{overtime_short}", timeutil.FormatDurationShort(snapshot.Overtime),
		"{overtime}", overtime,
		"{percentage_overtime}", strconv.Itoa(snapshot.PercentOvertime),
		"{break_duration_short}", timeutil.FormatDurationShort(snapshot.BreakDuration),
		"{break_duration}", breakDuration,
		"{eow_short}", snapshot.EndOfWork.Format("15:04"),
		"{eow}", snapshot.EndOfWork.Format("15:04:05"),
		"{active_tasks_stats}", taskStats(snapshot.ActiveTasks),
		"{touched_tasks_stats}", touchedStats(snapshot.TouchedTasks),
	)

	return replacer.Replace(format)
}

// renderTaskReport prints the interval listing, the daily aggregation
// and the grand total for one task.
func renderTaskReport(taskID string, intervals []tasks.Interval) {
	pterm.DefaultSection.Printfln("Log entries for task %s", taskID)

	data := pterm.TableData{{"Date", "Start", "Stop", "Duration"}}

	daily := make(map[string]time.Duration)

	var days []string

	var total time.Duration

	for _, iv := range intervals {
		data = append(data, []string{
			iv.Day,
			iv.Start.Format("15:04:05"),
			iv.Stop.Format("15:04:05"),
			timeutil.FormatDuration(iv.Duration),
		})

		if _, ok := daily[iv.Day]; !ok {
			days = append(days, iv.Day)
		}

		daily[iv.Day] += iv.Duration
		total += iv.Duration
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.DefaultSection.Println("Daily aggregated")

	data = pterm.TableData{{"Date", "Duration"}}
	for _, day := range days {
		data = append(data, []string{day, timeutil.FormatDuration(daily[day])})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.Printfln("Total: %s", timeutil.FormatDuration(total))
}

// renderLog prints log entries, optionally through the system pager.
func renderLog(events []event.Event, usePager bool) error {
	data := pterm.TableData{{"Date", "Time", "Category", "Type", "Task"}}

	for _, e := range events {
		identifier := e.Identifier
		if identifier == "" {
			identifier = "-"
		}

		data = append(data, []string{
			e.Day(),
			e.LogTime.Format("15:04:05"),
			string(e.Category),
			string(e.Type),
			identifier,
		})
	}

	content, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	if usePager {
		return showInPager(content)
	}

	pterm.Println(content)

	return nil
}

// renderReport prints the four aggregation tables. Break and bookable
// columns are only shown when the auto-break policy is active.
func renderReport(rpt *report.Report) {
	renderBuckets := func(title, label string, rows []report.Row) {
		pterm.DefaultSection.Println(title)

		header := []string{label, "Total time"}
		if rpt.HasBreaks {
			header = append(header, "Break", "Bookable")
		}

		data := pterm.TableData{header}

		for _, row := range rows {
			cells := []string{row.Label, timeutil.FormatDuration(row.Total)}
			if rpt.HasBreaks {
				cells = append(
					cells,
					timeutil.FormatDuration(row.Break),
					timeutil.FormatDuration(row.Bookable),
				)
			}

			data = append(data, cells)
		}

		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	renderBuckets("Aggregated by month", "Month", rpt.Monthly)
	renderBuckets("Aggregated by week", "Week", rpt.Weekly)
	renderBuckets("Aggregated by day", "Date", rpt.Daily)

	pterm.DefaultSection.Println("Aggregated by task")

	data := pterm.TableData{{"Task name", "Total time"}}
	for _, row := range rpt.ByTask {
		data = append(data, []string{
			row.Label,
			timeutil.FormatDuration(row.Total),
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
