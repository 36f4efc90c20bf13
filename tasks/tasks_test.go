package tasks_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/event"
	"worklog/internal/testutil"
	"worklog/tasks"
)

func TestExtractIntervals(t *testing.T) {
	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T08:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T09:30:00Z"),
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T13:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T13:45:00Z"),
	}

	intervals, anomalies := tasks.ExtractIntervals(events)

	require.Empty(t, anomalies)
	require.Len(t, intervals, 2)

	assert.Equal(t, "2020-08-05", intervals[0].Day)
	assert.Equal(t, 90*time.Minute, intervals[0].Duration)
	assert.Equal(t, 45*time.Minute, intervals[1].Duration)
}

func TestExtractIntervalsOrphanStop(t *testing.T) {
	events := []event.Event{
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T09:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T10:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T11:00:00Z"),
	}

	intervals, anomalies := tasks.ExtractIntervals(events)

	require.Len(t, intervals, 1)
	assert.Equal(t, time.Hour, intervals[0].Duration)

	require.Len(t, anomalies, 1)
	assert.Contains(t, anomalies[0].Reason, "no start entry")
}

func TestExtractIntervalsDoubleStart(t *testing.T) {
	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T08:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T09:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T10:00:00Z"),
	}

	intervals, anomalies := tasks.ExtractIntervals(events)

	// The shadowed first start is reported; the second one pairs.
	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].Start.Equal(
		testutil.MustTime("2020-08-05T09:00:00Z"),
	))

	require.Len(t, anomalies, 1)
	assert.Contains(t, anomalies[0].Reason, "no stop entry")
}

func TestExtractIntervalsUnterminatedStart(t *testing.T) {
	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T08:00:00Z"),
	}

	intervals, anomalies := tasks.ExtractIntervals(events)

	assert.Empty(t, intervals)
	require.Len(t, anomalies, 1)
	assert.Contains(t, anomalies[0].Reason, "no stop entry")
}

func TestExtractIntervalsUnknownType(t *testing.T) {
	e := testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T08:00:00Z")
	e.Type = "pause"

	intervals, anomalies := tasks.ExtractIntervals([]event.Event{e})

	assert.Empty(t, intervals)
	require.Len(t, anomalies, 1)
	assert.Contains(t, anomalies[0].Reason, "unknown type")
}

func TestDurationsNestedTasks(t *testing.T) {
	// task2 and task3 are nested inside task1, task3 outlives it.
	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T00:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "task2", "2020-08-05T01:30:00Z"),
		testutil.TaskEvent(event.TypeStart, "task3", "2020-08-05T01:30:00Z"),
		testutil.TaskEvent(event.TypeStop, "task2", "2020-08-05T01:31:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T02:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task3", "2020-08-05T03:00:00Z"),
	}

	got := tasks.Durations(events)

	want := map[string]time.Duration{
		"task1": 2 * time.Hour,
		"task2": time.Minute,
		"task3": 90 * time.Minute,
	}

	assert.Equal(t, want, got)
}

func TestDurationsOmitsOpenTasks(t *testing.T) {
	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "open", "2020-08-05T08:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "closed", "2020-08-05T09:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "closed", "2020-08-05T09:30:00Z"),
	}

	got := tasks.Durations(events)

	assert.NotContains(t, got, "open")
	assert.Equal(t, 30*time.Minute, got["closed"])
}

func TestDurationsMatchExtractIntervals(t *testing.T) {
	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T08:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T09:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T10:15:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T11:45:00Z"),
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-06T08:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-06T08:20:00Z"),
	}

	intervals, anomalies := tasks.ExtractIntervals(events)
	require.Empty(t, anomalies)

	var sum time.Duration
	for _, iv := range intervals {
		sum += iv.Duration
	}

	assert.Equal(t, sum, tasks.Durations(events)["task1"])
}

func TestActiveIDs(t *testing.T) {
	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "beta", "2020-08-05T08:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "alpha", "2020-08-05T09:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "gamma", "2020-08-05T10:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "gamma", "2020-08-05T11:00:00Z"),
	}

	assert.Equal(t, []string{"alpha", "beta"}, tasks.ActiveIDs(events))
}

func TestActiveIDsEmpty(t *testing.T) {
	assert.Empty(t, tasks.ActiveIDs(nil))

	events := []event.Event{
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T08:00:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T09:00:00Z"),
	}

	assert.Empty(t, tasks.ActiveIDs(events))
}

func TestIgnoresNonTaskEvents(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-08-05T08:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "task1", "2020-08-05T08:30:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-08-05T09:00:00Z"),
		testutil.SessionEvent(event.TypeStop, "2020-08-05T17:00:00Z"),
	}

	assert.Equal(t,
		map[string]time.Duration{"task1": 30 * time.Minute},
		tasks.Durations(events),
	)
}
