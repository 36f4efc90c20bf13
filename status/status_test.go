package status_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/autobreak"
	"worklog/internal/event"
	"worklog/internal/testutil"
	"worklog/status"
)

func config(now string) status.Config {
	return status.Config{
		HoursTarget: 8 * time.Hour,
		HoursMax:    10 * time.Hour,
		Now:         testutil.FixedClock(testutil.MustTime(now)),
	}
}

func day(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value+"T00:00:00Z")
	if err != nil {
		panic(err)
	}

	return t
}

func TestComputeClosedSession(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T00:00:00Z"),
		testutil.SessionEvent(event.TypeStop, "2020-01-01T01:00:00Z"),
	}

	snapshot, err := status.Compute(
		events,
		day("2020-01-01"),
		config("2020-01-01T12:00:00Z"),
		nil,
	)
	require.NoError(t, err)

	assert.False(t, snapshot.Active)
	assert.Equal(t, time.Hour, snapshot.TotalTime)
	assert.Equal(t, 7*time.Hour, snapshot.RemainingTime)
	assert.Equal(t, time.Duration(0), snapshot.Overtime)
	assert.Equal(t, 13, snapshot.PercentDone) // round(1/8*100)
	assert.Equal(t, 87, snapshot.PercentRemaining)
	assert.Equal(t, 0, snapshot.PercentOvertime)
}

func TestComputeEmptyLog(t *testing.T) {
	_, err := status.Compute(
		nil,
		day("2020-01-01"),
		config("2020-01-01T12:00:00Z"),
		nil,
	)

	assert.ErrorIs(t, err, status.ErrNoData)
}

func TestComputeNoDataForDate(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T08:00:00Z"),
		testutil.SessionEvent(event.TypeStop, "2020-01-01T16:00:00Z"),
	}

	_, err := status.Compute(
		events,
		day("2020-01-02"),
		config("2020-01-03T12:00:00Z"),
		nil,
	)

	var noData *status.NoDataForDateError

	require.ErrorAs(t, err, &noData)
	assert.True(t, noData.Date.Equal(day("2020-01-02")))
}

func TestComputeFutureDate(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T08:00:00Z"),
	}

	_, err := status.Compute(
		events,
		day("2020-01-02"),
		config("2020-01-01T12:00:00Z"),
		nil,
	)

	assert.ErrorIs(t, err, status.ErrFutureDate)
}

func TestComputeSentinelToday(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T09:00:00Z"),
	}

	snapshot, err := status.Compute(
		events,
		day("2020-01-01"),
		config("2020-01-01T10:00:00Z"),
		nil,
	)
	require.NoError(t, err)

	// The sentinel stop is "now", never a future timestamp.
	assert.True(t, snapshot.Active)
	assert.Equal(t, time.Hour, snapshot.TotalTime)
}

func TestComputeSentinelPastDate(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T23:00:00Z"),
	}

	snapshot, err := status.Compute(
		events,
		day("2020-01-01"),
		config("2020-01-05T12:00:00Z"),
		nil,
	)
	require.NoError(t, err)

	// For a past day the sentinel is pinned to 23:59:59.
	assert.True(t, snapshot.Active)
	assert.Equal(t, 59*time.Minute+59*time.Second, snapshot.TotalTime)
}

func TestComputeBreakExtendsTarget(t *testing.T) {
	policy, err := autobreak.New([]int{0, 360}, []int{15, 45})
	require.NoError(t, err)

	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T08:00:00Z"),
		testutil.SessionEvent(event.TypeStop, "2020-01-01T09:00:00Z"),
	}

	snapshot, err := status.Compute(
		events,
		day("2020-01-01"),
		config("2020-01-01T12:00:00Z"),
		policy,
	)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, snapshot.BreakDuration)
	// target = 8h + 15m, so 7h15m remain after one hour of work.
	assert.Equal(t, 7*time.Hour+15*time.Minute, snapshot.RemainingTime)
}

func TestComputeOvertime(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T00:00:00Z"),
		testutil.SessionEvent(event.TypeStop, "2020-01-01T09:00:00Z"),
	}

	snapshot, err := status.Compute(
		events,
		day("2020-01-01"),
		config("2020-01-01T10:00:00Z"),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, time.Hour, snapshot.Overtime)
	assert.Equal(t, time.Duration(0), snapshot.RemainingTime)
	assert.Equal(t, 113, snapshot.PercentDone)
	assert.Equal(t, 0, snapshot.PercentRemaining)
	// overtime / (max - target) = 1h / 2h
	assert.Equal(t, 50, snapshot.PercentOvertime)
}

func TestComputeMultipleSessionPairs(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T08:00:00Z"),
		testutil.SessionEvent(event.TypeStop, "2020-01-01T12:00:00Z"),
		testutil.SessionEvent(event.TypeStart, "2020-01-01T13:00:00Z"),
		testutil.SessionEvent(event.TypeStop, "2020-01-01T15:30:00Z"),
	}

	snapshot, err := status.Compute(
		events,
		day("2020-01-01"),
		config("2020-01-01T16:00:00Z"),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour+30*time.Minute, snapshot.TotalTime)
}

func TestComputeTaskStats(t *testing.T) {
	events := []event.Event{
		testutil.SessionEvent(event.TypeStart, "2020-01-01T08:00:00Z"),
		testutil.TaskEvent(event.TypeStart, "task1", "2020-01-01T08:30:00Z"),
		testutil.TaskEvent(event.TypeStop, "task1", "2020-01-01T09:30:00Z"),
		testutil.TaskEvent(event.TypeStart, "task2", "2020-01-01T10:00:00Z"),
		// Task events on other days must not leak into the snapshot.
		testutil.TaskEvent(event.TypeStart, "other", "2020-01-02T08:00:00Z"),
	}

	snapshot, err := status.Compute(
		events,
		day("2020-01-01"),
		config("2020-01-01T11:00:00Z"),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"task2"}, snapshot.ActiveTasks)
	require.Len(t, snapshot.TouchedTasks, 1)
	assert.Equal(t, "task1", snapshot.TouchedTasks[0].ID)
	assert.Equal(t, time.Hour, snapshot.TouchedTasks[0].Duration)
}
