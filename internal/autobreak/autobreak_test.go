package autobreak_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/autobreak"
)

func TestNewShapeMismatch(t *testing.T) {
	_, err := autobreak.New([]int{0, 360}, []int{15})
	assert.Error(t, err)
}

func TestDurationFor(t *testing.T) {
	policy, err := autobreak.New([]int{0, 360}, []int{15, 45})
	require.NoError(t, err)

	cases := []struct {
		elapsed time.Duration
		want    time.Duration
	}{
		{5 * time.Minute, 15 * time.Minute},
		{359 * time.Minute, 15 * time.Minute},
		{360 * time.Minute, 45 * time.Minute},
		{361 * time.Minute, 45 * time.Minute},
		{10 * time.Hour, 45 * time.Minute},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.DurationFor(tc.elapsed), tc.elapsed)
	}
}

func TestDurationForBelowSmallestLimit(t *testing.T) {
	policy, err := autobreak.New([]int{30, 360}, []int{15, 45})
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), policy.DurationFor(29*time.Minute))
	// The limit qualifies only once a full minute has been reached.
	assert.Equal(t, 15*time.Minute, policy.DurationFor(30*time.Minute))
}

func TestInactivePolicy(t *testing.T) {
	policy, err := autobreak.New(nil, nil)
	require.NoError(t, err)

	assert.False(t, policy.Active())
	assert.Equal(t, time.Duration(0), policy.DurationFor(12*time.Hour))

	var nilPolicy *autobreak.Policy

	assert.False(t, nilPolicy.Active())
	assert.Equal(t, time.Duration(0), nilPolicy.DurationFor(12*time.Hour))
}

func TestMonotonicity(t *testing.T) {
	policy, err := autobreak.New([]int{0, 120, 360}, []int{10, 15, 45})
	require.NoError(t, err)

	var prev time.Duration

	for minutes := 0; minutes <= 600; minutes += 7 {
		got := policy.DurationFor(time.Duration(minutes) * time.Minute)
		assert.GreaterOrEqual(t, got, prev, "minutes=%d", minutes)
		prev = got
	}
}
