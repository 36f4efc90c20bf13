// Package autobreak implements the step function that maps elapsed work
// time to a mandated break duration.
package autobreak

import (
	"errors"
	"time"
)

var errShapeMismatch = errors.New(
	"limits and durations must have the same length",
)

// Policy is a monotonic step function configured as parallel lists of
// limit and break minutes. The zero value is an inactive policy that
// always yields a zero break.
type Policy struct {
	limits    []int
	durations []int
}

// New returns a Policy for the given parallel limit/duration lists, both
// in minutes. The lists must have the same length.
func New(limits, durations []int) (*Policy, error) {
	if len(limits) != len(durations) {
		return nil, errShapeMismatch
	}

	return &Policy{limits: limits, durations: durations}, nil
}

// Active reports whether any limit/duration pair is configured. Callers
// must omit break-related output entirely when the policy is inactive.
func (p *Policy) Active() bool {
	return p != nil && len(p.durations) > 0
}

// DurationFor returns the break duration mandated after the given
// elapsed work time: the duration of the largest configured limit not
// exceeding the elapsed full minutes, or zero when none qualifies.
func (p *Policy) DurationFor(elapsed time.Duration) time.Duration {
	if !p.Active() {
		return 0
	}

	fullMinutes := int(elapsed.Seconds()) / 60

	breakMinutes := 0

	for i, limit := range p.limits {
		if limit > fullMinutes {
			break
		}

		breakMinutes = p.durations[i]
	}

	return time.Duration(breakMinutes) * time.Minute
}
