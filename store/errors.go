package store

import (
	"fmt"
	"strings"
)

// ActiveTasksError blocks a session stop while tasks are still running.
// The caller can retry with force, which auto-stops the listed tasks.
type ActiveTasksError struct {
	TaskIDs []string
}

func (e *ActiveTasksError) Error() string {
	return fmt.Sprintf(
		"cannot stop session: tasks are still running: [%s]. "+
			"Stop them first or use --force",
		strings.Join(e.TaskIDs, ", "),
	)
}
