package mission

import "fmt"

var statusMessages = map[Status]string{
	StatusActive:    "Mission activated and started",
	StatusCompleted: "Mission completed successfully",
	StatusFailed:    "Mission marked as failed",
	StatusPending:   "Mission status reset to pending",
}

// StatusChangeLog returns the audit entry recorded when a mission moves to
// newStatus. Completion logs as success, failure as error, anything else as info.
func StatusChangeLog(newStatus Status, actor string) LogFields {
	level := LevelInfo
	switch newStatus {
	case StatusCompleted:
		level = LevelSuccess
	case StatusFailed:
		level = LevelError
	}

	return LogFields{
		Level:   level,
		Message: statusMessages[newStatus],
		Details: fmt.Sprintf("Status changed by %s", actor),
		Author:  actor,
	}
}

// ProgressLog returns the audit entry recorded when progress is updated.
func ProgressLog(progress int, actor string) LogFields {
	return LogFields{
		Level:   LevelInfo,
		Message: fmt.Sprintf("Progress updated to %d%%", progress),
		Details: fmt.Sprintf("Updated by %s", actor),
		Author:  actor,
	}
}
