// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	coremission "github.com/example/missionctl/internal/core/mission"
	corenotification "github.com/example/missionctl/internal/core/notification"
	"github.com/example/missionctl/pkg/errors"
)

const rule = "────────────────────────────────────────────────────────────────────────"

// timeLayout is used for every timestamp shown to the operator.
const timeLayout = "2006-01-02 15:04"

func statusColor(s coremission.Status) *color.Color {
	switch s {
	case coremission.StatusActive:
		return color.New(color.FgGreen)
	case coremission.StatusPending:
		return color.New(color.FgYellow)
	case coremission.StatusCompleted:
		return color.New(color.FgBlue)
	case coremission.StatusFailed:
		return color.New(color.FgRed)
	}
	return color.New(color.Reset)
}

func priorityColor(p coremission.Priority) *color.Color {
	switch p {
	case coremission.PriorityCritical:
		return color.New(color.FgHiRed, color.Bold)
	case coremission.PriorityHigh:
		return color.New(color.FgHiYellow)
	case coremission.PriorityMedium:
		return color.New(color.FgCyan)
	}
	return color.New(color.FgWhite)
}

func levelColor(l coremission.LogLevel) *color.Color {
	switch l {
	case coremission.LevelSuccess:
		return color.New(color.FgGreen)
	case coremission.LevelWarning:
		return color.New(color.FgYellow)
	case coremission.LevelError:
		return color.New(color.FgRed)
	}
	return color.New(color.FgBlue)
}

func notificationColor(t corenotification.Type) *color.Color {
	switch t {
	case corenotification.TypeSuccess:
		return color.New(color.FgGreen)
	case corenotification.TypeWarning:
		return color.New(color.FgYellow)
	case corenotification.TypeError:
		return color.New(color.FgRed)
	}
	return color.New(color.FgBlue)
}

// pad left-aligns s in width columns before colouring, so escape codes do
// not upset the table layout.
func pad(c *color.Color, s string, width int) string {
	return c.Sprint(fmt.Sprintf("%-*s", width, s))
}

func statusBadge(s coremission.Status) string {
	return pad(statusColor(s), strings.ToUpper(string(s)), 10)
}

func priorityBadge(p coremission.Priority) string {
	return pad(priorityColor(p), strings.ToUpper(string(p)), 9)
}

func statusLabel(s coremission.Status) string {
	return statusColor(s).Sprint(strings.ToUpper(string(s)))
}

func priorityLabel(p coremission.Priority) string {
	return priorityColor(p).Sprint(strings.ToUpper(string(p)))
}

func progressBar(progress, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// warnIfPersistFailed reports a write that failed after the in-memory change
// was applied. It returns any other error unchanged.
func warnIfPersistFailed(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	var perr *errors.PersistError
	if errors.As(err, &perr) {
		fmt.Fprintf(out, "%s changes kept for this session but not saved: %v\n", color.New(color.FgYellow).Sprint("⚠"), perr.Cause)
		return nil
	}
	return err
}
