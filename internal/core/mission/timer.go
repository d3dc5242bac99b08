package mission

import (
	"fmt"
	"time"
)

// TimerReading is a snapshot of a mission's running clock.
type TimerReading struct {
	Elapsed   time.Duration
	Progress  float64 // elapsed share of the estimate, capped at 100
	Overtime  bool
	Remaining time.Duration
}

// ReadTimer measures elapsed time since start against an estimate in minutes.
func ReadTimer(start time.Time, estimatedMinutes int, now time.Time) TimerReading {
	elapsed := now.Sub(start).Truncate(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	estimate := time.Duration(estimatedMinutes) * time.Minute

	r := TimerReading{Elapsed: elapsed}
	if estimate <= 0 {
		r.Progress = 100
		r.Overtime = elapsed > 0
		return r
	}

	r.Progress = float64(elapsed) / float64(estimate) * 100
	if r.Progress > 100 {
		r.Progress = 100
	}
	r.Overtime = elapsed > estimate
	if !r.Overtime {
		r.Remaining = estimate - elapsed
	}
	return r
}

// FormatElapsed renders a duration as "1h 2m 3s", "2m 3s" or "3s".
func FormatElapsed(d time.Duration) string {
	secs := int64(d / time.Second)
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	secs %= 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatRemaining renders the time left, or the overtime as "+Nm overtime".
func (r TimerReading) FormatRemaining(estimatedMinutes int) string {
	if r.Overtime {
		over := r.Elapsed - time.Duration(estimatedMinutes)*time.Minute
		return fmt.Sprintf("+%dm overtime", int64(over/time.Minute))
	}
	hours := int64(r.Remaining / time.Hour)
	minutes := int64((r.Remaining % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm remaining", hours, minutes)
	}
	return fmt.Sprintf("%dm remaining", minutes)
}
