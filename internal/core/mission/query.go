package mission

import (
	"sort"
	"strings"
	"time"
)

// IsOverdue reports whether the deadline has passed on a mission that is still
// open. Failed missions are not overdue.
func IsOverdue(m *Mission, now time.Time) bool {
	return m.Deadline != nil && m.Deadline.Before(now) &&
		m.Status != StatusCompleted && m.Status != StatusFailed
}

// PastDeadline is the dashboard's looser notion of overdue: any mission past
// its deadline that has not completed, failed ones included.
func PastDeadline(m *Mission, now time.Time) bool {
	return m.Deadline != nil && m.Deadline.Before(now) && m.Status != StatusCompleted
}

// Filter narrows a mission list for display. Empty fields match everything.
type Filter struct {
	Search     string
	Status     Status
	Priority   Priority
	Department string
}

// Matches reports whether m passes every populated criterion.
// Search is case-insensitive over title, description, assignees and client.
func (f Filter) Matches(m *Mission) bool {
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.Priority != "" && m.Priority != f.Priority {
		return false
	}
	if f.Department != "" && departmentOf(m) != f.Department {
		return false
	}
	if f.Search == "" {
		return true
	}

	term := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(m.Title), term) ||
		strings.Contains(strings.ToLower(m.Description), term) ||
		strings.Contains(strings.ToLower(m.ClientName), term) {
		return true
	}
	for _, person := range m.AssignedTo {
		if strings.Contains(strings.ToLower(person), term) {
			return true
		}
	}
	return false
}

// Apply returns the missions matching f in their original order.
func (f Filter) Apply(missions []*Mission) []*Mission {
	out := make([]*Mission, 0, len(missions))
	for _, m := range missions {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// GroupByStatus buckets missions by status, preserving order within a bucket.
func GroupByStatus(missions []*Mission) map[Status][]*Mission {
	groups := make(map[Status][]*Mission, len(Statuses))
	for _, s := range Statuses {
		groups[s] = []*Mission{}
	}
	for _, m := range missions {
		groups[m.Status] = append(groups[m.Status], m)
	}
	return groups
}

// Departments returns the sorted set of departments in use.
func Departments(missions []*Mission) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range missions {
		d := departmentOf(m)
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// ThreatMetrics summarises the risk picture shown on the dashboard.
type ThreatMetrics struct {
	CriticalActive int
	HighActive     int
	Overdue        int
}

// ComputeThreatMetrics counts active critical/high missions and missions past
// their deadline.
func ComputeThreatMetrics(missions []*Mission, now time.Time) ThreatMetrics {
	var tm ThreatMetrics
	for _, m := range missions {
		if m.Status == StatusActive {
			switch m.Priority {
			case PriorityCritical:
				tm.CriticalActive++
			case PriorityHigh:
				tm.HighActive++
			}
		}
		if PastDeadline(m, now) {
			tm.Overdue++
		}
	}
	return tm
}

// SortByLatestLog orders missions newest activity first, using the most
// recent log timestamp and falling back to updatedAt.
func SortByLatestLog(missions []*Mission) []*Mission {
	out := append([]*Mission{}, missions...)
	sort.SliceStable(out, func(i, j int) bool {
		return lastActivity(out[i]).After(lastActivity(out[j]))
	})
	return out
}

// LogsNewestFirst returns a copy of the log sequence in reverse order for display.
func LogsNewestFirst(m *Mission) []Log {
	out := make([]Log, len(m.Logs))
	for i, l := range m.Logs {
		out[len(m.Logs)-1-i] = l
	}
	return out
}

func lastActivity(m *Mission) time.Time {
	if n := len(m.Logs); n > 0 && m.Logs[n-1].Timestamp.After(m.UpdatedAt) {
		return m.Logs[n-1].Timestamp
	}
	return m.UpdatedAt
}

func departmentOf(m *Mission) string {
	if m.Department == "" {
		return DefaultDepartment
	}
	return m.Department
}
