// Package notification derives alert entries from mission state.
// This is part of the Functional Core - no I/O, only pure functions.
package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/missionctl/internal/core/mission"
)

// Type is the severity of a notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeError:
		return true
	}
	return false
}

// Rule identifies the derivation rule that produced a notification.
type Rule string

const (
	RuleOverdue          Rule = "overdue"
	RuleCriticalActive   Rule = "critical-active"
	RuleRecentCompletion Rule = "recent-completion"
)

// Titles used by the derivation rules.
const (
	TitleOverdue        = "MISSION OVERDUE"
	TitleCriticalActive = "CRITICAL OPERATION ACTIVE"
	TitleCompleted      = "MISSION COMPLETED"
)

// MaxNotifications is the default cap on the notification list.
const MaxNotifications = 50

// DefaultCompletionWindow is how long a completion stays "recent".
const DefaultCompletionWindow = 60 * time.Minute

// Notification is a derived, non-persisted alert.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	MissionID string    `json:"missionId,omitempty"`
	Rule      Rule      `json:"rule,omitempty"`
}

// Draft is a notification before it is stamped with an ID and time.
type Draft struct {
	Type      Type
	Title     string
	Message   string
	MissionID string
	Rule      Rule

	// MissionTitle is used only for title-based dedup.
	MissionTitle string
}

// DedupMode selects how an existing notification suppresses a new one.
type DedupMode string

const (
	// DedupByMission suppresses a draft when a notification from the same
	// rule for the same mission is already in the list.
	DedupByMission DedupMode = "mission"
	// DedupByTitle suppresses a draft when a notification of the same type
	// mentions the mission title in its title or message.
	DedupByTitle DedupMode = "title"
)

// Options tune rule evaluation.
type Options struct {
	Now              time.Time
	CompletionWindow time.Duration
	Dedup            DedupMode
}

// Evaluate runs every rule over missions and returns the drafts that are not
// already represented in existing. Drafts come out in rule order (overdue,
// critical-active, recent-completion) and mission order within a rule.
func Evaluate(missions []*mission.Mission, existing []Notification, opts Options) []Draft {
	if opts.CompletionWindow <= 0 {
		opts.CompletionWindow = DefaultCompletionWindow
	}
	if opts.Dedup == "" {
		opts.Dedup = DedupByMission
	}

	var candidates []Draft
	for _, m := range missions {
		if mission.IsOverdue(m, opts.Now) {
			candidates = append(candidates, overdueDraft(m))
		}
	}
	for _, m := range missions {
		if m.Priority == mission.PriorityCritical && m.Status == mission.StatusActive {
			candidates = append(candidates, criticalDraft(m))
		}
	}
	cutoff := opts.Now.Add(-opts.CompletionWindow)
	for _, m := range missions {
		if m.Status == mission.StatusCompleted && m.UpdatedAt.After(cutoff) {
			candidates = append(candidates, completedDraft(m))
		}
	}

	var drafts []Draft
	for _, d := range candidates {
		if !isDuplicate(d, existing, opts.Dedup) {
			drafts = append(drafts, d)
		}
	}
	return drafts
}

func isDuplicate(d Draft, existing []Notification, mode DedupMode) bool {
	for _, n := range existing {
		switch mode {
		case DedupByTitle:
			if n.Type == d.Type && missionTitleIn(n, d) {
				return true
			}
		default:
			if n.Rule == d.Rule && n.MissionID == d.MissionID {
				return true
			}
		}
	}
	return false
}

// missionTitleIn reports whether the title of n contains the title of the
// mission that produced d. Notification titles are fixed strings, so this
// rarely matches and the same alert repeats.
func missionTitleIn(n Notification, d Draft) bool {
	if d.MissionTitle == "" {
		return false
	}
	return strings.Contains(n.Title, d.MissionTitle)
}

func overdueDraft(m *mission.Mission) Draft {
	return Draft{
		Type:      TypeError,
		Title:     TitleOverdue,
		Message:   fmt.Sprintf("Operation %q has exceeded deadline and requires immediate attention.", m.Title),
		MissionID: m.ID,
		Rule:      RuleOverdue,

		MissionTitle: m.Title,
	}
}

func criticalDraft(m *mission.Mission) Draft {
	return Draft{
		Type:      TypeWarning,
		Title:     TitleCriticalActive,
		Message:   fmt.Sprintf("High-priority operation %q is currently in progress.", m.Title),
		MissionID: m.ID,
		Rule:      RuleCriticalActive,

		MissionTitle: m.Title,
	}
}

func completedDraft(m *mission.Mission) Draft {
	return Draft{
		Type:      TypeSuccess,
		Title:     TitleCompleted,
		Message:   fmt.Sprintf("Operation %q has been successfully completed.", m.Title),
		MissionID: m.ID,
		Rule:      RuleRecentCompletion,

		MissionTitle: m.Title,
	}
}

// Stamp turns a draft into an unread notification.
func Stamp(d Draft, id string, now time.Time) Notification {
	return Notification{
		ID:        id,
		Type:      d.Type,
		Title:     d.Title,
		Message:   d.Message,
		Timestamp: now,
		MissionID: d.MissionID,
		Rule:      d.Rule,
	}
}

// Prepend puts n at the head of list and drops the oldest entries beyond limit.
func Prepend(list []Notification, n Notification, limit int) []Notification {
	if limit <= 0 {
		limit = MaxNotifications
	}
	out := make([]Notification, 0, min(len(list)+1, limit))
	out = append(out, n)
	for _, existing := range list {
		if len(out) == limit {
			break
		}
		out = append(out, existing)
	}
	return out
}

// UnreadCount counts notifications not yet marked read.
func UnreadCount(list []Notification) int {
	count := 0
	for _, n := range list {
		if !n.Read {
			count++
		}
	}
	return count
}
