// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import "time"

// Status represents the lifecycle state of a mission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Statuses lists every status in dashboard display order.
var Statuses = []Status{StatusActive, StatusPending, StatusCompleted, StatusFailed}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Priority represents how urgent a mission is.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// LogLevel is the severity of a mission log entry.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
	LevelSuccess LogLevel = "success"
)

// Valid reports whether l is a known log level.
func (l LogLevel) Valid() bool {
	switch l {
	case LevelInfo, LevelWarning, LevelError, LevelSuccess:
		return true
	}
	return false
}

// DefaultDepartment is assigned to missions stored without a department.
const DefaultDepartment = "Operations"

// DefaultLogAuthor is assigned to legacy log entries stored without an author.
const DefaultLogAuthor = "System"

// Location is an optional named coordinate for a mission.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Log is an immutable audit entry owned by exactly one mission.
type Log struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Author    string    `json:"author,omitempty"`
}

// Mission is a trackable unit of work.
type Mission struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            Status     `json:"status"`
	Priority          Priority   `json:"priority"`
	AssignedTo        []string   `json:"assignedTo"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	Progress          int        `json:"progress"`
	Logs              []Log      `json:"logs"`
	Location          *Location  `json:"location,omitempty"`
	EstimatedDuration int        `json:"estimatedDuration"`
	ActualDuration    *int       `json:"actualDuration,omitempty"`
	Department        string     `json:"department,omitempty"`
	Budget            *float64   `json:"budget,omitempty"`
	ClientName        string     `json:"clientName,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (m *Mission) Clone() *Mission {
	if m == nil {
		return nil
	}
	c := *m
	c.AssignedTo = append([]string{}, m.AssignedTo...)
	c.Logs = append([]Log{}, m.Logs...)
	if m.Deadline != nil {
		d := *m.Deadline
		c.Deadline = &d
	}
	if m.Location != nil {
		l := *m.Location
		c.Location = &l
	}
	if m.ActualDuration != nil {
		a := *m.ActualDuration
		c.ActualDuration = &a
	}
	if m.Budget != nil {
		b := *m.Budget
		c.Budget = &b
	}
	return &c
}

// Fields are the caller-supplied attributes of a new mission.
// Identity, timestamps and logs are assigned by the store.
type Fields struct {
	Title             string
	Description       string
	Status            Status
	Priority          Priority
	AssignedTo        []string
	Deadline          *time.Time
	Progress          int
	Location          *Location
	EstimatedDuration int
	ActualDuration    *int
	Department        string
	Budget            *float64
	ClientName        string
}

// Patch is a partial update. Nil fields are left untouched. The Clear flags
// unset an optional field and win over a value given for the same field.
type Patch struct {
	Title             *string
	Description       *string
	Status            *Status
	Priority          *Priority
	AssignedTo        []string
	Deadline          *time.Time
	Progress          *int
	Location          *Location
	EstimatedDuration *int
	ActualDuration    *int
	Department        *string
	Budget            *float64
	ClientName        *string
	Logs              []Log

	ClearDeadline       bool
	ClearLocation       bool
	ClearActualDuration bool
	ClearBudget         bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssignedTo == nil && p.Deadline == nil &&
		p.Progress == nil && p.Location == nil && p.EstimatedDuration == nil &&
		p.ActualDuration == nil && p.Department == nil && p.Budget == nil &&
		p.ClientName == nil && p.Logs == nil &&
		!p.ClearDeadline && !p.ClearLocation && !p.ClearActualDuration && !p.ClearBudget
}

// LogFields are the caller-supplied attributes of a new log entry.
type LogFields struct {
	Level   LogLevel
	Message string
	Details string
	Author  string
}
