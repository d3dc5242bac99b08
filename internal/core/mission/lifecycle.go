package mission

import "time"

// InitialStatus returns the initial status for a new mission.
func InitialStatus() Status {
	return StatusPending
}

// NewMission builds a mission from caller fields.
// The store supplies the ID and the current time; createdAt and updatedAt
// start out equal and the log sequence starts empty.
func NewMission(id string, f Fields, now time.Time) *Mission {
	status := f.Status
	if status == "" {
		status = InitialStatus()
	}
	priority := f.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	department := f.Department
	if department == "" {
		department = DefaultDepartment
	}

	m := &Mission{
		ID:                id,
		Title:             f.Title,
		Description:       f.Description,
		Status:            status,
		Priority:          priority,
		AssignedTo:        append([]string{}, f.AssignedTo...),
		CreatedAt:         now,
		UpdatedAt:         now,
		Progress:          f.Progress,
		Logs:              []Log{},
		EstimatedDuration: f.EstimatedDuration,
		Department:        department,
		ClientName:        f.ClientName,
	}
	if f.Deadline != nil {
		d := *f.Deadline
		m.Deadline = &d
	}
	if f.Location != nil {
		l := *f.Location
		m.Location = &l
	}
	if f.ActualDuration != nil {
		a := *f.ActualDuration
		m.ActualDuration = &a
	}
	if f.Budget != nil {
		b := *f.Budget
		m.Budget = &b
	}
	return m
}

// ApplyPatch merges p into a copy of m and refreshes updatedAt.
// The ID and createdAt never change.
func ApplyPatch(m *Mission, p Patch, now time.Time) *Mission {
	out := m.Clone()

	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		out.AssignedTo = append([]string{}, p.AssignedTo...)
	}
	if p.Deadline != nil {
		d := *p.Deadline
		out.Deadline = &d
	}
	if p.Progress != nil {
		out.Progress = *p.Progress
	}
	if p.Location != nil {
		l := *p.Location
		out.Location = &l
	}
	if p.EstimatedDuration != nil {
		out.EstimatedDuration = *p.EstimatedDuration
	}
	if p.ActualDuration != nil {
		a := *p.ActualDuration
		out.ActualDuration = &a
	}
	if p.Department != nil {
		out.Department = *p.Department
	}
	if p.Budget != nil {
		b := *p.Budget
		out.Budget = &b
	}
	if p.ClientName != nil {
		out.ClientName = *p.ClientName
	}
	if p.Logs != nil {
		out.Logs = append([]Log{}, p.Logs...)
	}

	if p.ClearDeadline {
		out.Deadline = nil
	}
	if p.ClearLocation {
		out.Location = nil
	}
	if p.ClearActualDuration {
		out.ActualDuration = nil
	}
	if p.ClearBudget {
		out.Budget = nil
	}

	out.UpdatedAt = now
	return out
}

// NewLog builds a log entry stamped with now.
func NewLog(id string, f LogFields, now time.Time) Log {
	level := f.Level
	if level == "" {
		level = LevelInfo
	}
	return Log{
		ID:        id,
		Timestamp: now,
		Level:     level,
		Message:   f.Message,
		Details:   f.Details,
		Author:    f.Author,
	}
}

// AppendLogPatch returns the patch that appends entry after the existing logs.
// Prior entries are copied untouched, so the sequence only ever grows by one.
func AppendLogPatch(m *Mission, entry Log) Patch {
	logs := make([]Log, 0, len(m.Logs)+1)
	logs = append(logs, m.Logs...)
	logs = append(logs, entry)
	return Patch{Logs: logs}
}
