package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	coremission "github.com/example/missionctl/internal/core/mission"
	"github.com/example/missionctl/internal/ports/primary"
	"github.com/example/missionctl/pkg/errors"
)

// MissionAdapter is a thin adapter that translates CLI operations to MissionService calls.
// It depends only on the MissionService interface, enabling easy testing with mocks.
type MissionAdapter struct {
	service primary.MissionService
	out     io.Writer
}

// NewMissionAdapter creates a new MissionAdapter with the given service.
func NewMissionAdapter(service primary.MissionService, out io.Writer) *MissionAdapter {
	return &MissionAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new mission.
func (a *MissionAdapter) Create(ctx context.Context, fields coremission.Fields) error {
	mission, err := a.service.Create(ctx, fields)
	if mission == nil {
		return describeValidation(err)
	}

	fmt.Fprintf(a.out, "✓ Created mission %s: %s\n", mission.ID, mission.Title)
	return warnIfPersistFailed(a.out, err)
}

// List lists missions matching filter.
func (a *MissionAdapter) List(filter coremission.Filter) error {
	missions := a.service.List(filter)

	if len(missions) == 0 {
		fmt.Fprintln(a.out, "No missions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-38s %-10s %-9s %-5s %s\n", "ID", "STATUS", "PRIORITY", "PROG", "TITLE")
	fmt.Fprintln(a.out, rule)
	for _, m := range missions {
		fmt.Fprintf(a.out, "%-38s %s %s %4d%% %s\n",
			m.ID, statusBadge(m.Status), priorityBadge(m.Priority), m.Progress, truncate(m.Title, 40))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single mission, newest log entries first.
func (a *MissionAdapter) Show(missionID string) error {
	m, ok := a.service.FindByID(missionID)
	if !ok {
		return fmt.Errorf("mission %s: %w", missionID, errors.ErrNotFound)
	}

	fmt.Fprintf(a.out, "\nMission:    %s\n", m.ID)
	fmt.Fprintf(a.out, "Title:      %s\n", m.Title)
	fmt.Fprintf(a.out, "Status:     %s\n", statusLabel(m.Status))
	fmt.Fprintf(a.out, "Priority:   %s\n", priorityLabel(m.Priority))
	fmt.Fprintf(a.out, "Progress:   %s %d%%\n", progressBar(m.Progress, 20), m.Progress)
	fmt.Fprintf(a.out, "Department: %s\n", m.Department)
	if len(m.AssignedTo) > 0 {
		fmt.Fprintf(a.out, "Assigned:   %s\n", strings.Join(m.AssignedTo, ", "))
	}
	if m.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", m.Description)
	}
	if m.ClientName != "" {
		fmt.Fprintf(a.out, "Client:     %s\n", m.ClientName)
	}
	if m.Budget != nil {
		fmt.Fprintf(a.out, "Budget:     $%.2f\n", *m.Budget)
	}
	if m.Location != nil {
		fmt.Fprintf(a.out, "Location:   %s (%.4f, %.4f)\n", m.Location.Name, m.Location.Lat, m.Location.Lng)
	}
	fmt.Fprintf(a.out, "Estimate:   %dm\n", m.EstimatedDuration)
	if m.ActualDuration != nil {
		fmt.Fprintf(a.out, "Actual:     %dm\n", *m.ActualDuration)
	}
	fmt.Fprintf(a.out, "Created:    %s\n", formatTime(m.CreatedAt))
	fmt.Fprintf(a.out, "Updated:    %s\n", formatTime(m.UpdatedAt))
	if m.Deadline != nil {
		fmt.Fprintf(a.out, "Deadline:   %s\n", formatTime(*m.Deadline))
	}

	fmt.Fprintf(a.out, "\nLog (%d):\n", len(m.Logs))
	for _, l := range coremission.LogsNewestFirst(m) {
		fmt.Fprintf(a.out, "  %s %s %s", formatTime(l.Timestamp), pad(levelColor(l.Level), strings.ToUpper(string(l.Level)), 7), l.Message)
		if l.Author != "" {
			fmt.Fprintf(a.out, " (%s)", l.Author)
		}
		fmt.Fprintln(a.out)
		if l.Details != "" {
			fmt.Fprintf(a.out, "      %s\n", l.Details)
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// Update applies a partial update.
func (a *MissionAdapter) Update(ctx context.Context, missionID string, patch coremission.Patch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("must specify at least one field to update")
	}

	_, err := a.service.Update(ctx, missionID, patch)
	if err := warnIfPersistFailed(a.out, err); err != nil {
		return describeValidation(err)
	}

	fmt.Fprintf(a.out, "✓ Mission %s updated\n", missionID)
	return nil
}

// SetStatus changes a mission's status.
func (a *MissionAdapter) SetStatus(ctx context.Context, missionID string, status coremission.Status) error {
	m, err := a.service.ChangeStatus(ctx, missionID, status)
	if m == nil {
		return describeValidation(err)
	}

	fmt.Fprintf(a.out, "✓ Mission %s is now %s\n", missionID, statusLabel(m.Status))
	return warnIfPersistFailed(a.out, err)
}

// SetProgress changes a mission's progress.
func (a *MissionAdapter) SetProgress(ctx context.Context, missionID string, progress int) error {
	m, err := a.service.UpdateProgress(ctx, missionID, progress)
	if m == nil {
		return describeValidation(err)
	}

	fmt.Fprintf(a.out, "✓ Mission %s progress %s %d%%\n", missionID, progressBar(m.Progress, 20), m.Progress)
	return warnIfPersistFailed(a.out, err)
}

// AddLog appends a log entry.
func (a *MissionAdapter) AddLog(ctx context.Context, missionID string, fields coremission.LogFields) error {
	entry, err := a.service.AppendLog(ctx, missionID, fields)
	if entry == nil {
		return describeValidation(err)
	}

	fmt.Fprintf(a.out, "✓ Logged to %s: %s\n", missionID, entry.Message)
	return warnIfPersistFailed(a.out, err)
}

// Delete removes a mission.
func (a *MissionAdapter) Delete(ctx context.Context, missionID string) error {
	m, ok := a.service.FindByID(missionID)
	if !ok {
		fmt.Fprintf(a.out, "Mission %s not found, nothing to delete\n", missionID)
		return nil
	}

	if err := warnIfPersistFailed(a.out, a.service.Remove(ctx, missionID)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted mission %s: %s\n", m.ID, m.Title)
	return nil
}

// Refresh reloads the collection from storage.
func (a *MissionAdapter) Refresh(ctx context.Context) error {
	if err := warnIfPersistFailed(a.out, a.service.Refresh(ctx)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Reloaded %d missions\n", len(a.service.List(coremission.Filter{})))
	return nil
}

// Timer renders one frame of the mission timer at now.
func (a *MissionAdapter) Timer(missionID string, now time.Time) error {
	m, ok := a.service.FindByID(missionID)
	if !ok {
		return fmt.Errorf("mission %s: %w", missionID, errors.ErrNotFound)
	}

	r := coremission.ReadTimer(m.CreatedAt, m.EstimatedDuration, now)
	line := fmt.Sprintf("%s  %s  %s", coremission.FormatElapsed(r.Elapsed), progressBar(int(r.Progress), 20), r.FormatRemaining(m.EstimatedDuration))
	if r.Overtime {
		line = levelColor(coremission.LevelError).Sprint(line)
	}
	fmt.Fprintf(a.out, "\r%s: %s", m.Title, line)
	return nil
}

// Operatives lists the operatives available for assignment.
func (a *MissionAdapter) Operatives() {
	fmt.Fprintf(a.out, "\n%-10s %-16s %-14s %s\n", "ID", "NAME", "DEPARTMENT", "ROLE")
	fmt.Fprintln(a.out, rule)
	for _, op := range coremission.Operatives {
		fmt.Fprintf(a.out, "%-10s %-16s %-14s %s\n", op.ID, op.Name, op.Department, op.Role)
	}
	fmt.Fprintln(a.out)
}

// Dashboard shows threat metrics and the filtered missions grouped by status.
func (a *MissionAdapter) Dashboard(filter coremission.Filter) {
	d := a.service.Dashboard(filter)

	fmt.Fprintln(a.out, "\nTHREAT ASSESSMENT")
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Critical active: %s   High active: %s   Overdue: %s\n",
		priorityColor(coremission.PriorityCritical).Sprint(d.Metrics.CriticalActive),
		priorityColor(coremission.PriorityHigh).Sprint(d.Metrics.HighActive),
		levelColor(coremission.LevelError).Sprint(d.Metrics.Overdue))
	fmt.Fprintf(a.out, "Departments: %s\n", strings.Join(d.Departments, ", "))
	fmt.Fprintf(a.out, "Showing %d of %d missions\n", d.Matched, d.Total)

	for _, status := range coremission.Statuses {
		group := d.Groups[status]
		fmt.Fprintf(a.out, "\n%s (%d)\n", statusLabel(status), len(group))
		for _, m := range group {
			fmt.Fprintf(a.out, "  %s %-38s %s\n", priorityBadge(m.Priority), m.ID, truncate(m.Title, 40))
		}
	}
	fmt.Fprintln(a.out)
}

// describeValidation flattens field errors into one line per field.
func describeValidation(err error) error {
	var verrs errors.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) < 2 {
		return err
	}
	lines := make([]string, len(verrs))
	for i, v := range verrs {
		lines[i] = fmt.Sprintf("  - %s: %s", v.Field, v.Message)
	}
	return fmt.Errorf("%w:\n%s", errors.ErrInvalidInput, strings.Join(lines, "\n"))
}
