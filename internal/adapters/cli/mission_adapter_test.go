package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	coremission "github.com/example/missionctl/internal/core/mission"
	"github.com/example/missionctl/internal/ports/primary"
	apperrors "github.com/example/missionctl/pkg/errors"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// mockMissionService implements primary.MissionService for testing
type mockMissionService struct {
	createFn         func(ctx context.Context, fields coremission.Fields) (*primary.Mission, error)
	updateFn         func(ctx context.Context, id string, patch coremission.Patch) (*primary.Mission, error)
	removeFn         func(ctx context.Context, id string) error
	appendLogFn      func(ctx context.Context, id string, fields coremission.LogFields) (*primary.MissionLog, error)
	changeStatusFn   func(ctx context.Context, id string, status coremission.Status) (*primary.Mission, error)
	updateProgressFn func(ctx context.Context, id string, progress int) (*primary.Mission, error)
	refreshFn        func(ctx context.Context) error
	missions         []*primary.Mission

	// Track calls for verification
	lastFields  coremission.Fields
	lastPatch   coremission.Patch
	lastFilter  coremission.Filter
	removeCalls int
}

func (m *mockMissionService) Load(ctx context.Context) error { return nil }

func (m *mockMissionService) Refresh(ctx context.Context) error {
	if m.refreshFn != nil {
		return m.refreshFn(ctx)
	}
	return nil
}

func (m *mockMissionService) Create(ctx context.Context, fields coremission.Fields) (*primary.Mission, error) {
	m.lastFields = fields
	if m.createFn != nil {
		return m.createFn(ctx, fields)
	}
	return &primary.Mission{ID: "msn-new", Title: fields.Title}, nil
}

func (m *mockMissionService) Update(ctx context.Context, id string, patch coremission.Patch) (*primary.Mission, error) {
	m.lastPatch = patch
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return &primary.Mission{ID: id}, nil
}

func (m *mockMissionService) Remove(ctx context.Context, id string) error {
	m.removeCalls++
	if m.removeFn != nil {
		return m.removeFn(ctx, id)
	}
	return nil
}

func (m *mockMissionService) AppendLog(ctx context.Context, id string, fields coremission.LogFields) (*primary.MissionLog, error) {
	if m.appendLogFn != nil {
		return m.appendLogFn(ctx, id, fields)
	}
	return &primary.MissionLog{ID: "log-1", Message: fields.Message}, nil
}

func (m *mockMissionService) ChangeStatus(ctx context.Context, id string, status coremission.Status) (*primary.Mission, error) {
	if m.changeStatusFn != nil {
		return m.changeStatusFn(ctx, id, status)
	}
	return &primary.Mission{ID: id, Status: status}, nil
}

func (m *mockMissionService) UpdateProgress(ctx context.Context, id string, progress int) (*primary.Mission, error) {
	if m.updateProgressFn != nil {
		return m.updateProgressFn(ctx, id, progress)
	}
	return &primary.Mission{ID: id, Progress: progress}, nil
}

func (m *mockMissionService) FindByID(id string) (*primary.Mission, bool) {
	for _, mission := range m.missions {
		if mission.ID == id {
			return mission, true
		}
	}
	return nil, false
}

func (m *mockMissionService) List(filter coremission.Filter) []*primary.Mission {
	m.lastFilter = filter
	return filter.Apply(m.missions)
}

func (m *mockMissionService) Dashboard(filter coremission.Filter) *primary.Dashboard {
	matched := filter.Apply(m.missions)
	return &primary.Dashboard{
		Metrics:     coremission.ThreatMetrics{CriticalActive: 1, Overdue: 2},
		Groups:      coremission.GroupByStatus(matched),
		Departments: coremission.Departments(m.missions),
		Total:       len(m.missions),
		Matched:     len(matched),
	}
}

func (m *mockMissionService) Subscribe(listener func([]*primary.Mission)) {}

func sampleMissions() []*primary.Mission {
	created := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return []*primary.Mission{
		{
			ID: "msn-001", Title: "Operation Nightfall", Description: "Harbour surveillance",
			Status: coremission.StatusActive, Priority: coremission.PriorityCritical, Progress: 45,
			AssignedTo: []string{"Agent Smith"}, Department: "Operations", CreatedAt: created, UpdatedAt: created,
			EstimatedDuration: 60,
			Logs: []coremission.Log{
				{ID: "l1", Timestamp: created, Level: coremission.LevelInfo, Message: "Briefing done", Author: "Agent Smith"},
				{ID: "l2", Timestamp: created.Add(time.Hour), Level: coremission.LevelWarning, Message: "Patrol spotted", Details: "Rerouted"},
			},
		},
		{
			ID: "msn-002", Title: "Silent Courier", Status: coremission.StatusPending,
			Priority: coremission.PriorityHigh, Department: "Intelligence", CreatedAt: created, UpdatedAt: created,
		},
	}
}

func TestMissionAdapter_Create(t *testing.T) {
	mock := &mockMissionService{}
	var out bytes.Buffer
	adapter := NewMissionAdapter(mock, &out)

	err := adapter.Create(context.Background(), coremission.Fields{Title: "Glasshouse"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if mock.lastFields.Title != "Glasshouse" {
		t.Errorf("expected title Glasshouse, got %q", mock.lastFields.Title)
	}
	if !strings.Contains(out.String(), "✓ Created mission msn-new: Glasshouse") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMissionAdapter_Create_ValidationErrors(t *testing.T) {
	mock := &mockMissionService{
		createFn: func(ctx context.Context, fields coremission.Fields) (*primary.Mission, error) {
			return nil, apperrors.ValidationErrors{
				apperrors.NewValidationError("title", "Mission title is required"),
				apperrors.NewValidationError("assignedTo", "At least one operative must be assigned"),
			}
		},
	}
	adapter := NewMissionAdapter(mock, &bytes.Buffer{})

	err := adapter.Create(context.Background(), coremission.Fields{})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "- title: Mission title is required") ||
		!strings.Contains(err.Error(), "- assignedTo:") {
		t.Errorf("expected one line per field, got %q", err.Error())
	}
}

func TestMissionAdapter_Create_PersistFailureIsWarning(t *testing.T) {
	mock := &mockMissionService{
		createFn: func(ctx context.Context, fields coremission.Fields) (*primary.Mission, error) {
			return &primary.Mission{ID: "msn-new", Title: fields.Title},
				apperrors.NewPersistError("write", "missionControl_missions", errors.New("disk full"))
		},
	}
	var out bytes.Buffer
	adapter := NewMissionAdapter(mock, &out)

	if err := adapter.Create(context.Background(), coremission.Fields{Title: "X"}); err != nil {
		t.Fatalf("persist failure should not fail the command: %v", err)
	}
	if !strings.Contains(out.String(), "not saved: disk full") {
		t.Errorf("expected persistence warning, got %q", out.String())
	}
}

func TestMissionAdapter_List(t *testing.T) {
	mock := &mockMissionService{missions: sampleMissions()}
	var out bytes.Buffer
	adapter := NewMissionAdapter(mock, &out)

	if err := adapter.List(coremission.Filter{Search: "night"}); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "msn-001") || !strings.Contains(output, "CRITICAL") {
		t.Errorf("expected msn-001 row, got %q", output)
	}
	if strings.Contains(output, "msn-002") {
		t.Errorf("filtered mission should not be listed: %q", output)
	}
	if mock.lastFilter.Search != "night" {
		t.Errorf("filter not passed through: %+v", mock.lastFilter)
	}
}

func TestMissionAdapter_List_Empty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewMissionAdapter(&mockMissionService{}, &out)

	if err := adapter.List(coremission.Filter{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No missions found") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMissionAdapter_Show(t *testing.T) {
	mock := &mockMissionService{missions: sampleMissions()}
	var out bytes.Buffer
	adapter := NewMissionAdapter(mock, &out)

	if err := adapter.Show("msn-001"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Operation Nightfall", "ACTIVE", "Agent Smith", "Log (2)", "Rerouted"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Index(output, "Patrol spotted") > strings.Index(output, "Briefing done") {
		t.Error("log entries should be newest first")
	}

	if err := adapter.Show("nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMissionAdapter_Update_RequiresField(t *testing.T) {
	adapter := NewMissionAdapter(&mockMissionService{}, &bytes.Buffer{})

	if err := adapter.Update(context.Background(), "msn-001", coremission.Patch{}); err == nil {
		t.Error("expected error for empty patch")
	}
}

func TestMissionAdapter_SetStatus_Forbidden(t *testing.T) {
	mock := &mockMissionService{
		changeStatusFn: func(ctx context.Context, id string, status coremission.Status) (*primary.Mission, error) {
			return nil, apperrors.ErrForbidden
		},
	}
	adapter := NewMissionAdapter(mock, &bytes.Buffer{})

	err := adapter.SetStatus(context.Background(), "msn-001", coremission.StatusCompleted)
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestMissionAdapter_SetProgress(t *testing.T) {
	var out bytes.Buffer
	adapter := NewMissionAdapter(&mockMissionService{}, &out)

	if err := adapter.SetProgress(context.Background(), "msn-001", 50); err != nil {
		t.Fatalf("SetProgress failed: %v", err)
	}
	if !strings.Contains(out.String(), "██████████░░░░░░░░░░] 50%") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMissionAdapter_Delete(t *testing.T) {
	mock := &mockMissionService{missions: sampleMissions()}
	var out bytes.Buffer
	adapter := NewMissionAdapter(mock, &out)

	if err := adapter.Delete(context.Background(), "msn-002"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Deleted mission msn-002: Silent Courier") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := adapter.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("deleting an unknown mission should be a no-op: %v", err)
	}
	if mock.removeCalls != 1 {
		t.Errorf("expected 1 Remove call, got %d", mock.removeCalls)
	}
}

func TestMissionAdapter_Timer(t *testing.T) {
	mock := &mockMissionService{missions: sampleMissions()}
	var out bytes.Buffer
	adapter := NewMissionAdapter(mock, &out)
	start := mock.missions[0].CreatedAt

	if err := adapter.Timer("msn-001", start.Add(90*time.Minute)); err != nil {
		t.Fatalf("Timer failed: %v", err)
	}
	if !strings.Contains(out.String(), "1h 30m 0s") || !strings.Contains(out.String(), "+30m overtime") {
		t.Errorf("unexpected timer output: %q", out.String())
	}
}

func TestMissionAdapter_Dashboard(t *testing.T) {
	mock := &mockMissionService{missions: sampleMissions()}
	var out bytes.Buffer
	adapter := NewMissionAdapter(mock, &out)

	adapter.Dashboard(coremission.Filter{Department: "Intelligence"})

	output := out.String()
	for _, want := range []string{"Critical active: 1", "Overdue: 2", "Intelligence, Operations", "Showing 1 of 2", "PENDING (1)", "ACTIVE (0)"} {
		if !strings.Contains(output, want) {
			t.Errorf("dashboard missing %q:\n%s", want, output)
		}
	}
}

func TestMissionAdapter_Operatives(t *testing.T) {
	var out bytes.Buffer
	NewMissionAdapter(&mockMissionService{}, &out).Operatives()

	if !strings.Contains(out.String(), "agent-001") || !strings.Contains(out.String(), "Agent Miller") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
