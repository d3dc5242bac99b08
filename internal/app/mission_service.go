package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	coremission "github.com/example/missionctl/internal/core/mission"
	"github.com/example/missionctl/internal/ports/primary"
	"github.com/example/missionctl/internal/ports/secondary"
	"github.com/example/missionctl/pkg/errors"
)

// MissionServiceImpl implements the MissionService interface.
// It owns the in-memory mission collection and writes it through to the
// state repository after every mutation.
type MissionServiceImpl struct {
	repo secondary.StateRepository
	env  Env
	log  *slog.Logger

	mu        sync.Mutex
	missions  []*coremission.Mission
	forms     *storedForms
	listeners []func([]*coremission.Mission)
}

// NewMissionService creates a new MissionService with injected dependencies.
// The collection starts empty; call Load to hydrate it.
func NewMissionService(repo secondary.StateRepository, env Env) *MissionServiceImpl {
	env = env.withDefaults()
	return &MissionServiceImpl{
		repo:     repo,
		env:      env,
		log:      env.Logger.With("component", "missions"),
		missions: []*coremission.Mission{},
		forms:    newStoredForms(),
	}
}

// Load reads the collection from storage. An empty or unreadable collection
// is replaced by the demo dataset; anything else is migrated. Records that
// fail to decode are skipped. Either way the result is written back.
func (s *MissionServiceImpl) Load(ctx context.Context) error {
	records, err := s.repo.LoadMissions(ctx)
	if err != nil {
		if len(records) == 0 {
			s.log.Warn("failed to read missions, starting from an empty collection", "error", err)
		} else {
			s.log.Warn("skipped unreadable mission records", "kept", len(records), "error", err)
		}
	}

	forms := newStoredForms()
	var missions []*coremission.Mission
	if len(records) == 0 {
		missions = coremission.DemoMissions(s.env.Now())
		s.log.Info("seeded demo missions", "count", len(missions))
	} else {
		missions = make([]*coremission.Mission, len(records))
		for i, r := range records {
			missions[i] = recordToMission(r, forms)
		}
		missions = coremission.MigrateAll(missions)
	}

	s.mu.Lock()
	s.missions = missions
	s.forms = forms
	snapshot, persistErr := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snapshot)
	return persistErr
}

// Refresh discards the in-memory collection and loads it again.
func (s *MissionServiceImpl) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.missions = []*coremission.Mission{}
	s.mu.Unlock()

	return s.Load(ctx)
}

// Create adds a new mission.
func (s *MissionServiceImpl) Create(ctx context.Context, fields coremission.Fields) (*coremission.Mission, error) {
	// 1. Guard check
	guardCtx, err := guardContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := coremission.CanCreateMission(guardCtx).Error(); err != nil {
		return nil, err
	}

	// 2. Validate
	now := s.env.Now()
	if err := coremission.ValidateCreate(fields, now); err != nil {
		return nil, err
	}

	// 3. Build and append
	m := coremission.NewMission(s.env.NewID(), fields, now)

	s.mu.Lock()
	s.missions = append(s.missions, m)
	snapshot, persistErr := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snapshot)
	s.log.Info("mission created", "mission_id", m.ID, "actor", guardCtx.Username)
	return m.Clone(), persistErr
}

// Update merges patch into a mission. Log entries cannot be replaced through
// Update; use AppendLog.
func (s *MissionServiceImpl) Update(ctx context.Context, missionID string, patch coremission.Patch) (*coremission.Mission, error) {
	guardCtx, err := guardContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := coremission.CanEditMission(guardCtx).Error(); err != nil {
		return nil, err
	}
	if patch.Logs != nil {
		return nil, errors.NewValidationError("logs", "Log entries can only be appended")
	}
	if err := coremission.ValidatePatch(patch); err != nil {
		return nil, err
	}

	return s.mutate(ctx, missionID, func(m *coremission.Mission) *coremission.Mission {
		if patch.ClearDeadline {
			s.forms.forget(formKey(m.ID, "deadline"))
		}
		return coremission.ApplyPatch(m, patch, s.env.Now())
	})
}

// Remove deletes a mission. Unknown IDs are a no-op.
func (s *MissionServiceImpl) Remove(ctx context.Context, missionID string) error {
	guardCtx, err := guardContext(ctx)
	if err != nil {
		return err
	}
	if err := coremission.CanDeleteMission(guardCtx).Error(); err != nil {
		return err
	}

	s.mu.Lock()
	idx := s.indexLocked(missionID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.missions = append(s.missions[:idx:idx], s.missions[idx+1:]...)
	snapshot, persistErr := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snapshot)
	s.log.Info("mission removed", "mission_id", missionID, "actor", guardCtx.Username)
	return persistErr
}

// AppendLog appends a log entry. The author defaults to the acting operative.
func (s *MissionServiceImpl) AppendLog(ctx context.Context, missionID string, fields coremission.LogFields) (*coremission.Log, error) {
	guardCtx, err := guardContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := coremission.CanAddLog(guardCtx).Error(); err != nil {
		return nil, err
	}
	if err := coremission.ValidateLog(fields); err != nil {
		return nil, err
	}
	if fields.Author == "" {
		fields.Author = guardCtx.Username
	}

	var entry coremission.Log
	_, err = s.mutate(ctx, missionID, func(m *coremission.Mission) *coremission.Mission {
		now := s.env.Now()
		entry = coremission.NewLog(s.env.NewID(), fields, now)
		return coremission.ApplyPatch(m, coremission.AppendLogPatch(m, entry), now)
	})
	if entry.ID == "" {
		return nil, err
	}
	return &entry, err
}

// ChangeStatus sets the status and records the matching audit entry.
func (s *MissionServiceImpl) ChangeStatus(ctx context.Context, missionID string, status coremission.Status) (*coremission.Mission, error) {
	guardCtx, err := guardContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := coremission.CanEditMission(guardCtx).Error(); err != nil {
		return nil, err
	}
	if err := coremission.ValidatePatch(coremission.Patch{Status: &status}); err != nil {
		return nil, err
	}

	return s.mutate(ctx, missionID, func(m *coremission.Mission) *coremission.Mission {
		now := s.env.Now()
		updated := coremission.ApplyPatch(m, coremission.Patch{Status: &status}, now)
		entry := coremission.NewLog(s.env.NewID(), coremission.StatusChangeLog(status, guardCtx.Username), now)
		return coremission.ApplyPatch(updated, coremission.AppendLogPatch(updated, entry), now)
	})
}

// UpdateProgress sets progress and records the matching audit entry.
func (s *MissionServiceImpl) UpdateProgress(ctx context.Context, missionID string, progress int) (*coremission.Mission, error) {
	guardCtx, err := guardContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := coremission.CanEditMission(guardCtx).Error(); err != nil {
		return nil, err
	}
	if err := coremission.ValidateProgress(progress); err != nil {
		return nil, err
	}

	return s.mutate(ctx, missionID, func(m *coremission.Mission) *coremission.Mission {
		now := s.env.Now()
		updated := coremission.ApplyPatch(m, coremission.Patch{Progress: &progress}, now)
		entry := coremission.NewLog(s.env.NewID(), coremission.ProgressLog(progress, guardCtx.Username), now)
		return coremission.ApplyPatch(updated, coremission.AppendLogPatch(updated, entry), now)
	})
}

// FindByID returns a copy of the mission.
func (s *MissionServiceImpl) FindByID(missionID string) (*coremission.Mission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(missionID)
	if idx < 0 {
		return nil, false
	}
	return s.missions[idx].Clone(), true
}

// List returns copies of the missions matching filter.
func (s *MissionServiceImpl) List(filter coremission.Filter) []*coremission.Mission {
	return filter.Apply(s.snapshot())
}

// Dashboard groups the filtered missions by status. Metrics and the
// department list are computed over the whole collection.
func (s *MissionServiceImpl) Dashboard(filter coremission.Filter) *primary.Dashboard {
	all := s.snapshot()
	matched := filter.Apply(all)

	return &primary.Dashboard{
		Metrics:     coremission.ComputeThreatMetrics(all, s.env.Now()),
		Groups:      coremission.GroupByStatus(matched),
		Departments: coremission.Departments(all),
		Total:       len(all),
		Matched:     len(matched),
	}
}

// Subscribe registers a listener for collection changes.
func (s *MissionServiceImpl) Subscribe(listener func(missions []*coremission.Mission)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Reset empties the in-memory collection without touching storage.
func (s *MissionServiceImpl) Reset() {
	s.mu.Lock()
	s.missions = []*coremission.Mission{}
	s.forms = newStoredForms()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// mutate applies fn to the mission with the given ID and commits the result.
func (s *MissionServiceImpl) mutate(ctx context.Context, missionID string, fn func(*coremission.Mission) *coremission.Mission) (*coremission.Mission, error) {
	s.mu.Lock()
	idx := s.indexLocked(missionID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("mission %s: %w", missionID, errors.ErrNotFound)
	}
	updated := fn(s.missions[idx])
	s.missions[idx] = updated
	snapshot, persistErr := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snapshot)
	return updated.Clone(), persistErr
}

// commitLocked writes the collection through to storage. A failed write is
// logged and returned; the in-memory collection is kept either way.
func (s *MissionServiceImpl) commitLocked(ctx context.Context) ([]*coremission.Mission, error) {
	snapshot := s.snapshotLocked()
	if err := s.repo.SaveMissions(ctx, missionsToRecords(s.missions, s.forms)); err != nil {
		s.log.Error("failed to persist missions", "error", err)
		var perr *errors.PersistError
		if !errors.As(err, &perr) {
			perr = errors.NewPersistError("write", "missions", err)
		}
		return snapshot, perr
	}
	return snapshot, nil
}

func (s *MissionServiceImpl) indexLocked(missionID string) int {
	for i, m := range s.missions {
		if m.ID == missionID {
			return i
		}
	}
	return -1
}

func (s *MissionServiceImpl) snapshot() []*coremission.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *MissionServiceImpl) snapshotLocked() []*coremission.Mission {
	out := make([]*coremission.Mission, len(s.missions))
	for i, m := range s.missions {
		out[i] = m.Clone()
	}
	return out
}

// notify runs listeners outside the lock so they may call back into the service.
func (s *MissionServiceImpl) notify(snapshot []*coremission.Mission) {
	s.mu.Lock()
	listeners := append([]func([]*coremission.Mission){}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

var _ primary.MissionService = (*MissionServiceImpl)(nil)
