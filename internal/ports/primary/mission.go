// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	coremission "github.com/example/missionctl/internal/core/mission"
)

// Mission is the mission entity at the port boundary.
type Mission = coremission.Mission

// MissionLog is a mission log entry at the port boundary.
type MissionLog = coremission.Log

// MissionService defines the primary port for mission operations.
// It is the single source of truth for the mission collection: every
// mutation is applied in memory first and then written through to storage.
//
// Mutations that succeed in memory but fail to persist return the result
// together with a *errors.PersistError; the in-memory change stands.
type MissionService interface {
	// Load hydrates the collection from storage, seeding the demo dataset
	// when storage is empty and migrating legacy records otherwise.
	Load(ctx context.Context) error

	// Refresh discards memory and loads again.
	Refresh(ctx context.Context) error

	// Create adds a new mission built from fields.
	Create(ctx context.Context, fields coremission.Fields) (*Mission, error)

	// Update merges patch into the mission with the given ID.
	Update(ctx context.Context, missionID string, patch coremission.Patch) (*Mission, error)

	// Remove deletes a mission. Unknown IDs are a no-op.
	Remove(ctx context.Context, missionID string) error

	// AppendLog appends a log entry to a mission.
	AppendLog(ctx context.Context, missionID string, fields coremission.LogFields) (*MissionLog, error)

	// ChangeStatus updates the status and records an audit log entry.
	ChangeStatus(ctx context.Context, missionID string, status coremission.Status) (*Mission, error)

	// UpdateProgress updates progress and records an audit log entry.
	UpdateProgress(ctx context.Context, missionID string, progress int) (*Mission, error)

	// FindByID returns a copy of the mission with the given ID.
	FindByID(missionID string) (*Mission, bool)

	// List returns copies of the missions matching filter, in store order.
	List(filter coremission.Filter) []*Mission

	// Dashboard summarises the missions matching filter.
	Dashboard(filter coremission.Filter) *Dashboard

	// Subscribe registers a listener called with a snapshot after every change.
	Subscribe(listener func(missions []*Mission))
}

// Dashboard is the aggregated view shown by the dashboard command.
type Dashboard struct {
	Metrics     coremission.ThreatMetrics
	Groups      map[coremission.Status][]*Mission
	Departments []string
	Total       int
	Matched     int
}
