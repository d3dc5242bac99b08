// Package persistence contains the typed state repository that maps the
// application's three persisted keys onto a key-value store.
package persistence

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/example/missionctl/internal/ports/secondary"
	"github.com/example/missionctl/pkg/errors"
)

// Storage keys. These names are shared with existing installs and must not change.
const (
	KeyMissions = "missionControl_missions"
	KeyUser     = "missionControl_user"
	KeyTheme    = "missionControl_theme"
)

// AllKeys lists every key owned by the application.
var AllKeys = []string{KeyMissions, KeyUser, KeyTheme}

// StateRepository implements secondary.StateRepository as JSON documents in a KeyValueStore.
type StateRepository struct {
	store secondary.KeyValueStore
}

// NewStateRepository creates a repository over store.
func NewStateRepository(store secondary.KeyValueStore) *StateRepository {
	return &StateRepository{store: store}
}

// LoadMissions reads and decodes the mission array.
func (r *StateRepository) LoadMissions(ctx context.Context) ([]*secondary.MissionRecord, error) {
	data, ok, err := r.store.Get(ctx, KeyMissions)
	if err != nil {
		return nil, errors.NewPersistError("read", KeyMissions, err)
	}
	if !ok || len(data) == 0 {
		return []*secondary.MissionRecord{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewPersistError("decode", KeyMissions, err)
	}

	// One malformed record must not cost the rest of the collection.
	out := make([]*secondary.MissionRecord, 0, len(raw))
	var skipped []error
	for i, msg := range raw {
		var rec *secondary.MissionRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if rec != nil {
			out = append(out, rec)
		}
	}
	if len(skipped) > 0 {
		return out, errors.NewPersistError("decode", KeyMissions, stderrors.Join(skipped...))
	}
	return out, nil
}

// SaveMissions encodes and writes the whole mission array.
func (r *StateRepository) SaveMissions(ctx context.Context, missions []*secondary.MissionRecord) error {
	if missions == nil {
		missions = []*secondary.MissionRecord{}
	}
	return r.write(ctx, KeyMissions, missions)
}

// LoadUser reads the persisted subject.
func (r *StateRepository) LoadUser(ctx context.Context) (*secondary.UserRecord, error) {
	data, ok, err := r.store.Get(ctx, KeyUser)
	if err != nil {
		return nil, errors.NewPersistError("read", KeyUser, err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}

	var user *secondary.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, errors.NewPersistError("decode", KeyUser, err)
	}
	return user, nil
}

// SaveUser writes the subject, or deletes the key when user is nil.
func (r *StateRepository) SaveUser(ctx context.Context, user *secondary.UserRecord) error {
	if user == nil {
		if err := r.store.Delete(ctx, KeyUser); err != nil {
			return errors.NewPersistError("delete", KeyUser, err)
		}
		return nil
	}
	return r.write(ctx, KeyUser, user)
}

// LoadTheme reads the theme as a plain string.
func (r *StateRepository) LoadTheme(ctx context.Context) (string, error) {
	data, ok, err := r.store.Get(ctx, KeyTheme)
	if err != nil {
		return "", errors.NewPersistError("read", KeyTheme, err)
	}
	if !ok {
		return "", nil
	}
	return string(data), nil
}

// SaveTheme writes the theme as a plain string.
func (r *StateRepository) SaveTheme(ctx context.Context, theme string) error {
	if err := r.store.Set(ctx, KeyTheme, []byte(theme)); err != nil {
		return errors.NewPersistError("write", KeyTheme, err)
	}
	return nil
}

// ClearAll deletes every application key, reporting the first failure.
func (r *StateRepository) ClearAll(ctx context.Context) error {
	var first error
	for _, key := range AllKeys {
		if err := r.store.Delete(ctx, key); err != nil && first == nil {
			first = errors.NewPersistError("delete", key, err)
		}
	}
	return first
}

func (r *StateRepository) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewPersistError("encode", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return errors.NewPersistError("write", key, err)
	}
	return nil
}

var _ secondary.StateRepository = (*StateRepository)(nil)
