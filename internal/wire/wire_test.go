package wire

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/missionctl/internal/config"
	coremission "github.com/example/missionctl/internal/core/mission"
	"github.com/example/missionctl/internal/logging"
)

func memoryConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Session.LoginDelay = 0
	return cfg
}

func TestNewApp_SeedsOnFirstRun(t *testing.T) {
	a, err := NewApp(context.Background(), t.TempDir(), memoryConfig(), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Missions.List(coremission.Filter{}), 4)
	assert.Nil(t, a.Sessions.Current())
	assert.Empty(t, a.Notifications.List(), "nothing is derived without a session")
}

func TestNewApp_LoginDerivesNotifications(t *testing.T) {
	a, err := NewApp(context.Background(), t.TempDir(), memoryConfig(), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	ok, err := a.Sessions.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)

	assert.NotEmpty(t, a.Notifications.List())
	assert.Equal(t, len(a.Notifications.List()), a.Notifications.UnreadCount())
}

func TestNewApp_SQLiteRestoresAcrossRuns(t *testing.T) {
	home := t.TempDir()
	cfg := memoryConfig()
	cfg.Storage.Backend = config.BackendSQLite
	cfg.Storage.Path = filepath.Join(home, "state.db")
	ctx := context.Background()

	first, err := NewApp(ctx, home, cfg, logging.Discard())
	require.NoError(t, err)
	ok, err := first.Sessions.Login(ctx, "operator", "operator123")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, first.Close())

	second, err := NewApp(ctx, home, cfg, logging.Discard())
	require.NoError(t, err)
	defer second.Close()

	subject := second.Sessions.Current()
	require.NotNil(t, subject, "session should be restored from storage")
	assert.Equal(t, "operator", subject.Username)
	assert.Len(t, second.Missions.List(coremission.Filter{}), 4)
}

func TestNewApp_ClearAllDataResetsServices(t *testing.T) {
	ctx := context.Background()
	a, err := NewApp(ctx, t.TempDir(), memoryConfig(), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Sessions.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, a.Preferences.SetTheme(ctx, "light"))

	require.NoError(t, a.Preferences.ClearAllData(ctx))

	assert.Nil(t, a.Sessions.Current())
	assert.Empty(t, a.Missions.List(coremission.Filter{}))
	assert.Empty(t, a.Notifications.List())
	assert.Equal(t, "dark", a.Preferences.Theme(ctx))
}

func TestSetDefault(t *testing.T) {
	a, err := NewApp(context.Background(), t.TempDir(), memoryConfig(), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	SetDefault(a)

	assert.Same(t, a, Default())
	assert.Same(t, a.Missions, MissionService())
}

type failingCloser struct{ closed bool }

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("busy")
}

func TestCloseStore_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	closer := &failingCloser{}

	closeStore(closer, logger)

	assert.True(t, closer.closed)
	assert.Contains(t, buf.String(), "failed to close store")
	assert.Contains(t, buf.String(), "busy")

	closeStore(nil, logger)
}
