package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremission "github.com/example/missionctl/internal/core/mission"
	corenotification "github.com/example/missionctl/internal/core/notification"
	"github.com/example/missionctl/internal/ports/primary"
)

type notificationFixture struct {
	*testFixture
	missions      *MissionServiceImpl
	sessions      *SessionServiceImpl
	notifications *NotificationServiceImpl
}

func newNotificationFixture(t *testing.T, opts NotificationOptions) *notificationFixture {
	t.Helper()
	fx := newFixture()
	nf := &notificationFixture{
		testFixture:   fx,
		missions:      NewMissionService(fx.repo, fx.env),
		sessions:      newSessionService(t, fx),
		notifications: NewNotificationService(opts, fx.env),
	}
	nf.notifications.Attach(nf.missions, nf.sessions)
	require.NoError(t, nf.missions.Load(context.Background()))
	return nf
}

func (nf *notificationFixture) login(t *testing.T) {
	t.Helper()
	ok, err := nf.sessions.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNotifications_NoSessionNoEvaluation(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{})

	assert.Empty(t, nf.notifications.List())
	assert.Empty(t, nf.notifications.Evaluate())
}

func TestNotifications_DerivedOnLogin(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{})
	nf.login(t)

	list := nf.notifications.List()
	require.Len(t, list, 3)
	assert.Equal(t, 3, nf.notifications.UnreadCount())

	// Newest first: the last rule evaluated sits at the head.
	assert.Equal(t, corenotification.RuleRecentCompletion, list[0].Rule)
	assert.Equal(t, "msn-003", list[0].MissionID)
	assert.Equal(t, corenotification.RuleCriticalActive, list[1].Rule)
	assert.Equal(t, corenotification.RuleOverdue, list[2].Rule)
	assert.Equal(t, "msn-002", list[2].MissionID)
}

func TestNotifications_ExactlyOnePerCondition(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{})
	nf.login(t)

	for i := 0; i < 3; i++ {
		_, err := nf.missions.AppendLog(adminCtx(), "msn-002", coremission.LogFields{Message: "still late"})
		require.NoError(t, err)
	}

	overdue := 0
	for _, n := range nf.notifications.List() {
		if n.Rule == corenotification.RuleOverdue && n.MissionID == "msn-002" {
			overdue++
		}
	}
	assert.Equal(t, 1, overdue)
}

func TestNotifications_ClearThenReemit(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{})
	nf.login(t)

	nf.notifications.ClearNotifications()
	assert.Empty(t, nf.notifications.List())

	added := nf.notifications.Evaluate()
	assert.Len(t, added, 3, "conditions that still hold are derived again")
}

func TestNotifications_NewCriticalMission(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{})
	nf.login(t)

	_, err := nf.missions.ChangeStatus(adminCtx(), "msn-002", coremission.StatusActive)
	require.NoError(t, err)

	critical := coremission.PriorityCritical
	_, err = nf.missions.Update(adminCtx(), "msn-002", coremission.Patch{Priority: &critical})
	require.NoError(t, err)

	head := nf.notifications.List()[0]
	assert.Equal(t, corenotification.RuleCriticalActive, head.Rule)
	assert.Equal(t, "msn-002", head.MissionID)
	assert.False(t, head.Read)
}

func TestNotifications_MarkAsRead(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{})
	nf.login(t)
	first := nf.notifications.List()[0]

	assert.True(t, nf.notifications.MarkAsRead(first.ID))
	assert.False(t, nf.notifications.MarkAsRead("unknown"))
	assert.Equal(t, 2, nf.notifications.UnreadCount())

	nf.notifications.MarkAllAsRead()
	assert.Equal(t, 0, nf.notifications.UnreadCount())
	assert.Len(t, nf.notifications.List(), 3)
}

func TestNotifications_AddAndCap(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{Max: 5})

	for i := 0; i < 8; i++ {
		nf.notifications.AddNotification(primary.AddNotificationRequest{
			Type:  corenotification.TypeInfo,
			Title: "Broadcast",
		})
	}
	last := nf.notifications.AddNotification(primary.AddNotificationRequest{Type: "bogus", Title: "Last"})

	list := nf.notifications.List()
	assert.Len(t, list, 5)
	assert.Equal(t, last.ID, list[0].ID)
	assert.Equal(t, corenotification.TypeInfo, last.Type, "unknown types fall back to info")
}

func TestNotifications_Reset(t *testing.T) {
	nf := newNotificationFixture(t, NotificationOptions{})
	nf.login(t)

	nf.notifications.Reset()
	assert.Empty(t, nf.notifications.List())
	assert.Empty(t, nf.notifications.Evaluate(), "no missions cached after reset")
}
