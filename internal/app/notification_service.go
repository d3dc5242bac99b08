package app

import (
	"log/slog"
	"sync"
	"time"

	coremission "github.com/example/missionctl/internal/core/mission"
	corenotification "github.com/example/missionctl/internal/core/notification"
	coresession "github.com/example/missionctl/internal/core/session"
	"github.com/example/missionctl/internal/ports/primary"
)

// NotificationOptions tune the notification deriver.
type NotificationOptions struct {
	Dedup            corenotification.DedupMode
	Max              int
	CompletionWindow time.Duration
}

// NotificationServiceImpl implements the NotificationService interface.
// Notifications live in memory only.
type NotificationServiceImpl struct {
	opts NotificationOptions
	env  Env
	log  *slog.Logger

	mu            sync.Mutex
	list          []corenotification.Notification
	missions      []*coremission.Mission
	authenticated bool
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(opts NotificationOptions, env Env) *NotificationServiceImpl {
	env = env.withDefaults()
	if opts.Max <= 0 {
		opts.Max = corenotification.MaxNotifications
	}
	if opts.CompletionWindow <= 0 {
		opts.CompletionWindow = corenotification.DefaultCompletionWindow
	}
	if opts.Dedup == "" {
		opts.Dedup = corenotification.DedupByMission
	}
	return &NotificationServiceImpl{
		opts: opts,
		env:  env,
		log:  env.Logger.With("component", "notifications"),
	}
}

// Attach subscribes the deriver to mission and session changes and takes
// their current state as its starting point.
func (s *NotificationServiceImpl) Attach(missions primary.MissionService, sessions primary.SessionService) {
	s.mu.Lock()
	s.missions = missions.List(coremission.Filter{})
	s.authenticated = sessions.Current() != nil
	s.mu.Unlock()

	missions.Subscribe(func(snapshot []*coremission.Mission) {
		s.mu.Lock()
		s.missions = snapshot
		s.mu.Unlock()
		s.Evaluate()
	})
	sessions.Subscribe(func(subject *coresession.Subject) {
		s.mu.Lock()
		s.authenticated = subject != nil
		s.mu.Unlock()
		s.Evaluate()
	})
}

// Evaluate runs the derivation rules over the latest mission snapshot.
// Nothing is derived without a session or without missions.
func (s *NotificationServiceImpl) Evaluate() []corenotification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || len(s.missions) == 0 {
		return nil
	}

	now := s.env.Now()
	drafts := corenotification.Evaluate(s.missions, s.list, corenotification.Options{
		Now:              now,
		CompletionWindow: s.opts.CompletionWindow,
		Dedup:            s.opts.Dedup,
	})

	added := make([]corenotification.Notification, 0, len(drafts))
	for _, d := range drafts {
		n := corenotification.Stamp(d, s.env.NewID(), now)
		s.list = corenotification.Prepend(s.list, n, s.opts.Max)
		added = append(added, n)
	}
	if len(added) > 0 {
		s.log.Debug("derived notifications", "count", len(added))
	}
	return added
}

// List returns a copy of the notifications, most recent first.
func (s *NotificationServiceImpl) List() []corenotification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]corenotification.Notification{}, s.list...)
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationServiceImpl) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return corenotification.UnreadCount(s.list)
}

// MarkAsRead marks one notification read.
func (s *NotificationServiceImpl) MarkAsRead(notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == notificationID {
			s.list[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllAsRead marks every notification read.
func (s *NotificationServiceImpl) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		s.list[i].Read = true
	}
}

// ClearNotifications empties the list. Conditions that still hold are
// derived again on the next evaluation.
func (s *NotificationServiceImpl) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
}

// AddNotification prepends a directly injected notification.
func (s *NotificationServiceImpl) AddNotification(req primary.AddNotificationRequest) corenotification.Notification {
	typ := req.Type
	if !typ.Valid() {
		typ = corenotification.TypeInfo
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := corenotification.Stamp(corenotification.Draft{
		Type:    typ,
		Title:   req.Title,
		Message: req.Message,
	}, s.env.NewID(), s.env.Now())
	s.list = corenotification.Prepend(s.list, n, s.opts.Max)
	return n
}

// Reset drops every notification and the cached mission snapshot.
func (s *NotificationServiceImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	s.missions = nil
}

var _ primary.NotificationService = (*NotificationServiceImpl)(nil)
