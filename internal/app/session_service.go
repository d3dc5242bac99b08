package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	coresession "github.com/example/missionctl/internal/core/session"
	"github.com/example/missionctl/internal/ports/primary"
	"github.com/example/missionctl/internal/ports/secondary"
)

// SessionServiceImpl implements the SessionService interface against a
// static credential table.
type SessionServiceImpl struct {
	repo        secondary.StateRepository
	credentials coresession.CredentialTable
	delay       time.Duration
	env         Env
	log         *slog.Logger

	mu        sync.Mutex
	current   *coresession.Subject
	listeners []func(*coresession.Subject)
}

// NewSessionService creates a new SessionService. delay is the simulated
// login latency.
func NewSessionService(
	repo secondary.StateRepository,
	credentials coresession.CredentialTable,
	delay time.Duration,
	env Env,
) *SessionServiceImpl {
	env = env.withDefaults()
	return &SessionServiceImpl{
		repo:        repo,
		credentials: credentials,
		delay:       delay,
		env:         env,
		log:         env.Logger.With("component", "session"),
	}
}

// Login waits for the simulated latency, then checks the credentials.
// The wait always runs to completion, even if ctx is cancelled.
func (s *SessionServiceImpl) Login(ctx context.Context, username, password string) (bool, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	subject, ok := s.credentials.Authenticate(username, password, s.env.Now())
	if !ok {
		s.log.Info("login rejected", "username", username)
		return false, nil
	}

	s.mu.Lock()
	s.current = &subject
	s.mu.Unlock()
	s.log.Info("login accepted", "username", username, "role", subject.Role)

	// The session stands even when it cannot be persisted.
	err := s.repo.SaveUser(ctx, subjectToRecord(&subject))
	if err != nil {
		s.log.Error("failed to persist session", "error", err)
	}

	s.notify()
	return true, err
}

// Logout clears the active session and the persisted subject.
func (s *SessionServiceImpl) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	err := s.repo.SaveUser(ctx, nil)
	if err != nil {
		s.log.Error("failed to clear persisted session", "error", err)
	}

	s.notify()
	return err
}

// RestoreSession reactivates the persisted subject. Read failures leave the
// manager unauthenticated and are returned for logging only.
func (s *SessionServiceImpl) RestoreSession(ctx context.Context) (*coresession.Subject, error) {
	record, err := s.repo.LoadUser(ctx)
	if err != nil {
		s.log.Warn("failed to restore session", "error", err)
		record = nil
	}

	var subject *coresession.Subject
	if record != nil && record.Username != "" {
		subject = recordToSubject(record)
	}

	s.mu.Lock()
	s.current = subject
	s.mu.Unlock()

	s.notify()
	return s.Current(), err
}

// Current returns a copy of the active subject, or nil.
func (s *SessionServiceImpl) Current() *coresession.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	subject := *s.current
	return &subject
}

// Subscribe registers a listener for session changes.
func (s *SessionServiceImpl) Subscribe(listener func(subject *coresession.Subject)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Reset drops the active session without touching storage.
func (s *SessionServiceImpl) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.notify()
}

func (s *SessionServiceImpl) notify() {
	current := s.Current()

	s.mu.Lock()
	listeners := append([]func(*coresession.Subject){}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(current)
	}
}

var _ primary.SessionService = (*SessionServiceImpl)(nil)
