package primary

import (
	"context"

	coresession "github.com/example/missionctl/internal/core/session"
)

// Subject is the authenticated session principal at the port boundary.
type Subject = coresession.Subject

// SessionService defines the primary port for the mock identity manager.
type SessionService interface {
	// Login checks credentials after the simulated latency.
	// A credential mismatch returns false and changes nothing; the error is
	// reserved for a failure to persist the new session.
	Login(ctx context.Context, username, password string) (bool, error)

	// Logout clears the active session and the persisted subject.
	Logout(ctx context.Context) error

	// RestoreSession reactivates the persisted subject, if any.
	RestoreSession(ctx context.Context) (*Subject, error)

	// Current returns the active subject, or nil when unauthenticated.
	Current() *Subject

	// Subscribe registers a listener called after every session change.
	Subscribe(listener func(subject *Subject))
}
