package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/missionctl/internal/ports/primary"
	"github.com/example/missionctl/pkg/errors"
)

// SessionAdapter translates login/logout/whoami to SessionService calls.
type SessionAdapter struct {
	service primary.SessionService
	out     io.Writer
}

// NewSessionAdapter creates a new SessionAdapter with the given service.
func NewSessionAdapter(service primary.SessionService, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		service: service,
		out:     out,
	}
}

// Login authenticates. A credential mismatch is reported as an error so the
// command exits non-zero.
func (a *SessionAdapter) Login(ctx context.Context, username, password string) error {
	fmt.Fprintln(a.out, "Authenticating...")

	ok, err := a.service.Login(ctx, username, password)
	if !ok {
		if err != nil {
			return err
		}
		return fmt.Errorf("invalid credentials. Access denied")
	}

	subject := a.service.Current()
	fmt.Fprintf(a.out, "✓ Access granted. Welcome, %s (%s)\n", displayName(subject), subject.Role)
	return warnIfPersistFailed(a.out, err)
}

// Logout ends the session.
func (a *SessionAdapter) Logout(ctx context.Context) error {
	if a.service.Current() == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err := warnIfPersistFailed(a.out, a.service.Logout(ctx)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Logged out")
	return nil
}

// WhoAmI shows the active subject.
func (a *SessionAdapter) WhoAmI() error {
	subject := a.service.Current()
	if subject == nil {
		return errors.ErrUnauthenticated
	}

	fmt.Fprintf(a.out, "Username:   %s\n", subject.Username)
	fmt.Fprintf(a.out, "Name:       %s\n", displayName(subject))
	fmt.Fprintf(a.out, "Role:       %s\n", subject.Role)
	if subject.Department != "" {
		fmt.Fprintf(a.out, "Department: %s\n", subject.Department)
	}
	fmt.Fprintf(a.out, "Last login: %s\n", formatTime(subject.LastLogin))
	return nil
}

func displayName(s *primary.Subject) string {
	if s.FullName != "" {
		return s.FullName
	}
	return s.Username
}
