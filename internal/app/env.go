package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	coremission "github.com/example/missionctl/internal/core/mission"
	"github.com/example/missionctl/internal/ctxutil"
	"github.com/example/missionctl/internal/logging"
	"github.com/example/missionctl/pkg/errors"
)

// Env carries the ambient collaborators shared by every service.
// Zero fields are filled with production defaults.
type Env struct {
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = logging.Discard()
	}
	if e.Now == nil {
		e.Now = func() time.Time { return time.Now().UTC() }
	}
	if e.NewID == nil {
		e.NewID = uuid.NewString
	}
	return e
}

// guardContext builds the role guard input from the actor in ctx.
func guardContext(ctx context.Context) (coremission.GuardContext, error) {
	actor, ok := ctxutil.ActorFromContext(ctx)
	if !ok {
		return coremission.GuardContext{}, errors.ErrUnauthenticated
	}
	return coremission.GuardContext{
		Role:     coremission.Role(actor.Role),
		Username: actor.Username,
	}, nil
}
