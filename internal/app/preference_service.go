package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/missionctl/internal/ports/primary"
	"github.com/example/missionctl/internal/ports/secondary"
	"github.com/example/missionctl/pkg/errors"
)

// Resetter drops in-memory state during ClearAllData.
type Resetter interface {
	Reset()
}

// PreferenceServiceImpl implements the PreferenceService interface.
type PreferenceServiceImpl struct {
	repo      secondary.StateRepository
	resetters []Resetter
	log       *slog.Logger
}

// NewPreferenceService creates a new PreferenceService. resetters are
// cleared, in order, by ClearAllData.
func NewPreferenceService(repo secondary.StateRepository, env Env, resetters ...Resetter) *PreferenceServiceImpl {
	env = env.withDefaults()
	return &PreferenceServiceImpl{
		repo:      repo,
		resetters: resetters,
		log:       env.Logger.With("component", "preferences"),
	}
}

// Theme returns the stored theme, "dark" when unset or unreadable.
func (s *PreferenceServiceImpl) Theme(ctx context.Context) string {
	theme, err := s.repo.LoadTheme(ctx)
	if err != nil {
		s.log.Warn("failed to read theme", "error", err)
		return primary.ThemeDark
	}
	if theme == "" {
		return primary.ThemeDark
	}
	return theme
}

// SetTheme validates and stores the theme.
func (s *PreferenceServiceImpl) SetTheme(ctx context.Context, theme string) error {
	if theme != primary.ThemeDark && theme != primary.ThemeLight {
		return errors.NewValidationError("theme", fmt.Sprintf("unknown theme %q (want dark or light)", theme))
	}
	if err := s.repo.SaveTheme(ctx, theme); err != nil {
		s.log.Error("failed to persist theme", "error", err)
		return err
	}
	return nil
}

// ClearAllData deletes every persisted key and resets in-memory state.
// Memory is reset even when storage cannot be cleared.
func (s *PreferenceServiceImpl) ClearAllData(ctx context.Context) error {
	err := s.repo.ClearAll(ctx)
	if err != nil {
		s.log.Error("failed to clear stored data", "error", err)
	}
	for _, r := range s.resetters {
		r.Reset()
	}
	return err
}

var _ primary.PreferenceService = (*PreferenceServiceImpl)(nil)
