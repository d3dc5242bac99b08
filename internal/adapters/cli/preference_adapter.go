package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/missionctl/internal/ports/primary"
)

// PreferenceAdapter translates theme and reset commands to PreferenceService calls.
type PreferenceAdapter struct {
	service primary.PreferenceService
	out     io.Writer
}

// NewPreferenceAdapter creates a new PreferenceAdapter with the given service.
func NewPreferenceAdapter(service primary.PreferenceService, out io.Writer) *PreferenceAdapter {
	return &PreferenceAdapter{
		service: service,
		out:     out,
	}
}

// ShowTheme prints the current theme.
func (a *PreferenceAdapter) ShowTheme(ctx context.Context) {
	fmt.Fprintln(a.out, a.service.Theme(ctx))
}

// SetTheme stores a new theme.
func (a *PreferenceAdapter) SetTheme(ctx context.Context, theme string) error {
	if err := a.service.SetTheme(ctx, theme); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Theme set to %s\n", theme)
	return nil
}

// Reset clears every stored key and the in-memory state.
func (a *PreferenceAdapter) Reset(ctx context.Context) error {
	if err := a.service.ClearAllData(ctx); err != nil {
		return fmt.Errorf("failed to clear stored data: %w", err)
	}
	fmt.Fprintln(a.out, "✓ All data cleared")
	return nil
}
