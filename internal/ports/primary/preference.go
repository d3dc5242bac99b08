package primary

import "context"

// Theme names accepted by SetTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// PreferenceService defines the primary port for UI preferences and data reset.
type PreferenceService interface {
	// Theme returns the stored theme, "dark" when unset or unreadable.
	Theme(ctx context.Context) string

	// SetTheme validates and stores the theme.
	SetTheme(ctx context.Context, theme string) error

	// ClearAllData deletes every persisted key and resets in-memory state.
	ClearAllData(ctx context.Context) error
}
