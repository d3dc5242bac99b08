// Package cli defines the missionctl command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/missionctl/internal/version"
)

// NewRootCmd builds the complete command tree. A fresh tree is built for
// every invocation so flag values never leak between console commands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "missionctl",
		Short:   "missionctl - mission control for field operations",
		Version: version.String(),
		Long: `missionctl tracks missions, their audit logs and progress, and raises
alerts for overdue, critical and recently completed operations.

Log in first:
  missionctl login admin --password admin123`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Session
	rootCmd.AddCommand(LoginCmd())
	rootCmd.AddCommand(LogoutCmd())
	rootCmd.AddCommand(WhoAmICmd())

	// Missions
	rootCmd.AddCommand(MissionCmd())
	rootCmd.AddCommand(DashboardCmd())
	rootCmd.AddCommand(OperativesCmd())
	rootCmd.AddCommand(NotificationsCmd())

	// Preferences and setup
	rootCmd.AddCommand(ThemeCmd())
	rootCmd.AddCommand(ResetCmd())
	rootCmd.AddCommand(ConfigCmd())
	rootCmd.AddCommand(ConsoleCmd())

	return rootCmd
}
