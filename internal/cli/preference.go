package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/missionctl/internal/wire"
)

// ThemeCmd returns the theme command
func ThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the display theme",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			wire.PreferenceAdapterWithOutput(cmd.OutOrStdout()).ShowTheme(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the display theme",
		Args:  cobra.NoArgs,
		Run:   cmd.Run,
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set [dark|light]",
		Short:     "Change the display theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PreferenceAdapterWithOutput(cmd.OutOrStdout()).SetTheme(cmd.Context(), args[0])
		},
	})

	return cmd
}

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored mission, session and preference",
		Long: `Delete every stored key and drop in-memory state. The demo missions are
seeded again on the next start.

WARNING: This is a destructive operation and requires --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete all data without --force")
			}
			return wire.PreferenceAdapterWithOutput(cmd.OutOrStdout()).Reset(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Confirm deletion")

	return cmd
}
