package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/missionctl/internal/wire"
)

// NotificationsCmd returns the notifications command
func NotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"alerts"},
		Short:   "Show and manage mission alerts",
		Long: `Alerts are derived from the mission list while you are logged in:
overdue missions, active critical missions and recent completions.
They live for the current process only; use 'missionctl console' to keep
them across commands.`,
		Args: cobra.NoArgs,
		RunE: runNotificationList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List alerts, most recent first",
		Args:  cobra.NoArgs,
		RunE:  runNotificationList,
	})
	cmd.AddCommand(notificationReadCmd())
	cmd.AddCommand(notificationReadAllCmd())
	cmd.AddCommand(notificationClearCmd())

	return cmd
}

func runNotificationList(cmd *cobra.Command, args []string) error {
	if _, err := sessionContext(cmd); err != nil {
		return err
	}
	wire.NotificationAdapterWithOutput(cmd.OutOrStdout()).List()
	return nil
}

func notificationReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark one alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}
			return wire.NotificationAdapterWithOutput(cmd.OutOrStdout()).Read(args[0])
		},
	}
}

func notificationReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every alert as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}
			wire.NotificationAdapterWithOutput(cmd.OutOrStdout()).ReadAll()
			return nil
		},
	}
}

func notificationClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every alert",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}
			wire.NotificationAdapterWithOutput(cmd.OutOrStdout()).Clear()
			return nil
		},
	}
}
