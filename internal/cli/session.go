package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/missionctl/internal/ctxutil"
	"github.com/example/missionctl/internal/wire"
	"github.com/example/missionctl/pkg/errors"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in with an operator account",
		Long: `Log in with one of the built-in accounts. The password is read from
stdin when --password is not given.

Examples:
  missionctl login admin --password admin123
  missionctl login operator`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			return wire.SessionAdapterWithOutput(cmd.OutOrStdout()).Login(cmd.Context(), args[0], password)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapterWithOutput(cmd.OutOrStdout()).Logout(cmd.Context())
		},
	}
}

// WhoAmICmd returns the whoami command
func WhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapterWithOutput(cmd.OutOrStdout()).WhoAmI()
		},
	}
}

// sessionContext returns cmd's context carrying the logged-in operator, or
// ErrUnauthenticated when nobody is logged in.
func sessionContext(cmd *cobra.Command) (context.Context, error) {
	subject := wire.SessionService().Current()
	if subject == nil {
		return nil, fmt.Errorf("%w: run 'missionctl login' first", errors.ErrUnauthenticated)
	}
	return ctxutil.WithActor(cmd.Context(), ctxutil.Actor{
		Username: subject.Username,
		Role:     string(subject.Role),
	}), nil
}
