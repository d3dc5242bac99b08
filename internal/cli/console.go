package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/example/missionctl/internal/wire"
)

// ConsoleCmd returns the console command
func ConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run commands in one long-lived session",
		Long: `Start an interactive console. Every missionctl command can be typed
without the leading "missionctl". Alerts and their read state are kept
for the life of the console.

Type "exit" or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
			return runConsole(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
		},
	}
}

// runConsole executes one command per input line until EOF or "exit".
// Command errors are printed and the loop continues.
func runConsole(ctx context.Context, in io.Reader, out io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, consolePrompt())
		}
		if !scanner.Scan() {
			break
		}

		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return nil
		case "console":
			fmt.Fprintln(out, "Already in the console")
			continue
		}

		root := NewRootCmd()
		root.SetArgs(args)
		root.SetIn(lineReader{scanner})
		root.SetOut(out)
		root.SetErr(out)
		if err := root.ExecuteContext(ctx); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return nil
}

// lineReader gives commands that prompt, such as login, the next console
// input line.
type lineReader struct {
	scanner *bufio.Scanner
}

func (r lineReader) Read(p []byte) (int, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	return copy(p, r.scanner.Text()+"\n"), nil
}

// consolePrompt shows the operator and the unread alert count. Rules are
// evaluated first so time-based alerts appear without a mission change.
func consolePrompt() string {
	subject := wire.SessionService().Current()
	if subject == nil {
		return "missionctl> "
	}

	notifications := wire.NotificationService()
	notifications.Evaluate()

	var b strings.Builder
	b.WriteString("missionctl [")
	b.WriteString(subject.Username)
	if unread := notifications.UnreadCount(); unread > 0 {
		b.WriteString(" ")
		b.WriteString(color.New(color.FgRed).Sprintf("●%d", unread))
	}
	b.WriteString("]> ")
	return b.String()
}
