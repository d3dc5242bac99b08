package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	coremission "github.com/example/missionctl/internal/core/mission"
	"github.com/example/missionctl/internal/wire"
)

// deadlineLayouts are tried in order when parsing --deadline.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

// MissionCmd returns the mission command
func MissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Manage missions",
		Long:  `Create, inspect, update and delete missions and their audit logs.`,
	}

	cmd.AddCommand(missionListCmd())
	cmd.AddCommand(missionShowCmd())
	cmd.AddCommand(missionCreateCmd())
	cmd.AddCommand(missionUpdateCmd())
	cmd.AddCommand(missionStatusCmd())
	cmd.AddCommand(missionProgressCmd())
	cmd.AddCommand(missionLogCmd())
	cmd.AddCommand(missionDeleteCmd())
	cmd.AddCommand(missionTimerCmd())
	cmd.AddCommand(missionRefreshCmd())

	return cmd
}

// filterFlags are shared by mission list and dashboard.
type filterFlags struct {
	search     string
	status     string
	priority   string
	department string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Match title, description, assignees or client")
	cmd.Flags().StringVar(&f.status, "status", "", "Filter by status (active, pending, completed, failed)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Filter by priority (critical, high, medium, low)")
	cmd.Flags().StringVar(&f.department, "department", "", "Filter by department")
}

func (f *filterFlags) filter() (coremission.Filter, error) {
	filter := coremission.Filter{
		Search:     f.search,
		Status:     coremission.Status(f.status),
		Priority:   coremission.Priority(f.priority),
		Department: f.department,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return filter, fmt.Errorf("unknown status %q", f.status)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return filter, fmt.Errorf("unknown priority %q", f.priority)
	}
	return filter, nil
}

func missionListCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List missions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).List(filter)
		},
	}

	flags.register(cmd)

	return cmd
}

func missionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [mission-id]",
		Short: "Show mission details and its log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}
			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).Show(args[0])
		},
	}
}

// missionFlags are the editable mission attributes shared by create and update.
type missionFlags struct {
	title          string
	description    string
	priority       string
	assign         []string
	deadline       string
	duration       int
	actualDuration int
	department     string
	budget         float64
	client         string
	locationName   string
	lat            float64
	lng            float64
	clear          []string
}

func (f *missionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Mission description")
	cmd.Flags().StringVar(&f.priority, "priority", string(coremission.PriorityMedium), "Priority (critical, high, medium, low)")
	cmd.Flags().StringSliceVarP(&f.assign, "assign", "a", nil, "Assigned operatives (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "Deadline (RFC3339, \"2006-01-02 15:04\" or \"2006-01-02\", local time)")
	cmd.Flags().IntVar(&f.duration, "duration", 240, "Estimated duration in minutes")
	cmd.Flags().StringVar(&f.department, "department", coremission.DefaultDepartment, "Owning department")
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "Budget")
	cmd.Flags().StringVar(&f.client, "client", "", "Client name")
	cmd.Flags().StringVar(&f.locationName, "location-name", "", "Location name")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "Location latitude")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "Location longitude")
}

// location returns the location when all three location flags were given.
func (f *missionFlags) location(cmd *cobra.Command) *coremission.Location {
	fs := cmd.Flags()
	if !fs.Changed("location-name") || !fs.Changed("lat") || !fs.Changed("lng") {
		return nil
	}
	return &coremission.Location{Name: strings.TrimSpace(f.locationName), Lat: f.lat, Lng: f.lng}
}

func (f *missionFlags) fields(cmd *cobra.Command) (coremission.Fields, error) {
	deadline, err := parseDeadline(f.deadline)
	if err != nil {
		return coremission.Fields{}, err
	}

	fields := coremission.Fields{
		Title:             strings.TrimSpace(f.title),
		Description:       strings.TrimSpace(f.description),
		Status:            coremission.InitialStatus(),
		Priority:          coremission.Priority(f.priority),
		AssignedTo:        f.assign,
		Deadline:          deadline,
		EstimatedDuration: f.duration,
		Department:        f.department,
		ClientName:        strings.TrimSpace(f.client),
		Location:          f.location(cmd),
	}
	if cmd.Flags().Changed("budget") {
		budget := f.budget
		fields.Budget = &budget
	}
	return fields, nil
}

func (f *missionFlags) patch(cmd *cobra.Command) (coremission.Patch, error) {
	fs := cmd.Flags()
	var patch coremission.Patch

	if fs.Changed("title") {
		patch.Title = &f.title
	}
	if fs.Changed("description") {
		patch.Description = &f.description
	}
	if fs.Changed("priority") {
		priority := coremission.Priority(f.priority)
		patch.Priority = &priority
	}
	if fs.Changed("assign") {
		patch.AssignedTo = append([]string{}, f.assign...)
	}
	if fs.Changed("deadline") {
		deadline, err := parseDeadline(f.deadline)
		if err != nil {
			return patch, err
		}
		patch.Deadline = deadline
	}
	if fs.Changed("duration") {
		patch.EstimatedDuration = &f.duration
	}
	if fs.Changed("actual-duration") {
		patch.ActualDuration = &f.actualDuration
	}
	if fs.Changed("department") {
		patch.Department = &f.department
	}
	if fs.Changed("budget") {
		patch.Budget = &f.budget
	}
	if fs.Changed("client") {
		patch.ClientName = &f.client
	}
	patch.Location = f.location(cmd)

	for _, field := range f.clear {
		switch strings.TrimSpace(field) {
		case "deadline":
			patch.ClearDeadline = true
		case "location":
			patch.ClearLocation = true
		case "actual-duration":
			patch.ClearActualDuration = true
		case "budget":
			patch.ClearBudget = true
		default:
			return patch, fmt.Errorf("cannot clear %q (clearable: deadline, location, actual-duration, budget)", field)
		}
	}

	return patch, nil
}

func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}
	return nil, fmt.Errorf("invalid deadline %q", s)
}

func missionCreateCmd() *cobra.Command {
	var flags missionFlags

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new mission (admin only)",
		Long: `Create a new pending mission.

Examples:
  missionctl mission create "Operation Glasshouse" -d "Secure the embassy annex" -a "Agent Smith" -a "Agent Brown"
  missionctl mission create "Silent Courier" -d "Deliver the package" -a "Agent Davis" --priority high --deadline 2026-11-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := sessionContext(cmd)
			if err != nil {
				return err
			}

			flags.title = strings.Join(args, " ")
			fields, err := flags.fields(cmd)
			if err != nil {
				return err
			}

			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).Create(ctx, fields)
		},
	}

	flags.register(cmd)

	return cmd
}

func missionUpdateCmd() *cobra.Command {
	var flags missionFlags

	cmd := &cobra.Command{
		Use:   "update [mission-id]",
		Short: "Update mission fields (admin only)",
		Long: `Update one or more fields of a mission. Only the flags given are changed.

Examples:
  missionctl mission update msn-002 --priority critical
  missionctl mission update msn-002 --title "Silent Courier II" --budget 25000
  missionctl mission update msn-002 --clear deadline,budget`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := sessionContext(cmd)
			if err != nil {
				return err
			}

			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}

			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).Update(ctx, args[0], patch)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.title, "title", "", "New title")
	cmd.Flags().IntVar(&flags.actualDuration, "actual-duration", 0, "Actual duration in minutes")
	cmd.Flags().StringSliceVar(&flags.clear, "clear", nil, "Unset optional fields (deadline, location, actual-duration, budget)")

	return cmd
}

func missionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [mission-id] [status]",
		Short: "Change mission status (admin only)",
		Long: `Change a mission's status. The change is recorded in the mission log.

Statuses: active, pending, completed, failed

Examples:
  missionctl mission status msn-002 active`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := sessionContext(cmd)
			if err != nil {
				return err
			}
			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).SetStatus(ctx, args[0], coremission.Status(args[1]))
		},
	}
}

func missionProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [mission-id] [0-100]",
		Short: "Set mission progress (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := sessionContext(cmd)
			if err != nil {
				return err
			}

			progress, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be a whole number: %w", err)
			}

			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).SetProgress(ctx, args[0], progress)
		},
	}
}

func missionLogCmd() *cobra.Command {
	var level, details, author string

	cmd := &cobra.Command{
		Use:   "log [mission-id] [message]",
		Short: "Append an entry to a mission log",
		Long: `Append an entry to a mission log. The author defaults to the logged-in operator.

Examples:
  missionctl mission log msn-001 "Perimeter secured"
  missionctl mission log msn-001 "Comms down" --level error --details "Switching to backup channel"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := sessionContext(cmd)
			if err != nil {
				return err
			}

			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).AddLog(ctx, args[0], coremission.LogFields{
				Level:   coremission.LogLevel(level),
				Message: strings.Join(args[1:], " "),
				Details: details,
				Author:  author,
			})
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", string(coremission.LevelInfo), "Level (info, warning, error, success)")
	cmd.Flags().StringVar(&details, "details", "", "Extra detail shown under the entry")
	cmd.Flags().StringVar(&author, "author", "", "Author (defaults to the logged-in operator)")

	return cmd
}

func missionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [mission-id]",
		Short: "Delete a mission (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := sessionContext(cmd)
			if err != nil {
				return err
			}
			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).Delete(ctx, args[0])
		},
	}
}

func missionTimerCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "timer [mission-id]",
		Short: "Show a live elapsed-time clock for a mission",
		Long: `Show elapsed time since the mission was created against its estimate,
updated every second until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}

			adapter := wire.MissionAdapterWithOutput(cmd.OutOrStdout())
			if err := adapter.Timer(args[0], time.Now()); err != nil {
				return err
			}
			if once {
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runTimer(ctx, time.Second, cmd.OutOrStdout(), func(now time.Time) error {
				return adapter.Timer(args[0], now)
			})
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Print a single reading and exit")

	return cmd
}

// runTimer calls tick every interval until ctx is done.
func runTimer(ctx context.Context, interval time.Duration, out io.Writer, tick func(time.Time) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case now := <-ticker.C:
			if err := tick(now); err != nil {
				return err
			}
		}
	}
}

func missionRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload missions from storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}
			return wire.MissionAdapterWithOutput(cmd.OutOrStdout()).Refresh(cmd.Context())
		},
	}
}

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show threat metrics and missions grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sessionContext(cmd); err != nil {
				return err
			}
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			wire.MissionAdapterWithOutput(cmd.OutOrStdout()).Dashboard(filter)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// OperativesCmd returns the operatives command
func OperativesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operatives",
		Short: "List operatives available for assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.MissionAdapterWithOutput(cmd.OutOrStdout()).Operatives()
			return nil
		},
	}
}
