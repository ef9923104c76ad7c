package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/theakshaypant/calcom/internal/core"
)

var availCmd = &cobra.Command{
	Use:   "avail",
	Short: "Change when you can be booked",
	Long: `Change when you can be booked.

Overrides replace your availability for a single date. Windows are the
recurring weekly hours. Both act on the first schedule on the account unless
--schedule-id is given.`,
}

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Manage date-specific overrides",
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Manage recurring weekly windows",
}

var overrideSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace availability on one date",
	Args:  cobra.NoArgs,
	RunE:  runOverrideSet,
}

var overrideClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the override on one date",
	Args:  cobra.NoArgs,
	RunE:  runOverrideClear,
}

var overrideListCmd = &cobra.Command{
	Use:   "list",
	Short: "List overrides, optionally within a date range",
	Args:  cobra.NoArgs,
	RunE:  runOverrideList,
}

var windowSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the recurring window for one weekday",
	Args:  cobra.NoArgs,
	RunE:  runWindowSet,
}

var windowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring windows and when each next occurs",
	Args:  cobra.NoArgs,
	RunE:  runWindowList,
}

func init() {
	rootCmd.AddCommand(availCmd)
	availCmd.AddCommand(overrideCmd, windowCmd)
	overrideCmd.AddCommand(overrideSetCmd, overrideClearCmd, overrideListCmd)
	windowCmd.AddCommand(windowSetCmd, windowListCmd)

	for _, c := range []*cobra.Command{overrideSetCmd, overrideClearCmd, overrideListCmd, windowSetCmd, windowListCmd} {
		c.Flags().String("schedule-id", "", "Schedule ID (defaults to the first schedule)")
	}

	overrideSetCmd.Flags().String("date", "", "Date (YYYY-MM-DD)")
	overrideSetCmd.Flags().String("start", "", "Start time (HH:mm)")
	overrideSetCmd.Flags().String("end", "", "End time (HH:mm)")
	addMutationFlags(overrideSetCmd)

	overrideClearCmd.Flags().String("date", "", "Date (YYYY-MM-DD)")
	addMutationFlags(overrideClearCmd)

	overrideListCmd.Flags().String("from", "", "First date to include (YYYY-MM-DD)")
	overrideListCmd.Flags().String("to", "", "Last date to include (YYYY-MM-DD)")

	windowSetCmd.Flags().String("day", "", "Weekday: mon, tue, wed, thu, fri, sat or sun")
	windowSetCmd.Flags().String("start", "", "Start time (HH:mm)")
	windowSetCmd.Flags().String("end", "", "End time (HH:mm)")
	addMutationFlags(windowSetCmd)
}

// loadSchedule resolves the --schedule-id flag and fetches that schedule.
func loadSchedule(ctx context.Context, cmd *cobra.Command) (string, core.Schedule, error) {
	id, err := sess.client.ResolveScheduleID(ctx, flagString(cmd, "schedule-id"))
	if err != nil {
		return "", core.Schedule{}, err
	}
	schedule, err := sess.client.GetSchedule(ctx, id)
	if err != nil {
		return "", core.Schedule{}, err
	}
	return id, schedule, nil
}

// parseClockRange validates --start and --end as an HH:mm range.
func parseClockRange(cmd *cobra.Command) (string, string, error) {
	start, err := core.ParseTimeOfDay(flagString(cmd, "start"))
	if err != nil {
		return "", "", err
	}
	end, err := core.ParseTimeOfDay(flagString(cmd, "end"))
	if err != nil {
		return "", "", err
	}
	if err := core.ValidateTimeRange(start, end); err != nil {
		return "", "", err
	}
	return start, end, nil
}

func patchMutation(action, scheduleID string, patch core.SchedulePatch, question string) mutation {
	return mutation{
		action:     action,
		scheduleID: scheduleID,
		payload:    patch,
		question:   question,
		apply: func(ctx context.Context) (json.RawMessage, error) {
			return sess.client.PatchSchedule(ctx, scheduleID, patch)
		},
	}
}

func runOverrideSet(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "date", "start", "end"); err != nil {
		return err
	}
	date, err := core.ParseDate(flagString(cmd, "date"))
	if err != nil {
		return err
	}
	start, end, err := parseClockRange(cmd)
	if err != nil {
		return err
	}

	id, schedule, err := loadSchedule(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	patch := core.MergeOverrideSet(schedule, core.OverrideWindow{
		Date:     date,
		Start:    start,
		End:      end,
		TimeZone: sess.timezone,
	})

	m := patchMutation("avail override set", id, patch,
		fmt.Sprintf("Set override on %s (%s-%s) for schedule %s?", date, start, end, id))
	result, done, err := m.execute(cmd)
	if err != nil || !done {
		return err
	}

	return sess.out.result(
		fmt.Sprintf("Override set for %s (%s-%s) on schedule %s.", date, start, end, id),
		map[string]any{"scheduleId": id, "date": date, "start": start, "end": end, "result": result},
	)
}

func runOverrideClear(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "date"); err != nil {
		return err
	}
	date, err := core.ParseDate(flagString(cmd, "date"))
	if err != nil {
		return err
	}

	id, schedule, err := loadSchedule(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	patch := core.MergeOverrideClear(schedule, date)

	m := patchMutation("avail override clear", id, patch,
		fmt.Sprintf("Clear override on %s for schedule %s?", date, id))
	result, done, err := m.execute(cmd)
	if err != nil || !done {
		return err
	}

	return sess.out.result(
		fmt.Sprintf("Override cleared for %s on schedule %s.", date, id),
		map[string]any{"scheduleId": id, "date": date, "result": result},
	)
}

func runOverrideList(cmd *cobra.Command, args []string) error {
	dateRange, err := core.ParseDateRange(flagString(cmd, "from"), flagString(cmd, "to"))
	if err != nil {
		return err
	}

	id, schedule, err := loadSchedule(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	overrides := core.FilterOverrides(schedule, dateRange)

	p := sess.out
	if p.structured() {
		return p.emit(map[string]any{"scheduleId": id, "overrides": overrides})
	}
	if len(overrides) == 0 {
		p.line("No overrides found for the selected range.")
		return nil
	}

	rows := make([][]string, 0, len(overrides))
	for _, raw := range overrides {
		o, _ := core.DecodeOverride(raw)
		rows = append(rows, []string{o.Date, o.StartTime + "-" + o.EndTime, orDefault(o.TimeZone, sess.timezone)})
	}
	p.table([]string{"DATE", "HOURS", "TIMEZONE"}, rows)
	return nil
}

func runWindowSet(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "day", "start", "end"); err != nil {
		return err
	}
	day, err := core.ParseWeekday(flagString(cmd, "day"))
	if err != nil {
		return err
	}
	start, end, err := parseClockRange(cmd)
	if err != nil {
		return err
	}

	id, schedule, err := loadSchedule(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	patch := core.MergeWindowSet(schedule, core.AvailabilityWindow{
		Day:      day,
		Start:    start,
		End:      end,
		TimeZone: sess.timezone,
	})

	m := patchMutation("avail window set", id, patch,
		fmt.Sprintf("Set recurring window %s %s-%s for schedule %s?", day, start, end, id))
	result, done, err := m.execute(cmd)
	if err != nil || !done {
		return err
	}

	return sess.out.result(
		fmt.Sprintf("Updated recurring window %s %s-%s on schedule %s.", day, start, end, id),
		map[string]any{"scheduleId": id, "day": day, "start": start, "end": end, "result": result},
	)
}

func runWindowList(cmd *cobra.Command, args []string) error {
	id, schedule, err := loadSchedule(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	p := sess.out
	if p.structured() {
		availability := schedule.Availability
		if availability == nil {
			availability = []json.RawMessage{}
		}
		return p.emit(map[string]any{"scheduleId": id, "availability": availability})
	}
	if len(schedule.Availability) == 0 {
		p.line("No recurring windows found.")
		return nil
	}

	now := clock()
	rows := make([][]string, 0, len(schedule.Availability))
	for _, raw := range schedule.Availability {
		w, _ := core.DecodeWindow(raw)
		tz := orDefault(w.TimeZone, sess.timezone)
		rows = append(rows, []string{w.Day, w.StartTime + "-" + w.EndTime, tz, nextWindow(w, tz, now)})
	}
	p.table([]string{"DAY", "HOURS", "TIMEZONE", "NEXT"}, rows)
	return nil
}

// nextWindow formats when w next starts, or "-" when the entry cannot be scheduled.
func nextWindow(w core.WindowEntry, tz string, now time.Time) string {
	day, err := core.ParseWeekday(w.Day)
	if err != nil {
		return "-"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = sess.loc
	}
	next, err := core.NextOccurrence(day, w.StartTime, loc, now)
	if err != nil || next.IsZero() {
		return "-"
	}
	return next.Format("Mon Jan 2 15:04")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
