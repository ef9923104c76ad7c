package cmd

import (
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Inspect availability schedules",
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedules on the account",
	Args:  cobra.NoArgs,
	RunE:  runScheduleList,
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one schedule (the first one when --id is omitted)",
	Args:  cobra.NoArgs,
	RunE:  runScheduleShow,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleListCmd, scheduleShowCmd)

	scheduleShowCmd.Flags().String("id", "", "Schedule ID")
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	schedules, err := sess.client.ListSchedules(cmd.Context())
	if err != nil {
		return err
	}

	p := sess.out
	if p.structured() {
		return p.emit(map[string]any{"schedules": schedules})
	}
	if len(schedules) == 0 {
		p.line("No schedules found.")
		return nil
	}

	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		name := s.Name
		if name == "" {
			name = "Unnamed schedule"
		}
		tz := s.TimeZone
		if tz == "" {
			tz = "-"
		}
		rows = append(rows, []string{s.ID.String(), name, tz})
	}
	p.table([]string{"ID", "NAME", "TIMEZONE"}, rows)
	return nil
}

func runScheduleShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := sess.client.ResolveScheduleID(ctx, flagString(cmd, "id"))
	if err != nil {
		return err
	}
	schedule, err := sess.client.GetSchedule(ctx, id)
	if err != nil {
		return err
	}

	p := sess.out
	if p.structured() {
		return p.emit(map[string]any{"schedule": schedule})
	}

	name := schedule.Name
	if name == "" {
		name = "Unnamed schedule"
	}
	tz := schedule.TimeZone
	if tz == "" {
		tz = sess.timezone
	}
	p.line("Schedule %s", id)
	p.line("%s %s", labelStyle.Render("Name:"), name)
	p.line("%s %s", labelStyle.Render("Timezone:"), tz)
	p.line("%s %d", labelStyle.Render("Availability windows:"), len(schedule.Availability))
	p.line("%s %d", labelStyle.Render("Overrides:"), len(schedule.Overrides))
	return nil
}
