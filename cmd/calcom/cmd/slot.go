package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/theakshaypant/calcom/internal/adapter/calcom"
	"github.com/theakshaypant/calcom/internal/core"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Look up free slots",
}

var slotCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List free slots for an event type between two instants",
	Example: `  calcom slot check --event-type-id 123 \
    --start 2026-03-02T00:00:00+01:00 --end 2026-03-03T00:00:00+01:00`,
	Args: cobra.NoArgs,
	RunE: runSlotCheck,
}

func init() {
	rootCmd.AddCommand(slotCmd)
	slotCmd.AddCommand(slotCheckCmd)

	slotCheckCmd.Flags().String("event-type-id", "", "Event type ID")
	slotCheckCmd.Flags().String("start", "", "Start, ISO-8601 with offset")
	slotCheckCmd.Flags().String("end", "", "End, ISO-8601 with offset")
}

func runSlotCheck(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "event-type-id", "start", "end"); err != nil {
		return err
	}
	eventTypeID := flagString(cmd, "event-type-id")
	start, err := core.ParseInstant(flagString(cmd, "start"))
	if err != nil {
		return err
	}
	end, err := core.ParseInstant(flagString(cmd, "end"))
	if err != nil {
		return err
	}
	if err := core.ValidateInstantRange(start, end); err != nil {
		return err
	}

	slots, err := sess.client.CheckSlots(cmd.Context(), eventTypeID, start, end, sess.timezone)
	if err != nil {
		return err
	}

	p := sess.out
	if p.structured() {
		return p.emit(map[string]any{"eventTypeId": eventTypeID, "start": start, "end": end, "slots": slots})
	}

	p.line("Slot query completed for event type %s.", eventTypeID)
	days, ok := calcom.GroupSlots(slots)
	if !ok {
		p.line("%s", prettyRaw(slots))
		return nil
	}
	if len(days) == 0 {
		p.line("No free slots in this window.")
		return nil
	}

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{d.Date, strings.Join(slotClock(d.Starts), " "), strconv.Itoa(len(d.Starts))})
	}
	p.table([]string{"DATE", "STARTS (" + sess.timezone + ")", "COUNT"}, rows)
	return nil
}

// slotClock shortens slot instants to HH:mm in the session timezone, leaving values
// it cannot parse untouched.
func slotClock(starts []string) []string {
	out := make([]string, 0, len(starts))
	for _, s := range starts {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			out = append(out, s)
			continue
		}
		out = append(out, t.In(sess.loc).Format("15:04"))
	}
	return out
}
