package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/theakshaypant/calcom/internal/core"
	"github.com/theakshaypant/calcom/internal/ics"
	"github.com/theakshaypant/calcom/internal/util"
)

var bookingCmd = &cobra.Command{
	Use:   "booking",
	Short: "List, cancel, reschedule and export bookings",
}

var bookingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookings",
	Args:  cobra.NoArgs,
	RunE:  runBookingList,
}

var bookingCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a booking",
	Args:  cobra.NoArgs,
	RunE:  runBookingCancel,
}

var bookingRescheduleCmd = &cobra.Command{
	Use:   "reschedule",
	Short: "Move a booking to a new time",
	Args:  cobra.NoArgs,
	RunE:  runBookingReschedule,
}

var bookingExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bookings as an iCalendar (.ics) file",
	Long: `Export bookings as an iCalendar feed that any calendar app can import.

The calendar is written to stdout unless --out is given.`,
	Args: cobra.NoArgs,
	RunE: runBookingExport,
}

func init() {
	rootCmd.AddCommand(bookingCmd)
	bookingCmd.AddCommand(bookingListCmd, bookingCancelCmd, bookingRescheduleCmd, bookingExportCmd)

	bookingListCmd.Flags().Bool("today", false, "Only bookings starting today in the active timezone")
	bookingListCmd.Flags().Bool("upcoming", false, "Only bookings starting now or later")
	bookingListCmd.Flags().String("limit", "", "Maximum number of bookings to fetch")

	bookingCancelCmd.Flags().String("id", "", "Booking ID")
	bookingCancelCmd.Flags().String("reason", "", "Cancellation reason")
	addMutationFlags(bookingCancelCmd)

	bookingRescheduleCmd.Flags().String("id", "", "Booking ID")
	bookingRescheduleCmd.Flags().String("start", "", "New start, ISO-8601 with offset")
	bookingRescheduleCmd.Flags().String("end", "", "New end, ISO-8601 with offset")
	addMutationFlags(bookingRescheduleCmd)

	bookingExportCmd.Flags().Bool("upcoming", false, "Only bookings starting now or later")
	bookingExportCmd.Flags().String("limit", "", "Maximum number of bookings to fetch")
	bookingExportCmd.Flags().String("out", "", "Write the calendar to this file instead of stdout")
}

func limitFlag(cmd *cobra.Command) (int, error) {
	s := flagString(cmd, "limit")
	if s == "" {
		return 0, nil
	}
	return core.ParseLimit(s)
}

func runBookingList(cmd *cobra.Command, args []string) error {
	today, upcoming := flagBool(cmd, "today"), flagBool(cmd, "upcoming")
	if today && upcoming {
		return &core.ValidationError{Message: "Use only one of --today or --upcoming"}
	}
	limit, err := limitFlag(cmd)
	if err != nil {
		return err
	}

	all, err := sess.client.ListBookings(cmd.Context(), limit)
	if err != nil {
		return err
	}

	filter := core.FilterAll
	switch {
	case today:
		filter = core.FilterToday
	case upcoming:
		filter = core.FilterUpcoming
	}
	bookings := core.FilterBookings(all, filter, clock(), sess.loc)
	if bookings == nil {
		bookings = []core.Booking{}
	}

	p := sess.out
	if p.structured() {
		return p.emit(map[string]any{"timezone": sess.timezone, "bookings": bookings})
	}
	if len(bookings) == 0 {
		p.line("No bookings found for selected filter.")
		return nil
	}

	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		start := b.Start
		if t, ok := b.StartTime(); ok {
			start = t.In(sess.loc).Format("2006-01-02 15:04")
		}
		status := b.Status
		if status == "" {
			status = "-"
		}
		rows = append(rows, []string{b.ID.String(), start, status, util.TruncateText(b.Title, 50)})
	}
	p.table([]string{"ID", "START (" + sess.timezone + ")", "STATUS", "TITLE"}, rows)
	return nil
}

func runBookingCancel(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "id"); err != nil {
		return err
	}
	id := flagString(cmd, "id")
	payload := core.BuildBookingCancelPayload(flagString(cmd, "reason"))

	m := mutation{
		action:    "booking cancel",
		bookingID: id,
		payload:   payload,
		question:  fmt.Sprintf("Cancel booking %s?", id),
		apply: func(ctx context.Context) (json.RawMessage, error) {
			return sess.client.CancelBooking(ctx, id, payload)
		},
	}
	result, done, err := m.execute(cmd)
	if err != nil || !done {
		return err
	}

	return sess.out.result(
		fmt.Sprintf("Booking %s canceled.", id),
		map[string]any{"bookingId": id, "result": result},
	)
}

func runBookingReschedule(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "id", "start", "end"); err != nil {
		return err
	}
	id := flagString(cmd, "id")
	start, err := core.ParseInstant(flagString(cmd, "start"))
	if err != nil {
		return err
	}
	end, err := core.ParseInstant(flagString(cmd, "end"))
	if err != nil {
		return err
	}
	payload, err := core.BuildBookingReschedulePayload(start, end, sess.timezone)
	if err != nil {
		return err
	}

	m := mutation{
		action:    "booking reschedule",
		bookingID: id,
		payload:   payload,
		question:  fmt.Sprintf("Reschedule booking %s?", id),
		apply: func(ctx context.Context) (json.RawMessage, error) {
			return sess.client.RescheduleBooking(ctx, id, payload)
		},
	}
	result, done, err := m.execute(cmd)
	if err != nil || !done {
		return err
	}

	return sess.out.result(
		fmt.Sprintf("Booking %s rescheduled to %s - %s.", id, start, end),
		map[string]any{"bookingId": id, "start": start, "end": end, "result": result},
	)
}

func runBookingExport(cmd *cobra.Command, args []string) error {
	limit, err := limitFlag(cmd)
	if err != nil {
		return err
	}

	all, err := sess.client.ListBookings(cmd.Context(), limit)
	if err != nil {
		return err
	}
	filter := core.FilterAll
	if flagBool(cmd, "upcoming") {
		filter = core.FilterUpcoming
	}
	now := clock()
	bookings := core.FilterBookings(all, filter, now, sess.loc)

	path := flagString(cmd, "out")
	if path == "" {
		_, err := ics.Export(cmd.OutOrStdout(), bookings, now)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	n, err := ics.Export(f, bookings, now)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", path, cerr)
	}
	if err != nil {
		return err
	}
	sess.logger.Printf("wrote %d events to %s", n, path)

	return sess.out.result(
		fmt.Sprintf("Exported %d bookings to %s.", n, path),
		map[string]any{"exported": n, "path": path},
	)
}
