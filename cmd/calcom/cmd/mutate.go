package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/theakshaypant/calcom/internal/confirm"
	"github.com/theakshaypant/calcom/internal/core"
)

// mutation is a single confirmable write against the API.
type mutation struct {
	action     string
	scheduleID string
	bookingID  string
	payload    any
	question   string
	apply      func(ctx context.Context) (json.RawMessage, error)
}

type dryRunReport struct {
	DryRun     bool   `json:"dryRun"`
	Action     string `json:"action"`
	ScheduleID string `json:"scheduleId,omitempty"`
	BookingID  string `json:"bookingId,omitempty"`
	Payload    any    `json:"payload"`
}

func addMutationFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Print the payload without sending it")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// execute prints the payload on --dry-run and returns done=false. Otherwise it asks
// for confirmation (unless --yes) and applies the write. A declined prompt is a
// *core.CanceledError and nothing is sent.
func (m mutation) execute(cmd *cobra.Command) (result json.RawMessage, done bool, err error) {
	if flagBool(cmd, "dry-run") {
		return nil, false, sess.out.emit(dryRunReport{
			DryRun:     true,
			Action:     m.action,
			ScheduleID: m.scheduleID,
			BookingID:  m.bookingID,
			Payload:    m.payload,
		})
	}

	gate := confirm.Gate{Prompter: prompter}
	outcome, err := gate.Confirm(flagBool(cmd, "yes"), m.question)
	if err != nil {
		return nil, false, err
	}
	if !outcome.Proceed() {
		return nil, false, &core.CanceledError{}
	}
	sess.logger.Printf("%s: %s", m.action, outcome)

	result, err = m.apply(cmd.Context())
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}
