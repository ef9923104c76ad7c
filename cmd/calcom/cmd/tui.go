package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/theakshaypant/calcom/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive bookings browser",
	Long: `Browse your bookings day by day in an interactive terminal UI.

Bookings are fetched once at start (press r to refresh). Use ←/→ to move
between days, enter to join the selected meeting and v to open its booking
page.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().String("limit", "", "Maximum number of bookings to fetch")
}

func runTUI(cmd *cobra.Command, args []string) error {
	limit, err := limitFlag(cmd)
	if err != nil {
		return err
	}

	m := tui.NewModel(cmd.Context(), sess.client, limit, sess.loc)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
