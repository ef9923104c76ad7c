package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/theakshaypant/calcom/internal/core"
	"github.com/theakshaypant/calcom/internal/util"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Find and share booking links",
}

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List event types and their booking URLs",
	Args:  cobra.NoArgs,
	RunE:  runLinkList,
}

var linkShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the booking URL for an event type slug",
	Args:  cobra.NoArgs,
	RunE:  runLinkShare,
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.AddCommand(linkListCmd, linkShareCmd)

	linkShareCmd.Flags().String("slug", "", "Event type slug")
}

func runLinkList(cmd *cobra.Command, args []string) error {
	links, err := sess.client.ListEventTypes(cmd.Context())
	if err != nil {
		return err
	}

	p := sess.out
	if p.structured() {
		return p.emit(map[string]any{"links": links})
	}
	if len(links) == 0 {
		p.line("No event types found.")
		return nil
	}

	// Only decorate URLs when a person is looking at them.
	hyperlinks := p.w == os.Stdout && util.IsTerminal(os.Stdout)

	rows := make([][]string, 0, len(links))
	for _, l := range links {
		url := l.BookingURL
		if hyperlinks && url != "" {
			url = util.MakeHyperlink(url, url)
		}
		length := "-"
		if l.Length != "" {
			length = l.Length + "m"
		}
		rows = append(rows, []string{l.ID.String(), l.Slug, util.TruncateText(l.Title, 40), length, url})
	}
	p.table([]string{"ID", "SLUG", "TITLE", "LENGTH", "BOOKING URL"}, rows)
	return nil
}

func runLinkShare(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "slug"); err != nil {
		return err
	}
	slug := flagString(cmd, "slug")

	link, err := sess.client.FindEventTypeBySlug(cmd.Context(), slug)
	if err != nil {
		return err
	}
	if link.BookingURL == "" {
		return &core.NotFoundError{Message: fmt.Sprintf("Event type %s has no bookingUrl", slug)}
	}

	return sess.out.result(link.BookingURL, map[string]any{"slug": slug, "bookingUrl": link.BookingURL})
}
