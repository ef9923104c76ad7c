package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/theakshaypant/calcom/internal/core"
	"github.com/theakshaypant/calcom/internal/util"
)

// BookingSource is the read side of the API the browser needs.
type BookingSource interface {
	ListBookings(ctx context.Context, limit int) ([]core.Booking, error)
}

// BookingPageURL is where a booking is managed on the web, keyed by its uid.
const BookingPageURL = "https://app.cal.com/booking/"

// KeyMap defines the keybindings for the TUI
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Open       key.Binding
	ViewPage   key.Binding
	Refresh    key.Binding
	NextDay    key.Binding
	PrevDay    key.Binding
	Today      key.Binding
	Tab        key.Binding
	Quit       key.Binding
	Help       key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "scroll down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "join meeting"),
	),
	ViewPage: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "open booking page"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next day"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev day"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// PanelFocus selects the visible panel in compact mode.
type PanelFocus int

const (
	FocusList PanelFocus = iota
	FocusDetail
)

// Model is the Bubble Tea model for the bookings browser. Bookings are fetched once
// (and again on refresh); moving between days only re-filters what was fetched.
type Model struct {
	ctx    context.Context
	source BookingSource
	limit  int
	loc    *time.Location
	now    func() time.Time

	all         []core.Booking
	bookings    []core.Booking // the current day's, sorted by start
	selectedIdx int
	currentDate time.Time

	width         int
	height        int
	listWidth     int
	detailWidth   int
	contentHeight int
	keys          KeyMap
	loading       bool
	err           error
	listView      viewport.Model
	detailView    viewport.Model
	viewportReady bool
	compactMode   bool
	focusedPanel  PanelFocus
	showHelp      bool
}

// NewModel creates a browser over source, showing days in loc.
func NewModel(ctx context.Context, source BookingSource, limit int, loc *time.Location) Model {
	return Model{
		ctx:         ctx,
		source:      source,
		limit:       limit,
		loc:         loc,
		now:         time.Now,
		currentDate: time.Now().In(loc),
		keys:        DefaultKeyMap,
		loading:     true,
	}
}

// Messages
type bookingsLoadedMsg struct {
	bookings []core.Booking
	err      error
}

type tickMsg time.Time

func (m Model) loadBookings() tea.Cmd {
	return func() tea.Msg {
		bookings, err := m.source.ListBookings(m.ctx, m.limit)
		return bookingsLoadedMsg{bookings: bookings, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the first fetch and the minute ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBookings(), tickCmd())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (m Model) isToday() bool {
	return sameDay(m.currentDate, m.now().In(m.loc))
}

// selectDay narrows all fetched bookings to the current date.
func (m *Model) selectDay() {
	var day []core.Booking
	for _, b := range m.all {
		start, ok := b.StartTime()
		if !ok || !sameDay(start.In(m.loc), m.currentDate) {
			continue
		}
		day = append(day, b)
	}
	sort.SliceStable(day, func(i, j int) bool {
		a, _ := day[i].StartTime()
		b, _ := day[j].StartTime()
		return a.Before(b)
	})
	m.bookings = day
	m.selectedIdx = m.findNowIdx()
}

// findNowIdx returns the first booking that has not started yet when viewing today,
// else 0.
func (m Model) findNowIdx() int {
	if len(m.bookings) == 0 || !m.isToday() {
		return 0
	}
	now := m.now()
	for i, b := range m.bookings {
		if start, ok := b.StartTime(); ok && start.After(now) {
			return i
		}
	}
	return len(m.bookings) - 1
}

// nowDividerIdx is the list position the NOW line is drawn before, or -1 off today.
func (m Model) nowDividerIdx() int {
	if !m.isToday() {
		return -1
	}
	now := m.now()
	for i, b := range m.bookings {
		if start, ok := b.StartTime(); ok && start.After(now) {
			return i
		}
	}
	return len(m.bookings)
}

func (m *Model) scrollToNow() {
	if !m.viewportReady || len(m.bookings) == 0 {
		return
	}
	idx := m.nowDividerIdx()
	if idx < 0 {
		m.listView.GotoTop()
		return
	}
	m.listView.SetYOffset(max(idx-2, 0))
}

func (m *Model) calculateLayout() {
	height := max(m.height, 10)

	// header, help bar and padding
	m.contentHeight = max(height-6, 5)

	m.compactMode = m.width < 70
	if m.compactMode {
		m.listWidth = max(m.width-4, 20)
		m.detailWidth = max(m.width-4, 20)
		return
	}

	switch {
	case m.width < 100:
		m.listWidth = m.width * 40 / 100
	case m.width < 140:
		m.listWidth = m.width * 35 / 100
	default:
		m.listWidth = min(m.width*30/100, 55)
	}
	m.listWidth = max(m.listWidth, 30)
	m.detailWidth = max(m.width-m.listWidth-5, 35)
}

func (m *Model) refresh() {
	m.updateListContent()
	m.updateDetailContent()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculateLayout()

		listW, listH := max(m.listWidth-4, 10), max(m.contentHeight-4, 1)
		detailW, detailH := max(m.detailWidth-4, 10), max(m.contentHeight-4, 1)
		if !m.viewportReady {
			m.listView = viewport.New(listW, listH)
			m.listView.Style = lipgloss.NewStyle()
			m.detailView = viewport.New(detailW, detailH)
			m.detailView.Style = lipgloss.NewStyle()
			m.viewportReady = true
		} else {
			m.listView.Width, m.listView.Height = listW, listH
			m.detailView.Width, m.detailView.Height = detailW, detailH
		}
		m.refresh()
		return m, nil

	case bookingsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.all = msg.bookings
			m.selectDay()
			m.refresh()
			m.scrollToNow()
		}
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m.updateListContent()
				m.scrollListToSelection()
				m.updateDetailContent()
				m.detailView.GotoTop()
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.selectedIdx < len(m.bookings)-1 {
				m.selectedIdx++
				m.updateListContent()
				m.scrollListToSelection()
				m.updateDetailContent()
				m.detailView.GotoTop()
			}
			return m, nil

		case key.Matches(msg, m.keys.ScrollUp):
			if m.compactMode && m.focusedPanel == FocusList {
				m.listView.ViewUp()
			} else {
				m.detailView.ViewUp()
			}
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			if m.compactMode && m.focusedPanel == FocusList {
				m.listView.ViewDown()
			} else {
				m.detailView.ViewDown()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextDay):
			m.currentDate = m.currentDate.AddDate(0, 0, 1)
			m.selectDay()
			m.refresh()
			m.listView.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.PrevDay):
			m.currentDate = m.currentDate.AddDate(0, 0, -1)
			m.selectDay()
			m.refresh()
			m.listView.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Today):
			if !m.isToday() {
				m.currentDate = m.now().In(m.loc)
				m.selectDay()
				m.refresh()
			} else {
				m.selectedIdx = m.findNowIdx()
				m.refresh()
			}
			m.scrollToNow()
			return m, nil

		case key.Matches(msg, m.keys.Tab):
			if m.focusedPanel == FocusList {
				m.focusedPanel = FocusDetail
			} else {
				m.focusedPanel = FocusList
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadBookings()

		case key.Matches(msg, m.keys.Open):
			if b, ok := m.selected(); ok && b.MeetingURL != "" {
				return m, openURL(b.MeetingURL)
			}
			return m, nil

		case key.Matches(msg, m.keys.ViewPage):
			if b, ok := m.selected(); ok && b.UID != "" {
				return m, openURL(BookingPageURL + b.UID)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m Model) selected() (core.Booking, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.bookings) {
		return core.Booking{}, false
	}
	return m.bookings[m.selectedIdx], true
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var content string
	switch {
	case m.loading:
		content = lipgloss.NewStyle().
			Width(m.width-4).
			Height(m.contentHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Loading bookings...")
	case m.err != nil:
		content = lipgloss.NewStyle().
			Width(m.width - 4).
			Height(m.contentHeight).
			Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	case m.compactMode:
		switch {
		case m.showHelp:
			content = m.renderHelpPanel()
		case m.focusedPanel == FocusList:
			content = m.renderListPanel()
		default:
			content = m.renderDetailPanel()
		}
	default:
		right := m.renderDetailPanel()
		if m.showHelp {
			right = m.renderHelpPanel()
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderListPanel(), " ", right)
	}

	return AppStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderHelp()),
	)
}

func (m Model) renderHeader() string {
	dateStr := m.currentDate.Format("Monday, January 2, 2006")
	if m.isToday() {
		dateStr = "Today • " + dateStr
	}

	title := HeaderStyle.Render("📅 calcom")
	date := lipgloss.NewStyle().Foreground(mutedColor).Render(dateStr)
	zone := CalendarBadgeStyle.Render(" (" + m.loc.String() + ")")

	panelIndicator := ""
	if m.compactMode {
		label := " [Bookings]"
		if m.focusedPanel == FocusDetail {
			label = " [Details]"
		}
		panelIndicator = lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", date, zone, panelIndicator)
}

func (m *Model) updateListContent() {
	if !m.viewportReady {
		return
	}

	if len(m.bookings) == 0 {
		m.listView.SetContent(NormalItemStyle.Render("No bookings"))
		return
	}

	divider := m.nowDividerIdx()
	var items []string
	for i, b := range m.bookings {
		if i == divider {
			items = append(items, m.renderNowDivider())
		}
		items = append(items, m.renderListItem(b, i == m.selectedIdx, m.listView.Width))
	}
	if divider == len(m.bookings) {
		items = append(items, m.renderNowDivider())
	}

	m.listView.SetContent(strings.Join(items, "\n"))
}

func (m Model) renderNowDivider() string {
	width := m.listView.Width
	text := fmt.Sprintf(" ▶ NOW %s ◀ ", m.now().In(m.loc).Format("15:04"))

	textLen := lipgloss.Width(text)
	left := max((width-textLen)/2, 0)
	right := max(width-textLen-left, 0)

	return lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(strings.Repeat("─", left) + text + strings.Repeat("─", right))
}

// scrollListToSelection keeps the selected row visible, counting the NOW line.
func (m *Model) scrollListToSelection() {
	if !m.viewportReady || len(m.bookings) == 0 {
		return
	}

	line := m.selectedIdx
	if d := m.nowDividerIdx(); d >= 0 && m.selectedIdx >= d {
		line++
	}

	top := m.listView.YOffset
	bottom := top + m.listView.Height
	if line < top {
		m.listView.SetYOffset(line)
	}
	if line+1 > bottom {
		m.listView.SetYOffset(line + 1 - m.listView.Height)
	}
}

func (m Model) renderListPanel() string {
	if len(m.bookings) == 0 {
		return ListPanelStyle.Width(m.listWidth).Height(m.contentHeight).Render(
			lipgloss.NewStyle().Foreground(mutedColor).Render("No bookings"),
		)
	}

	scrollInfo := ""
	if m.viewportReady && m.listView.TotalLineCount() > m.listView.Height {
		scrollInfo = lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf(" (%d/%d)", m.selectedIdx+1, len(m.bookings)))
	}

	header := lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("Bookings") + scrollInfo

	return ListPanelStyle.Width(m.listWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, m.listView.View()),
	)
}

func (m Model) renderListItem(b core.Booking, selected bool, maxWidth int) string {
	now := m.now()
	start, _ := b.StartTime()
	end, hasEnd := b.EndTime()
	isPast := hasEnd && end.Before(now)
	canceled := isCanceled(b.Status)

	timeStr := start.In(m.loc).Format("15:04")
	if isPast {
		timeStr = "✓ " + timeStr
	}
	timeStyled := TimeStyle.Render(timeStr)
	if isPast || canceled {
		timeStyled = PastTimeStyle.Render(timeStr)
	}

	duration := DurationStyle.Render(formatDuration(b.Duration()))

	// time (12) + duration (6) + icons and spacing
	title := util.TruncateText(bookingTitle(b), max(maxWidth-27, 10))
	if canceled {
		title = lipgloss.NewStyle().Strikethrough(true).Render(title)
	}

	icons := ""
	if b.MeetingURL != "" {
		icons += " 📹"
	}
	if b.InProgress(now) {
		icons += " 🟢"
	}

	line := fmt.Sprintf("%s %s %s%s", timeStyled, duration, title, icons)

	switch {
	case selected && isPast:
		return SelectedPastStyle.Render(line)
	case selected:
		return SelectedItemStyle.Render(line)
	case isPast || canceled:
		return PastItemStyle.Render(line)
	default:
		return NormalItemStyle.Render(line)
	}
}

func (m *Model) updateDetailContent() {
	if !m.viewportReady {
		return
	}
	b, ok := m.selected()
	if !ok {
		m.detailView.SetContent("")
		return
	}

	width := m.detailView.Width
	start, _ := b.StartTime()
	end, hasEnd := b.EndTime()

	lines := []string{
		TitleStyle.Render(ansi.Wordwrap(bookingTitle(b), width, "")),
		"",
		renderField("🆔 Booking", b.ID.String()),
	}
	if hasEnd {
		lines = append(lines,
			renderField("🕐 When", formatBookingTime(start.In(m.loc), end.In(m.loc))),
			renderField("⏱  Duration", formatDuration(b.Duration())),
		)
	}
	lines = append(lines, renderField("📊 Status", formatStatus(b.Status)))

	now := m.now()
	switch {
	case isCanceled(b.Status):
	case hasEnd && end.Before(now):
		lines = append(lines, "", lipgloss.NewStyle().Foreground(mutedColor).Italic(true).
			Render(fmt.Sprintf("✓ Ended %s ago", formatDuration(now.Sub(end)))))
	case b.InProgress(now):
		lines = append(lines, "", InProgressStyle.Render(fmt.Sprintf("🟢 IN PROGRESS • %s remaining", formatDuration(end.Sub(now)))))
	case start.After(now):
		lines = append(lines, "", lipgloss.NewStyle().Foreground(accentColor).
			Render(fmt.Sprintf("⏳ Starts in %s", formatDuration(start.Sub(now)))))
	}
	lines = append(lines, "")

	if b.Location != "" && b.Location != b.MeetingURL {
		lines = append(lines, renderWrappedField("📍 Location", b.Location, width))
	}
	if b.MeetingURL != "" {
		labelWidth := lipgloss.Width(LabelStyle.Render("📹 Join")) + 1
		display := LinkStyle.Render(util.TruncateText(b.MeetingURL, width-labelWidth))
		lines = append(lines, renderField("📹 Join", util.MakeHyperlink(b.MeetingURL, display)))
	}

	if len(b.Attendees) > 0 {
		lines = append(lines, "", LabelStyle.Render("👥 Attendees"))
		for _, a := range b.Attendees {
			entry := a.Name
			if a.Email != "" {
				entry = strings.TrimSpace(entry + " <" + a.Email + ">")
			}
			if a.TimeZone != "" {
				entry += CalendarBadgeStyle.Render(" " + a.TimeZone)
			}
			lines = append(lines, "   • "+util.TruncateText(entry, width-5))
		}
	}

	if b.Description != "" {
		lines = append(lines, "", LabelStyle.Render("📝 Notes"))
		notes := util.NotesToText(b.Description, width)
		lines = append(lines, ValueStyle.Render(ansi.Wordwrap(notes, width, "")))
	}

	m.detailView.SetContent(strings.Join(lines, "\n"))
}

func (m Model) renderDetailPanel() string {
	if len(m.bookings) == 0 {
		return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
			lipgloss.NewStyle().Foreground(mutedColor).Render("No booking selected"),
		)
	}

	scrollInfo := ""
	if m.viewportReady && m.detailView.TotalLineCount() > m.detailView.Height {
		scrollInfo = lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf(" (%d%%)", int(m.detailView.ScrollPercent()*100)))
	}

	header := lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("Booking Details") + scrollInfo

	return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.detailView.View()),
	)
}

func (m Model) renderHelp() string {
	keys := []string{
		HelpKeyStyle.Render("↑/↓") + " nav",
		HelpKeyStyle.Render("←/→") + " day",
		HelpKeyStyle.Render("tab") + " panel",
		HelpKeyStyle.Render("t") + " now",
		HelpKeyStyle.Render("enter") + " join",
		HelpKeyStyle.Render("v") + " page",
		HelpKeyStyle.Render("r") + " refresh",
		HelpKeyStyle.Render("q") + " quit",
	}
	full := strings.Join(keys, "  •  ")

	if lipgloss.Width(full) > m.width-4 {
		return HelpStyle.Render(HelpKeyStyle.Render("?") + " help")
	}
	return HelpStyle.Render(full)
}

func (m Model) renderHelpPanel() string {
	header := lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("Keyboard Shortcuts")

	lines := []string{
		"",
		HelpKeyStyle.Render("  ↑ / k      ") + " Move up",
		HelpKeyStyle.Render("  ↓ / j      ") + " Move down",
		HelpKeyStyle.Render("  ctrl+u/d   ") + " Scroll detail panel",
		HelpKeyStyle.Render("  → / l      ") + " Next day",
		HelpKeyStyle.Render("  ← / h      ") + " Previous day",
		HelpKeyStyle.Render("  t          ") + " Jump to now / today",
		HelpKeyStyle.Render("  tab        ") + " Switch panel",
		HelpKeyStyle.Render("  enter      ") + " Join meeting",
		HelpKeyStyle.Render("  v          ") + " Open booking page",
		HelpKeyStyle.Render("  r          ") + " Refetch bookings",
		HelpKeyStyle.Render("  q / ctrl+c ") + " Quit",
		"",
		lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Render("  Press any key to close"),
	}

	width := m.detailWidth
	if m.compactMode {
		width = m.listWidth
	}
	return DetailPanelStyle.Width(width).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n")),
	)
}

func renderField(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}

// renderWrappedField word-wraps value to maxWidth, indenting continuation lines
// under the value column.
func renderWrappedField(label, value string, maxWidth int) string {
	labelRendered := LabelStyle.Render(label)
	labelWidth := lipgloss.Width(labelRendered) + 1
	wrapped := strings.Split(ansi.Wordwrap(value, max(maxWidth-labelWidth, 10), ""), "\n")
	indent := strings.Repeat(" ", labelWidth)
	for i := 1; i < len(wrapped); i++ {
		wrapped[i] = indent + wrapped[i]
	}
	return labelRendered + " " + ValueStyle.Render(strings.Join(wrapped, "\n"))
}

func bookingTitle(b core.Booking) string {
	if strings.TrimSpace(b.Title) == "" {
		return "Booking " + b.ID.String()
	}
	return b.Title
}

func isCanceled(status string) bool {
	switch strings.ToLower(status) {
	case "cancelled", "canceled", "rejected":
		return true
	}
	return false
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func formatBookingTime(start, end time.Time) string {
	if sameDay(start, end) {
		return fmt.Sprintf("%s, %s - %s", start.Format("Mon, Jan 2"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Mon, Jan 2 15:04"), end.Format("Mon, Jan 2 15:04"))
}

func formatStatus(status string) string {
	switch strings.ToLower(status) {
	case "accepted":
		return StatusAcceptedStyle.Render("Accepted ✓")
	case "cancelled", "canceled":
		return StatusDeclinedStyle.Render("Cancelled ✗")
	case "rejected":
		return StatusDeclinedStyle.Render("Rejected ✗")
	case "pending", "awaiting_host", "unconfirmed":
		return StatusPendingStyle.Render("Pending confirmation")
	case "":
		return lipgloss.NewStyle().Foreground(mutedColor).Render("Unknown")
	default:
		return ValueStyle.Render(status)
	}
}

// openURL opens a URL in the default browser
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			return nil
		}
		_ = cmd.Start()
		return nil
	}
}
