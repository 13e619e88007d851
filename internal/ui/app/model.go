package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	calendardto "teamboard/internal/modules/calendar/dto"
	eventdto "teamboard/internal/modules/event/dto"
	sessiondto "teamboard/internal/modules/session/dto"
	"teamboard/internal/ui/components"
	"teamboard/internal/ui/theme"
	calendarview "teamboard/internal/ui/views/calendar"
	loginview "teamboard/internal/ui/views/login"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (sessiondto.SessionOutput, error)
	Route(ctx context.Context, target string) string
}

type calendarPort interface {
	Fetch(ctx context.Context) ([]calendardto.EntryOutput, error)
	Layout(entries []calendardto.EntryOutput, selected time.Time) calendardto.LayoutOutput
	Today() time.Time
	ShiftDays(day time.Time, n int) time.Time
	ShiftMonths(day time.Time, n int) time.Time
	Location() *time.Location
}

type eventPort interface {
	Types() []eventdto.TypeOption
	NewDraft() eventdto.DraftOutput
	DraftFor(event eventdto.EventOutput) eventdto.DraftOutput
	Validate(input eventdto.SaveInput) eventdto.FieldErrors
	Create(ctx context.Context, input eventdto.SaveInput) (eventdto.EventOutput, error)
	Update(ctx context.Context, id string, input eventdto.SaveInput) (eventdto.EventOutput, error)
	Delete(ctx context.Context, id string) error
}

// ─── async messages ───────────────────────────────────────────────────────────

// routedMsg carries the route the guard resolved and, for the calendar, the signed-in user.
type routedMsg struct {
	route   string
	session sessiondto.SessionOutput
	err     error
}

type loggedOutMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	calendar help.KeyMap

	Help    key.Binding
	Palette key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Logout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	var groups [][]key.Binding
	if k.calendar != nil {
		groups = append(groups, k.calendar.FullHelp()...)
	}
	return append(groups, []key.Binding{k.Help, k.Palette, k.Logout, k.Quit})
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns routing between the sign-in and
// calendar screens, the help overlay, the command palette and the status bar.
// Business logic is delegated to ports; rendering is delegated to sub-views.
type Model struct {
	session  sessionPort
	calendar calendarPort
	events   eventPort

	route    string
	user     sessiondto.SessionOutput
	loginV   loginview.Model
	calV     calendarview.Model
	mounted  bool
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	commands []paletteCommand
	status   string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(session sessionPort, calendar calendarPort, events eventPort) Model {
	commands := paletteCommands()
	return Model{
		session:  session,
		calendar: calendar,
		events:   events,
		route:    sessiondto.RouteLogin,
		loginV:   loginview.New(session),
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(paletteEntries(commands)),
		commands: commands,
		status:   "ready",
	}
}

// Init asks the guard for the calendar; signed-out users land on the sign-in screen.
func (m Model) Init() tea.Cmd {
	return m.navigateCmd(sessiondto.RouteCalendar)
}

func (m Model) Route() string { return m.route }

func (m Model) Status() string { return m.status }

func (m Model) User() sessiondto.SessionOutput { return m.user }

func (m Model) Calendar() calendarview.Model { return m.calV }

func (m Model) PaletteOpen() bool { return m.palette.Visible() }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The palette takes every key while open; other messages still reach the
	// views so in-flight fetches and spinners land behind it.
	if m.palette.Visible() {
		var paletteCmd tea.Cmd
		m.palette, paletteCmd = m.palette.Update(msg)
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m, paletteCmd
		}
		next, cmd := m.dispatch(msg)
		return next, tea.Batch(paletteCmd, cmd)
	}
	return m.dispatch(msg)
}

// dispatch handles everything the palette does not own.
func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case routedMsg:
		return m.mount(msg)

	case loginview.LoggedInMsg:
		m.status = "signed in as " + msg.Session.Name
		return m, m.navigateCmd(sessiondto.RouteCalendar)

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout: " + msg.err.Error()
		} else {
			m.status = "signed out"
		}
		return m, m.navigateCmd(sessiondto.RouteCalendar)

	case components.StatusMsg:
		m.status = msg.Text
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.route != sessiondto.RouteCalendar || !m.mounted {
			break
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// Yield to the editor and delete prompt so they can take free typing.
		if m.calV.Capturing() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Logout):
			return m, m.logoutCmd()
		}
	}

	var cmd tea.Cmd
	switch {
	case m.route == sessiondto.RouteLogin:
		m.loginV, cmd = m.loginV.Update(msg)
	case m.mounted:
		m.calV, cmd = m.calV.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.route == sessiondto.RouteLogin || !m.mounted {
		return m.loginV.View()
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.calV.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	role := m.user.Role
	if m.user.CanEdit {
		role = theme.Ok.Render(role)
	} else {
		role = theme.Muted.Render(role + " · read-only")
	}
	bar := theme.Hot.Render("TeamBoard") + "  " + m.user.Name + " " + role
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  :::palette  L:logout  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

// paletteCommand binds a palette entry to the code that runs it.
type paletteCommand struct {
	components.PaletteCommand
	run func(m Model, args []string) (tea.Model, tea.Cmd)
}

func paletteCommands() []paletteCommand {
	return []paletteCommand{
		{components.PaletteCommand{Name: "today", Summary: "select today"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
			m.calV.SelectDay(m.calendar.Today())
			return m, nil
		}},
		{components.PaletteCommand{Name: "goto", Args: "<YYYY-MM|YYYY-MM-DD>", Summary: "jump to a day or month"}, func(m Model, args []string) (tea.Model, tea.Cmd) {
			if len(args) == 0 {
				m.status = "usage: goto <YYYY-MM|YYYY-MM-DD>"
				return m, nil
			}
			day, err := parseGoto(args[0], m.calendar.Location())
			if err != nil {
				m.status = "invalid date: " + args[0]
				return m, nil
			}
			m.calV.SelectDay(day)
			return m, nil
		}},
		{components.PaletteCommand{Name: "refresh", Summary: "reload events"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
			return m, m.calV.Refresh()
		}},
		{components.PaletteCommand{Name: "new", Summary: "add an event on the selected day"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
			if !m.calV.CanEdit() {
				m.status = "only managers can add events"
				return m, nil
			}
			return m, m.calV.OpenCreate()
		}},
		{components.PaletteCommand{Name: "logout", Summary: "sign out"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
			return m, m.logoutCmd()
		}},
		{components.PaletteCommand{Name: "quit", Summary: "exit"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
			return m, tea.Quit
		}},
	}
}

func paletteEntries(commands []paletteCommand) []components.PaletteCommand {
	out := make([]components.PaletteCommand, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.PaletteCommand)
	}
	return out
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 || !m.mounted {
		return m, nil
	}
	for _, c := range m.commands {
		if c.Name == parts[0] {
			return c.run(m, parts[1:])
		}
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

func parseGoto(text string, loc *time.Location) (time.Time, error) {
	if day, err := time.ParseInLocation("2006-01-02", text, loc); err == nil {
		return day, nil
	}
	return time.ParseInLocation("2006-01", text, loc)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// mount swaps the active screen to the route the guard resolved.
func (m Model) mount(msg routedMsg) (tea.Model, tea.Cmd) {
	if msg.route == sessiondto.RouteCalendar && msg.err == nil {
		m.route = sessiondto.RouteCalendar
		m.user = msg.session
		m.calV = calendarview.New(calendarPortBridge{cal: m.calendar, events: m.events}, m.events, msg.session.CanEdit)
		m.mounted = true
		m.keys.calendar = m.calV.Keys()
		m.propagateSize()
		return m, m.calV.Init()
	}
	m.route = sessiondto.RouteLogin
	m.user = sessiondto.SessionOutput{}
	m.mounted = false
	m.showHelp = false
	m.keys.calendar = nil
	m.loginV = loginview.New(m.session)
	m.propagateSize()
	return m, m.loginV.Init()
}

func (m *Model) propagateSize() {
	if m.width == 0 {
		return
	}
	m.loginV, _ = m.loginV.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	if m.mounted {
		m.calV, _ = m.calV.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 3})
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) navigateCmd(target string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ctx := context.Background()
		route := session.Route(ctx, target)
		if route != sessiondto.RouteCalendar {
			return routedMsg{route: route}
		}
		current, err := session.Current(ctx)
		return routedMsg{route: route, session: current, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return loggedOutMsg{err: session.Logout(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// calendarPortBridge joins the calendar and event ports into the single
// interface the calendar view needs.

type calendarPortBridge struct {
	cal    calendarPort
	events eventPort
}

func (b calendarPortBridge) Fetch(ctx context.Context) ([]calendardto.EntryOutput, error) {
	return b.cal.Fetch(ctx)
}
func (b calendarPortBridge) Layout(input calendardto.LayoutInput) calendardto.LayoutOutput {
	return b.cal.Layout(input.Entries, input.Selected)
}
func (b calendarPortBridge) Today() time.Time { return b.cal.Today() }
func (b calendarPortBridge) ShiftDays(day time.Time, n int) time.Time {
	return b.cal.ShiftDays(day, n)
}
func (b calendarPortBridge) ShiftMonths(day time.Time, n int) time.Time {
	return b.cal.ShiftMonths(day, n)
}
func (b calendarPortBridge) Delete(ctx context.Context, id string) error {
	return b.events.Delete(ctx, id)
}
func (b calendarPortBridge) NewDraft() eventdto.DraftOutput { return b.events.NewDraft() }
func (b calendarPortBridge) DraftFor(entry calendardto.EntryOutput) eventdto.DraftOutput {
	return b.events.DraftFor(eventdto.EventOutput{
		ID:          entry.ID,
		Title:       entry.Title,
		Type:        entry.Type,
		Icon:        entry.Icon,
		Label:       entry.Label,
		Date:        entry.At,
		Description: entry.Description,
	})
}
