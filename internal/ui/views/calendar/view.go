package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	calendardto "teamboard/internal/modules/calendar/dto"
	eventdto "teamboard/internal/modules/event/dto"
	"teamboard/internal/ui/components"
	"teamboard/internal/ui/theme"
	"teamboard/internal/ui/views/editor"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the calendar and event use-cases.
type Port interface {
	Fetch(ctx context.Context) ([]calendardto.EntryOutput, error)
	Layout(input calendardto.LayoutInput) calendardto.LayoutOutput
	Today() time.Time
	ShiftDays(day time.Time, n int) time.Time
	ShiftMonths(day time.Time, n int) time.Time
	Delete(ctx context.Context, id string) error
	NewDraft() eventdto.DraftOutput
	DraftFor(entry calendardto.EntryOutput) eventdto.DraftOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// Generations are unique across view instances, so a result addressed to a
// torn-down view never matches the live one.
var generations atomic.Uint64

type entriesLoadedMsg struct {
	gen     uint64
	entries []calendardto.EntryOutput
	err     error
}

type deleteResultMsg struct {
	id  string
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	NextEntry key.Binding
	PrevEntry key.Binding
	Refresh   key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
}

func defaultKeys(canEdit bool) keyMap {
	k := keyMap{
		PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		PrevWeek:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		NextWeek:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		NextEntry: key.NewBinding(key.WithKeys("J", "tab"), key.WithHelp("J/tab", "next event")),
		PrevEntry: key.NewBinding(key.WithKeys("K", "shift+tab"), key.WithHelp("K", "prev event")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add event")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit event")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete event")),
	}
	k.Add.SetEnabled(canEdit)
	k.Edit.SetEnabled(canEdit)
	k.Delete.SetEnabled(canEdit)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDay, k.NextMonth, k.Today, k.Add}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek},
		{k.PrevMonth, k.NextMonth, k.Today, k.Refresh},
		{k.NextEntry, k.PrevEntry, k.Add, k.Edit, k.Delete},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       Port
	editorPort editor.Port
	canEdit    bool

	entries  []calendardto.EntryOutput
	selected time.Time
	cursor   int
	loading  bool
	gen      uint64

	pendingDelete *calendardto.EntryOutput
	deleting      bool

	editor     editor.Model
	editorOpen bool

	keys     keyMap
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New(port Port, editorPort editor.Port, canEdit bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(40),
	)

	return Model{
		port:       port,
		editorPort: editorPort,
		canEdit:    canEdit,
		selected:   port.Today(),
		loading:    true,
		gen:        generations.Add(1),
		keys:       defaultKeys(canEdit),
		spinner:    sp,
		renderer:   r,
	}
}

// Init fetches the collection once on mount.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.gen), m.spinner.Tick)
}

// ─── board state ─────────────────────────────────────────────────────────────

func (m Model) Entries() []calendardto.EntryOutput { return m.entries }

func (m Model) Selected() time.Time { return m.selected }

func (m Model) Loading() bool { return m.loading }

func (m Model) CanEdit() bool { return m.canEdit }

func (m Model) EditorOpen() bool { return m.editorOpen }

func (m Model) Editor() editor.Model { return m.editor }

func (m Model) PendingDelete() (calendardto.EntryOutput, bool) {
	if m.pendingDelete == nil {
		return calendardto.EntryOutput{}, false
	}
	return *m.pendingDelete, true
}

// Capturing reports whether a modal owns the keyboard, so global bindings must yield.
func (m Model) Capturing() bool {
	return m.editorOpen || m.pendingDelete != nil
}

func (m Model) Keys() help.KeyMap { return m.keys }

// DayEntries is the selected day's list, ordered by time.
func (m Model) DayEntries() []calendardto.EntryOutput {
	return m.layout().DayEntries
}

// SelectDay only changes local state.
func (m *Model) SelectDay(day time.Time) {
	m.selected = day
	m.cursor = 0
}

// Refresh starts a new fetch generation. Older in-flight results are ignored.
func (m *Model) Refresh() tea.Cmd {
	m.gen = generations.Add(1)
	m.loading = true
	return tea.Batch(m.fetch(m.gen), m.spinner.Tick)
}

func (m Model) fetch(gen uint64) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		entries, err := port.Fetch(context.Background())
		return entriesLoadedMsg{gen: gen, entries: entries, err: err}
	}
}

// OpenCreate opens the editor for the selected day.
func (m *Model) OpenCreate() tea.Cmd {
	if !m.canEdit {
		return nil
	}
	m.editor = editor.New(m.editorPort, m.selected, "", m.port.NewDraft())
	m.editorOpen = true
	return m.editor.Init()
}

// OpenEdit opens the editor prefilled from the entry under the cursor.
func (m *Model) OpenEdit() tea.Cmd {
	entry, ok := m.current()
	if !m.canEdit || !ok {
		return nil
	}
	m.editor = editor.New(m.editorPort, m.selected, entry.ID, m.port.DraftFor(entry))
	m.editorOpen = true
	return m.editor.Init()
}

// RequestDelete opens the confirmation for the entry under the cursor.
func (m *Model) RequestDelete() {
	entry, ok := m.current()
	if !m.canEdit || !ok {
		return
	}
	m.pendingDelete = &entry
}

// CancelDelete closes the prompt without any network call.
func (m *Model) CancelDelete() {
	if m.deleting {
		return
	}
	m.pendingDelete = nil
}

// ConfirmDelete issues the delete. The prompt stays open until it succeeds.
func (m *Model) ConfirmDelete() tea.Cmd {
	if m.pendingDelete == nil || m.deleting {
		return nil
	}
	m.deleting = true
	id, port := m.pendingDelete.ID, m.port
	return func() tea.Msg {
		return deleteResultMsg{id: id, err: port.Delete(context.Background(), id)}
	}
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor, _ = m.editor.Update(msg)
		return m, nil

	case entriesLoadedMsg:
		if msg.gen != m.gen {
			slog.Debug("dropping stale fetch", "generation", msg.gen, "current", m.gen)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			slog.Error("fetch events failed", "error", msg.err)
			return m, components.Status("could not load events: " + msg.err.Error())
		}
		m.entries = msg.entries
		m.clampCursor()
		return m, components.Status(fmt.Sprintf("%d events loaded", len(m.entries)))

	case deleteResultMsg:
		m.deleting = false
		if msg.err != nil {
			slog.Error("delete event failed", "event_id", msg.id, "error", msg.err)
			return m, components.Status("delete failed: " + msg.err.Error())
		}
		m.pendingDelete = nil
		return m, tea.Batch(components.Status("event deleted"), m.Refresh())

	case editor.SavedMsg:
		m.editorOpen = false
		text := "event updated"
		if msg.Created {
			text = "event created"
		}
		return m, tea.Batch(components.Status(text), m.Refresh())

	case editor.CancelledMsg:
		m.editorOpen = false
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.editorOpen {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.editorOpen {
			break
		}
		if m.pendingDelete != nil {
			switch msg.String() {
			case "y", "enter":
				return m, m.ConfirmDelete()
			case "n", "esc":
				m.CancelDelete()
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.editorOpen {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		m.SelectDay(m.port.ShiftDays(m.selected, -1))
	case key.Matches(msg, m.keys.NextDay):
		m.SelectDay(m.port.ShiftDays(m.selected, 1))
	case key.Matches(msg, m.keys.PrevWeek):
		m.SelectDay(m.port.ShiftDays(m.selected, -7))
	case key.Matches(msg, m.keys.NextWeek):
		m.SelectDay(m.port.ShiftDays(m.selected, 7))
	case key.Matches(msg, m.keys.PrevMonth):
		m.SelectDay(m.port.ShiftMonths(m.selected, -1))
	case key.Matches(msg, m.keys.NextMonth):
		m.SelectDay(m.port.ShiftMonths(m.selected, 1))
	case key.Matches(msg, m.keys.Today):
		m.SelectDay(m.port.Today())
	case key.Matches(msg, m.keys.NextEntry):
		if n := len(m.DayEntries()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case key.Matches(msg, m.keys.PrevEntry):
		if n := len(m.DayEntries()); n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Refresh()
	case key.Matches(msg, m.keys.Add):
		return m, m.OpenCreate()
	case key.Matches(msg, m.keys.Edit):
		return m, m.OpenEdit()
	case key.Matches(msg, m.keys.Delete):
		m.RequestDelete()
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	layout := m.layout()
	grid := theme.Pane.Render(m.renderGrid(layout))
	agenda := theme.Pane.Width(m.agendaWidth()).Render(m.renderAgenda(layout))
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", agenda)

	switch {
	case m.editorOpen:
		return components.Center(m.width, max(m.height, lipgloss.Height(body)), m.editor.View())
	case m.pendingDelete != nil:
		hint := "y/enter: delete  n/esc: cancel"
		if m.deleting {
			hint = m.spinner.View() + " Deleting…"
		}
		dialog := components.Dialog("Confirm Delete",
			fmt.Sprintf("Really want to delete this event %q?", m.pendingDelete.Title), hint, 48)
		return components.Center(m.width, max(m.height, lipgloss.Height(body)), dialog)
	}
	return body
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) layout() calendardto.LayoutOutput {
	return m.port.Layout(calendardto.LayoutInput{
		Entries:  m.entries,
		Year:     m.selected.Year(),
		Month:    m.selected.Month(),
		Selected: m.selected,
	})
}

func (m Model) current() (calendardto.EntryOutput, bool) {
	day := m.DayEntries()
	if len(day) == 0 {
		return calendardto.EntryOutput{}, false
	}
	if m.cursor >= len(day) {
		return day[len(day)-1], true
	}
	return day[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.DayEntries()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) agendaWidth() int {
	w := m.width - 40
	if w < 32 {
		return 32
	}
	return w
}

func (m Model) renderGrid(layout calendardto.LayoutOutput) string {
	var sb strings.Builder
	header := theme.Title.Render(fmt.Sprintf("%s %d", layout.Month, layout.Year))
	if m.loading {
		header += " " + m.spinner.View()
	}
	sb.WriteString(header + "\n\n")
	for _, wd := range layout.Weekdays {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf(" %-3s", wd.String()[:2])))
	}
	sb.WriteString("\n")
	for _, week := range layout.Weeks {
		for _, cell := range week {
			sb.WriteString(renderCell(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderCell(cell calendardto.CellOutput) string {
	day := fmt.Sprintf("%2d", cell.Date.Day())
	marker := " "
	if cell.HasEvents {
		marker = theme.Marker.Render("•")
	}
	switch {
	case cell.Selected:
		day = theme.Selected.Render(day)
	case cell.Today:
		day = theme.Today.Render(day)
	case !cell.InMonth:
		day = theme.Dim.Render(day)
	}
	return " " + day + marker
}

func (m Model) renderAgenda(layout calendardto.LayoutOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(layout.Selected.Format("Monday, 02/01/2006")))
	if m.canEdit {
		sb.WriteString("  " + theme.Muted.Render("a: Add Event"))
	}
	sb.WriteString("\n\n")

	if len(layout.DayEntries) == 0 {
		sb.WriteString(theme.Muted.Render("No events."))
		return sb.String()
	}
	for i, e := range layout.DayEntries {
		line := fmt.Sprintf("%s  %s %s", e.At.In(layout.Selected.Location()).Format("15:04"), e.Icon, e.Title)
		style := theme.TypeStyle(e.Type)
		if i == m.cursor {
			line = "› " + style.Bold(true).Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	if entry, ok := m.current(); ok {
		sb.WriteString("\n" + theme.Muted.Render(entry.Label))
		if m.canEdit {
			sb.WriteString(theme.Muted.Render("  e: edit  d: delete"))
		}
		sb.WriteString("\n")
		sb.WriteString(m.renderDescription(entry.Description))
	}
	return sb.String()
}

func (m Model) renderDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(description); err == nil {
			return rendered
		}
	}
	return description
}
