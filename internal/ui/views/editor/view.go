package editor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	eventdto "teamboard/internal/modules/event/dto"
	"teamboard/internal/ui/components"
	"teamboard/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the event use-case.
type Port interface {
	Types() []eventdto.TypeOption
	Validate(input eventdto.SaveInput) eventdto.FieldErrors
	Create(ctx context.Context, input eventdto.SaveInput) (eventdto.EventOutput, error)
	Update(ctx context.Context, id string, input eventdto.SaveInput) (eventdto.EventOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SavedMsg is sent upward after a successful create or update.
type SavedMsg struct {
	Event   eventdto.EventOutput
	Created bool
}

// CancelledMsg is sent upward when the user dismisses the form.
type CancelledMsg struct{}

type saveResultMsg struct {
	event eventdto.EventOutput
	err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldTitle = iota
	fieldType
	fieldHour
	fieldDescription
	fieldCount
)

type Model struct {
	port    Port
	id      string
	day     time.Time
	types   []eventdto.TypeOption
	typeIdx int

	title       textinput.Model
	hour        textinput.Model
	description textarea.Model
	spinner     spinner.Model

	focus     int
	busy      bool
	errors    eventdto.FieldErrors
	saveError string
	width     int
}

// New opens the form for day. An empty id creates, otherwise id is updated.
func New(port Port, day time.Time, id string, draft eventdto.DraftOutput) Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = 40
	title.SetValue(draft.Title)

	hour := textinput.New()
	hour.Placeholder = "HH:MM"
	hour.CharLimit = 5
	hour.Width = 6
	hour.SetValue(draft.Hour)

	description := textarea.New()
	description.Placeholder = "Description (markdown)"
	description.ShowLineNumbers = false
	description.SetWidth(44)
	description.SetHeight(4)
	description.SetValue(draft.Description)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	types := port.Types()
	typeIdx := 0
	for i, t := range types {
		if t.Value == draft.Type {
			typeIdx = i
		}
	}

	m := Model{
		port:        port,
		id:          id,
		day:         day,
		types:       types,
		typeIdx:     typeIdx,
		title:       title,
		hour:        hour,
		description: description,
		spinner:     sp,
	}
	m.setFocus(fieldTitle)
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Busy() bool { return m.busy }

func (m Model) Editing() bool { return m.id != "" }

func (m Model) FieldErrors() eventdto.FieldErrors { return m.errors }

func (m Model) SaveError() string { return m.saveError }

func (m Model) Input() eventdto.SaveInput {
	input := eventdto.SaveInput{
		Day:         m.day,
		Title:       m.title.Value(),
		Hour:        m.hour.Value(),
		Description: m.description.Value(),
	}
	if len(m.types) > 0 {
		input.Type = m.types[m.typeIdx].Value
	}
	return input
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case saveResultMsg:
		m.busy = false
		if msg.err != nil {
			slog.Error("save event failed", "event_id", m.id, "error", msg.err)
			m.saveError = "Could not save the event. Your changes are still here."
			return m, components.Status("saving failed: " + msg.err.Error())
		}
		saved := SavedMsg{Event: msg.event, Created: m.id == ""}
		return m, func() tea.Msg { return saved }

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+s":
			return m.submit()
		case "tab":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if m.focus != fieldDescription {
				return m.submit()
			}
		case "left", "h":
			if m.focus == fieldType && len(m.types) > 0 {
				m.typeIdx = (m.typeIdx + len(m.types) - 1) % len(m.types)
				return m, nil
			}
		case "right", "l", " ":
			if m.focus == fieldType && len(m.types) > 0 {
				m.typeIdx = (m.typeIdx + 1) % len(m.types)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldHour:
		m.hour, cmd = m.hour.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	heading := "New event"
	if m.Editing() {
		heading = "Edit event"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(heading) + "  " + theme.Muted.Render(m.day.Format("Monday, 02/01/2006")) + "\n\n")

	sb.WriteString(m.label("Title", fieldTitle) + "\n" + m.title.View() + "\n")
	sb.WriteString(m.fieldError("title"))

	sb.WriteString(m.label("Type", fieldType) + "\n" + m.renderTypes() + "\n")
	sb.WriteString(m.fieldError("type"))

	sb.WriteString(m.label("Hour", fieldHour) + "\n" + m.hour.View() + "\n")
	sb.WriteString(m.fieldError("hour"))

	sb.WriteString(m.label("Description", fieldDescription) + "\n" + m.description.View() + "\n\n")

	switch {
	case m.busy:
		sb.WriteString(m.spinner.View() + " Saving…")
	case m.saveError != "":
		sb.WriteString(theme.Error.Render(m.saveError))
	default:
		sb.WriteString(theme.Muted.Render("enter/ctrl+s: save  tab: next  ←/→: type  esc: cancel"))
	}
	return theme.PaneActive.Width(52).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

// submit validates locally and only then issues the request.
func (m Model) submit() (Model, tea.Cmd) {
	input := m.Input()
	m.saveError = ""
	if errs := m.port.Validate(input); len(errs) > 0 {
		m.errors = errs
		return m, nil
	}
	m.errors = nil
	m.busy = true
	port, id := m.port, m.id
	save := func() tea.Msg {
		var (
			event eventdto.EventOutput
			err   error
		)
		if id == "" {
			event, err = port.Create(context.Background(), input)
		} else {
			event, err = port.Update(context.Background(), id, input)
		}
		return saveResultMsg{event: event, err: err}
	}
	return m, tea.Batch(save, m.spinner.Tick)
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	m.title.Blur()
	m.hour.Blur()
	m.description.Blur()
	switch field {
	case fieldTitle:
		return m.title.Focus()
	case fieldHour:
		return m.hour.Focus()
	case fieldDescription:
		return m.description.Focus()
	}
	return nil
}

func (m Model) label(text string, field int) string {
	if m.focus == field {
		return theme.Hot.Render("› " + text)
	}
	return theme.Muted.Render("  " + text)
}

func (m Model) fieldError(field string) string {
	if msg, ok := m.errors[field]; ok {
		return theme.Error.Render("  "+msg) + "\n"
	}
	return ""
}

func (m Model) renderTypes() string {
	parts := make([]string, 0, len(m.types))
	for i, t := range m.types {
		option := t.Icon + " " + t.Label
		if i == m.typeIdx {
			parts = append(parts, theme.TypeStyle(t.Value).Bold(true).Render("("+option+")"))
		} else {
			parts = append(parts, theme.Dim.Render(" "+option+" "))
		}
	}
	return "  " + strings.Join(parts, " ")
}
