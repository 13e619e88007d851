package login

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "teamboard/internal/modules/session/dto"
	apperrors "teamboard/internal/platform/errors"
	"teamboard/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the session use-case.
type Port interface {
	Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoggedInMsg is sent upward once the session is established.
type LoggedInMsg struct {
	Session sessiondto.SessionOutput
}

type loginResultMsg struct {
	session sessiondto.SessionOutput
	err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldEmail = iota
	fieldPassword
)

type Model struct {
	port     Port
	email    textinput.Model
	password textinput.Model
	spinner  spinner.Model
	focus    int
	busy     bool
	errText  string
	width    int
	height   int
}

func New(port Port) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 36

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, email: email, password: password, spinner: sp}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Busy() bool { return m.busy }

func (m Model) ErrorText() string { return m.errText }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			slog.Warn("login failed", "error", msg.err)
			m.errText = ErrorMessage(msg.err)
			m.password.SetValue("")
			return m, m.setFocus(fieldPassword)
		}
		m.errText = ""
		session := msg.session
		return m, func() tea.Msg { return LoggedInMsg{Session: session} }

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
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % 2)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + 1) % 2)
		case "enter":
			if m.focus == fieldEmail {
				return m, m.setFocus(fieldPassword)
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("TeamBoard") + "\n")
	sb.WriteString(theme.Muted.Render("Sign in to see your team's calendar") + "\n\n")
	sb.WriteString(m.email.View() + "\n")
	sb.WriteString(m.password.View() + "\n\n")
	switch {
	case m.busy:
		sb.WriteString(m.spinner.View() + " Signing in…")
	case m.errText != "":
		sb.WriteString(theme.Error.Render(m.errText))
	default:
		sb.WriteString(theme.Muted.Render("enter: sign in  tab: next field  ctrl+c: quit"))
	}
	box := theme.PaneActive.Width(44).Render(sb.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ErrorMessage is the text shown for a failed sign-in. Server detail is never shown.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, apperrors.ErrUnreachable):
		return "Cannot reach the server. Check your connection."
	case errors.Is(err, apperrors.ErrServer):
		return "The server could not sign you in. Try again later."
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "Email and password are required"
	default:
		return "Sign in failed"
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) submit() (Model, tea.Cmd) {
	m.busy = true
	m.errText = ""
	email, password := m.email.Value(), m.password.Value()
	port := m.port
	login := func() tea.Msg {
		session, err := port.Login(context.Background(), email, password)
		return loginResultMsg{session: session, err: err}
	}
	return m, tea.Batch(login, m.spinner.Tick)
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	if field == fieldEmail {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}
