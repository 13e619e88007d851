package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamboard/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// PaletteCommand describes one command the palette offers.
type PaletteCommand struct {
	Name    string
	Args    string
	Summary string
}

func (c PaletteCommand) usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

const maxSuggestions = 5

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle    = lipgloss.NewStyle().Foreground(theme.Subtext0)
	hintTopStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// Palette is a command-palette overlay backed by bubbles/textinput. Tab
// completes the command name to the first suggestion.
type Palette struct {
	input    textinput.Model
	commands []PaletteCommand
	visible  bool
	width    int
}

// NewPalette creates an inactive Palette offering commands.
func NewPalette(commands []PaletteCommand) Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command, tab completes"
	ti.CharLimit = 256
	return Palette{input: ti, commands: commands}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

// Suggestions lists the commands whose name starts with the first typed word.
// Once arguments are being typed only an exact name match is kept.
func (p Palette) Suggestions() []PaletteCommand {
	value := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	word, _, typingArgs := strings.Cut(value, " ")
	var out []PaletteCommand
	for _, c := range p.commands {
		if typingArgs && c.Name != word {
			continue
		}
		if !strings.HasPrefix(c.Name, word) {
			continue
		}
		out = append(out, c)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if s := p.Suggestions(); len(s) > 0 && !strings.Contains(p.input.Value(), " ") {
				completed := s[0].Name
				if s[0].Args != "" {
					completed += " "
				}
				p.input.SetValue(completed)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if suggestions := p.Suggestions(); len(suggestions) > 0 {
		sb.WriteString("\n")
		for i, c := range suggestions {
			style := hintStyle
			if i == 0 {
				style = hintTopStyle
			}
			line := style.Render("  " + c.usage())
			if c.Summary != "" {
				line += hintStyle.Render("  " + c.Summary)
			}
			sb.WriteString(line + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
