package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Overlay0 = lipgloss.Color("#6c7086")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")
	Mauve    = lipgloss.Color("#cba6f7")
	Teal     = lipgloss.Color("#94e2d5")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Red).
		Background(Mantle).
		Foreground(Text).
		Padding(1, 2)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Dim   = lipgloss.NewStyle().Foreground(Overlay0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)
	Ok    = lipgloss.NewStyle().Foreground(Green)

	Selected = lipgloss.NewStyle().Background(Lavender).Foreground(Base).Bold(true)
	Today    = lipgloss.NewStyle().Foreground(Peach).Bold(true).Underline(true)
	Marker   = lipgloss.NewStyle().Foreground(Green)
)

// TypeColor is the accent for an event type; unknown types fall back to Text.
func TypeColor(eventType string) lipgloss.Color {
	switch eventType {
	case "training":
		return Green
	case "game":
		return Yellow
	case "gym":
		return Red
	case "meeting":
		return Sapphire
	case "concentration":
		return Mauve
	default:
		return Text
	}
}

func TypeStyle(eventType string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TypeColor(eventType))
}
