package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"teamboard/internal/ui/theme"
)

// Dialog renders a bordered confirmation box with a key hint line.
func Dialog(title, body, hint string, width int) string {
	if width < 24 {
		width = 48
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	sb.WriteString(body + "\n\n")
	sb.WriteString(theme.Muted.Render(hint))
	return theme.Dialog.Width(width).Render(sb.String())
}

// Center places content in the middle of a w×h area.
func Center(w, h int, content string) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}
