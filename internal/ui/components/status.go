package components

import tea "github.com/charmbracelet/bubbletea"

// StatusMsg asks the root model to replace the status bar text.
type StatusMsg struct{ Text string }

func Status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}
