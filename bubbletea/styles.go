package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"lawbot"
)

// Styles holds the lipgloss styles derived from a theme. Built once at
// startup; the renderer reuses them every frame.
type Styles struct {
	UserMsg  lipgloss.Style
	System   lipgloss.Style
	Error    lipgloss.Style
	Citation lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme lawbot.Theme) Styles {
	return Styles{
		UserMsg:  lipgloss.NewStyle().Foreground(ansiColor(theme.UserMsg)).Bold(true),
		System:   lipgloss.NewStyle().Foreground(ansiColor(theme.System)).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(theme.Error)),
		Citation: lipgloss.NewStyle().Foreground(ansiColor(theme.Citation)),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)),
		Accent:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
