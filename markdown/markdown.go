// Package markdown renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling. Bot replies are
// markdown; the TUI renders them through this package.
package markdown

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"lawbot"
)

// Render parses markdown source and returns ANSI-styled terminal output
// word-wrapped to width. Code blocks keep their own line breaks.
func Render(source string, width int, theme lawbot.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return newRenderer(theme).render([]byte(source), width)
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
