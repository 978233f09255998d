// Package bubbletea provides the Bubble Tea TUI for the lawbot client.
//
// The TUI binds to the orchestrator by subscription: every store
// mutation happens inside Update, on the single Bubble Tea event loop.
// Stream fragments arrive as messages — one pull per command — so the
// fold step always runs to completion before the next fragment is
// requested.
package bubbletea

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lawbot"
	"lawbot/chat"
)

// Run creates and runs the Bubble Tea program. It blocks until the
// program exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// FragmentMsg delivers one reply fragment for folding.
type FragmentMsg struct {
	Turn     *chat.Turn
	Fragment lawbot.Fragment
}

// TurnDoneMsg signals that the reply stream ended, normally or with err.
type TurnDoneMsg struct {
	Turn *chat.Turn
	Err  error
}

// pullFragment pulls exactly one fragment off the event loop. The store
// is never touched here; folding happens in Update.
func pullFragment(t *chat.Turn) tea.Cmd {
	return func() tea.Msg {
		f, err := t.Next()
		if err == io.EOF {
			return TurnDoneMsg{Turn: t}
		}
		if err != nil {
			return TurnDoneMsg{Turn: t, Err: err}
		}
		return FragmentMsg{Turn: t, Fragment: f}
	}
}
