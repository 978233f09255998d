package bubbletea

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"lawbot"
	"lawbot/chat"
	"lawbot/config"
)

var _ tea.Model = Model{}

// mode is the modal state of the TUI.
type mode int

const (
	modeChat mode = iota
	modeCredential
	modeDeleteConfirm
	modeDocTitle
	modeDocContent
)

// Model is the Bubble Tea model for the lawbot TUI.
type Model struct {
	// Input is the message input. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript area. Exported for test access.
	Viewport viewport.Model

	orch   *chat.Orchestrator
	cred   *config.Credential
	theme  lawbot.Theme
	styles Styles

	mode     mode
	docTitle string // pending document title during the add flow

	turn  *chat.Turn
	err   error
	ready bool

	width  int
	height int
}

// New creates a TUI Model bound to the orchestrator. When no credential
// is available the model starts in the setup prompt.
func New(orch *chat.Orchestrator, cred *config.Credential, theme lawbot.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "법률 질문을 입력하세요..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	m := Model{
		Input:  ti,
		orch:   orch,
		cred:   cred,
		theme:  theme,
		styles: NewStyles(theme),
	}
	if _, ok := cred.Get(); !ok {
		m = m.openCredentialPrompt()
	}
	return m
}

// Mode helpers for tests.

// InCredentialPrompt reports whether the credential setup prompt is open.
func (m Model) InCredentialPrompt() bool { return m.mode == modeCredential }

// InDeleteConfirm reports whether the delete confirmation is open.
func (m Model) InDeleteConfirm() bool { return m.mode == modeDeleteConfirm }

// Streaming reports whether a reply stream is being consumed.
func (m Model) Streaming() bool { return m.turn != nil }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FragmentMsg:
		m.orch.Fold(msg.Turn, msg.Fragment)
		m = m.refresh()
		return m, pullFragment(msg.Turn)

	case TurnDoneMsg:
		err := m.orch.Finish(msg.Turn, msg.Err)
		m.turn = nil
		if chat.CredentialRequired(err) {
			m = m.openCredentialPrompt()
		}
		m = m.refresh()
		cmd := m.Input.Focus()
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	vpWidth := msg.Width - m.sidebarWidth()
	vpHeight := msg.Height - inputHeight - statusHeight
	if !m.ready {
		m.Viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = vpWidth
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width - 4
	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeCredential:
		return m.handleCredentialKey(msg)
	case modeDeleteConfirm:
		return m.handleDeleteKey(msg)
	case modeDocTitle, modeDocContent:
		return m.handleDocKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.send(m.Input.Value())

	case tea.KeyCtrlN:
		m.orch.NewSession()
		return m.refresh(), nil

	case tea.KeyCtrlJ:
		return m.selectAdjacent(1), nil

	case tea.KeyCtrlK:
		return m.selectAdjacent(-1), nil

	case tea.KeyCtrlP:
		m.orch.TogglePin(m.orch.Active().ID)
		return m.refresh(), nil

	case tea.KeyCtrlD:
		m.orch.RequestDelete(m.orch.Active().ID)
		if _, ok := m.orch.PendingDelete(); ok {
			m.mode = modeDeleteConfirm
		}
		return m, nil

	case tea.KeyCtrlE:
		m.orch.SetPersona(nextPersona(m.orch.Persona()))
		return m.refresh(), nil

	case tea.KeyCtrlB:
		return m.startTurn(func() (*chat.Turn, error) {
			return m.orch.LatestBriefing(context.Background())
		})

	case tea.KeyCtrlR:
		m.orch.ResetSession()
		return m.refresh(), nil

	case tea.KeyCtrlG:
		return m.openCredentialPrompt(), nil

	case tea.KeyCtrlO:
		m.mode = modeDocTitle
		m.Input.Reset()
		m.Input.Placeholder = "문서 제목을 입력하세요..."
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) send(text string) (tea.Model, tea.Cmd) {
	return m.startTurn(func() (*chat.Turn, error) {
		return m.orch.Send(context.Background(), text)
	})
}

// startTurn runs a send-style intent. Validation rejections are silent;
// credential failures open the setup prompt; an accepted turn starts the
// fragment pull loop.
func (m Model) startTurn(start func() (*chat.Turn, error)) (tea.Model, tea.Cmd) {
	turn, err := start()
	if err != nil {
		if chat.CredentialRequired(err) {
			m = m.openCredentialPrompt()
		}
		// ErrEmptyMessage and ErrBusy are input-validation short-circuits,
		// not user-facing failures. Stream-open failures are already in
		// the transcript.
		return m.refresh(), nil
	}
	m.turn = turn
	m.Input.Reset()
	m = m.refresh()
	return m, pullFragment(turn)
}

func (m Model) handleCredentialKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := m.Input.Value()
		if err := m.cred.Set(value); err != nil {
			m.err = err
			return m, nil
		}
		if _, ok := m.cred.Get(); ok {
			m = m.closePrompt()
		}
		return m, nil

	case tea.KeyEsc:
		// Closable only once some credential exists.
		if _, ok := m.cred.Get(); ok {
			m = m.closePrompt()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter || msg.String() == "y":
		m.orch.ConfirmDelete()
		m.mode = modeChat
		return m.refresh(), nil
	case msg.Type == tea.KeyEsc || msg.String() == "n":
		m.orch.CancelDelete()
		m.mode = modeChat
		return m, nil
	}
	return m, nil
}

func (m Model) handleDocKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.mode == modeDocTitle {
			if m.Input.Value() == "" {
				return m, nil
			}
			m.docTitle = m.Input.Value()
			m.mode = modeDocContent
			m.Input.Reset()
			m.Input.Placeholder = "문서 내용을 붙여넣으세요..."
			return m, nil
		}
		m.orch.AddDocument(m.docTitle, m.Input.Value())
		return m.closePrompt().refresh(), nil

	case tea.KeyEsc:
		return m.closePrompt(), nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) openCredentialPrompt() Model {
	m.mode = modeCredential
	m.Input.Reset()
	m.Input.Placeholder = "Gemini API 키를 입력하세요 (AIza...)"
	return m
}

func (m Model) closePrompt() Model {
	m.mode = modeChat
	m.docTitle = ""
	m.Input.Reset()
	m.Input.Placeholder = "법률 질문을 입력하세요..."
	return m
}

// selectAdjacent moves the active session within the display order.
func (m Model) selectAdjacent(delta int) Model {
	sessions := m.orch.Sessions()
	active := m.orch.Active().ID
	for i, s := range sessions {
		if s.ID == active {
			next := i + delta
			if next >= 0 && next < len(sessions) {
				m.orch.Select(sessions[next].ID)
			}
			break
		}
	}
	return m.refresh()
}

func nextPersona(p lawbot.Persona) lawbot.Persona {
	for i, known := range lawbot.Personas {
		if known == p {
			return lawbot.Personas[(i+1)%len(lawbot.Personas)]
		}
	}
	return lawbot.PersonaGeneral
}

// refresh re-renders the transcript into the viewport and scrolls to the
// bottom.
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderTranscript())
	m.Viewport.GotoBottom()
	return m
}
