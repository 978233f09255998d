package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lawbot"
	"lawbot/markdown"
)

const (
	inputHeight  = 1
	statusHeight = 1

	// sidebarCols is the session list width on wide terminals.
	sidebarCols = 26
	// sidebarMinTerm hides the sidebar below this terminal width.
	sidebarMinTerm = 72
)

func (m Model) sidebarWidth() int {
	if m.width < sidebarMinTerm {
		return 0
	}
	return sidebarCols
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Personal LawBot 시작 중..."
	}

	switch m.mode {
	case modeCredential:
		return m.viewCredential()
	case modeDeleteConfirm:
		return m.viewDeleteConfirm()
	case modeDocTitle, modeDocContent:
		return m.viewDocPrompt()
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.Viewport.View(),
		m.Input.View(),
		m.viewStatus(),
	)
	if m.sidebarWidth() == 0 {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), main)
}

func (m Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("상담 목록"))
	b.WriteString("\n\n")

	active := m.orch.Active().ID
	for _, s := range m.orch.Sessions() {
		marker := "  "
		if s.ID == active {
			marker = m.styles.Accent.Render("› ")
		}
		title := runewidth.Truncate(s.Title, sidebarCols-6, "…")
		if s.Pinned {
			title = m.styles.System.Render("★ ") + title
		}
		b.WriteString(marker + title + "\n")
	}

	docs := m.orch.Active().Documents
	if len(docs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("검토 자료"))
		b.WriteString("\n")
		for _, d := range docs {
			b.WriteString("  " + runewidth.Truncate(d.Title, sidebarCols-4, "…") + "\n")
		}
	}

	return lipgloss.NewStyle().
		Width(sidebarCols).
		Height(m.height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		Render(b.String())
}

func (m Model) renderTranscript() string {
	width := m.Viewport.Width - 2
	var parts []string
	for _, msg := range m.orch.Active().Messages {
		parts = append(parts, m.renderMessage(msg, width))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderMessage(msg lawbot.Message, width int) string {
	switch {
	case msg.Role == lawbot.RoleUser:
		return m.styles.UserMsg.Render("의뢰인") + "\n" + wrapPlain(msg.Text, width)

	case msg.Role == lawbot.RoleSystem:
		return m.styles.System.Render(msg.Text)

	case msg.IsError:
		return m.styles.Error.Render(msg.Text)

	default:
		body := markdown.Render(msg.Text, width, m.theme)
		if body == "" {
			body = m.styles.Muted.Render("답변 작성 중...")
		}
		out := m.styles.Accent.Render("LawBot") + "\n" + body
		if len(msg.Citations) > 0 {
			out += "\n" + m.renderCitations(msg.Citations)
		}
		return out
	}
}

func (m Model) renderCitations(citations []lawbot.Citation) string {
	var b strings.Builder
	b.WriteString(m.styles.Muted.Render("출처:"))
	for _, c := range citations {
		b.WriteString("\n")
		label := c.Title
		if label == "" {
			label = c.URI
		}
		b.WriteString(m.styles.Citation.Render("  • " + label))
		if c.Title != "" && c.URI != "" {
			b.WriteString(m.styles.Muted.Render(" (" + c.URI + ")"))
		}
	}
	return b.String()
}

func (m Model) viewStatus() string {
	persona := "모드: " + m.orch.Persona().Label()
	state := "대기"
	if m.orch.Sending() {
		state = "답변 검색 중..."
	}
	hints := "enter 전송 · ^N 새 상담 · ^J/^K 이동 · ^P 고정 · ^D 삭제 · ^E 모드 · ^O 자료 · ^B 브리핑 · ^G 설정"
	line := persona + " · " + state + "  " + hints
	return m.styles.Muted.Render(runewidth.Truncate(line, max(m.width-m.sidebarWidth(), 0), "…"))
}

func (m Model) viewCredential() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("API 키 설정"))
	b.WriteString("\n\n")
	b.WriteString("Personal LawBot은 Google Gemini API 키가 필요합니다.\n")
	b.WriteString(m.styles.Muted.Render("키는 이 기기의 설정 파일에만 저장됩니다."))
	b.WriteString("\n\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter 저장 · esc 닫기"))
	return m.centered(b.String())
}

func (m Model) viewDeleteConfirm() string {
	pending, ok := m.orch.PendingDelete()
	if !ok {
		return m.centered("")
	}
	var b strings.Builder
	b.WriteString(m.styles.Error.Render("대화 삭제"))
	b.WriteString("\n\n")
	b.WriteString("이 상담 기록을 영구적으로 삭제하시겠습니까?\n")
	b.WriteString(m.styles.Accent.Render(pending.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Error.Render("삭제 후에는 복구할 수 없습니다."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter/y 삭제 · esc/n 취소"))
	return m.centered(b.String())
}

func (m Model) viewDocPrompt() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("검토 자료 등록"))
	b.WriteString("\n\n")
	if m.mode == modeDocContent {
		b.WriteString("제목: " + m.docTitle + "\n\n")
	}
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter 다음 · esc 취소"))
	return m.centered(b.String())
}

func (m Model) centered(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func wrapPlain(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
