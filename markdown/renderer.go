package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"lawbot"
)

// renderer walks the goldmark AST and emits styled terminal text. It
// covers the constructs the model actually produces: paragraphs,
// headings, emphasis, code, lists and links. Anything else falls through
// to its children unstyled.
type renderer struct {
	heading lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	code    lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
}

func newRenderer(theme lawbot.Theme) *renderer {
	return &renderer{
		heading: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		code:    lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:    lipgloss.NewStyle().Foreground(ansiColor(theme.Citation)).Underline(true),
	}
}

func (r *renderer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, source, width, &buf)
		if c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (r *renderer) block(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		buf.WriteString(wrap(r.inline(node, source), width))
		buf.WriteString("\n")

	case *ast.Heading:
		buf.WriteString(r.heading.Render(r.inline(n, source)))
		buf.WriteString("\n")

	case *ast.FencedCodeBlock:
		r.codeLines(n.Lines(), source, buf)

	case *ast.CodeBlock:
		r.codeLines(n.Lines(), source, buf)

	case *ast.List:
		r.list(n, source, width, buf, 0)

	case *ast.ThematicBreak:
		buf.WriteString(r.muted.Render(strings.Repeat("─", min(width, 40))))
		buf.WriteString("\n")

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c, source, width, buf)
		}
	}
}

func (r *renderer) codeLines(lines *text.Segments, source []byte, buf *bytes.Buffer) {
	gutter := r.muted.Render("│") + " "
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content := strings.TrimRight(string(seg.Value(source)), "\n")
		buf.WriteString(gutter)
		buf.WriteString(r.code.Render(content))
		buf.WriteString("\n")
	}
}

func (r *renderer) list(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		prefix := strings.Repeat("  ", depth) + marker
		cont := strings.Repeat(" ", len(prefix))

		var body strings.Builder
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if nested, ok := ic.(*ast.List); ok {
				flushItem(buf, prefix, cont, body.String(), width)
				body.Reset()
				prefix = cont
				r.list(nested, source, width, buf, depth+1)
				continue
			}
			body.WriteString(r.inline(ic, source))
		}
		flushItem(buf, prefix, cont, body.String(), width)
	}
}

func flushItem(buf *bytes.Buffer, prefix, cont, body string, width int) {
	if body == "" {
		return
	}
	wrapped := wrap(body, max(width-len(cont), 10))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix)
		} else {
			buf.WriteString(cont)
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

// inline collects the styled inline text of node's children.
func (r *renderer) inline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.inlineNode(c, source, &buf)
	}
	return buf.String()
}

func (r *renderer) inlineNode(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
		} else {
			buf.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.code.Render(r.inline(n, source)))

	case *ast.Link:
		buf.WriteString(r.link.Render(r.inline(n, source)))
		buf.WriteString(r.muted.Render(" (" + string(n.Destination) + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.link.Render(string(n.URL(source))))

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.inlineNode(c, source, buf)
		}
	}
}

// wrap word-wraps styled text to width terminal cells. lipgloss wrapping
// is ANSI-aware, so escape sequences from inline styles survive intact
// and double-width Hangul counts as two cells.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
