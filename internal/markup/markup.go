// Package markup renders the lightweight markdown used in agent transcript
// messages and verdict reasoning for terminal display. Only the constructs
// the backend actually emits are styled (bold, emphasis, code spans,
// bullet lists, headings); everything else falls through as plain text.
package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	italicStyle  = lipgloss.NewStyle().Italic(true)
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Render converts markdown source into styled terminal text. Block elements
// are separated by single blank lines; list items get a bullet glyph.
func Render(source string) string {
	return render(source, true)
}

// Plain strips all markup, returning the bare text content. Used when the
// output is not a TTY or is being written to the session log.
func Plain(source string) string {
	return render(source, false)
}

func render(source string, styled bool) string {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b := renderBlock(n, src, styled); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(n ast.Node, src []byte, styled bool) string {
	switch v := n.(type) {
	case *ast.Heading:
		s := renderInline(v, src, styled)
		if styled {
			return headingStyle.Render(s)
		}
		return s
	case *ast.Paragraph, *ast.TextBlock:
		return renderInline(n, src, styled)
	case *ast.List:
		var lines []string
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			var parts []string
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if p := renderBlock(c, src, styled); p != "" {
					parts = append(parts, p)
				}
			}
			lines = append(lines, "  • "+strings.Join(parts, " "))
		}
		return strings.Join(lines, "\n")
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var sb strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(src))
		}
		s := strings.TrimRight(sb.String(), "\n")
		if styled {
			return codeStyle.Render(s)
		}
		return s
	case *ast.Blockquote:
		var parts []string
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			if p := renderBlock(c, src, styled); p != "" {
				parts = append(parts, "  > "+p)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return renderInline(n, src, styled)
	}
}

func renderInline(n ast.Node, src []byte, styled bool) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.Emphasis:
			inner := renderInline(v, src, styled)
			if !styled {
				sb.WriteString(inner)
			} else if v.Level >= 2 {
				sb.WriteString(boldStyle.Render(inner))
			} else {
				sb.WriteString(italicStyle.Render(inner))
			}
		case *ast.CodeSpan:
			inner := string(v.Text(src))
			if styled {
				sb.WriteString(codeStyle.Render(inner))
			} else {
				sb.WriteString(inner)
			}
		case *ast.Link:
			sb.WriteString(renderInline(v, src, styled))
		case *ast.AutoLink:
			sb.Write(v.Label(src))
		default:
			sb.WriteString(renderInline(c, src, styled))
		}
	}
	return sb.String()
}
