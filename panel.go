package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for panels.
type Styles struct {
	Border   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
}

// DefaultStyles returns the panel styles bound to r, so color output follows
// whatever r writes to.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Border: r.NewStyle().
			Foreground(lipgloss.Color("244")),
		Title: r.NewStyle().
			Bold(true),
		Subtitle: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		Body: r.NewStyle().
			Padding(1, 2),
	}
}

type Panel struct {
	Title    string // left-aligned in the top edge
	Subtitle string // right-aligned in the bottom edge
	Content  string
}

// RenderPanel draws p in a rounded border sized to fit its content and labels.
func (s Styles) RenderPanel(p Panel) string {
	b := lipgloss.RoundedBorder()

	body := strings.Split(s.Body.Render(p.Content), "\n")
	width := lipgloss.Width(strings.Join(body, "\n"))
	if w := labelWidth(p.Title); w > width {
		width = w
	}
	if w := labelWidth(p.Subtitle); w > width {
		width = w
	}

	var sb strings.Builder
	sb.WriteString(s.Border.Render(b.TopLeft))
	sb.WriteString(s.edge(b.Top, s.Title, p.Title, width, lipgloss.Left))
	sb.WriteString(s.Border.Render(b.TopRight))
	sb.WriteString("\n")

	for _, line := range body {
		sb.WriteString(s.Border.Render(b.Left))
		sb.WriteString(line)
		sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(line)))
		sb.WriteString(s.Border.Render(b.Right))
		sb.WriteString("\n")
	}

	sb.WriteString(s.Border.Render(b.BottomLeft))
	sb.WriteString(s.edge(b.Bottom, s.Subtitle, p.Subtitle, width, lipgloss.Right))
	sb.WriteString(s.Border.Render(b.BottomRight))

	return sb.String()
}

// labelWidth is the edge width a label needs: one rule glyph on each side plus
// a space of padding around the text.
func labelWidth(label string) int {
	if label == "" {
		return 0
	}
	return lipgloss.Width(label) + 4
}

func (s Styles) edge(rule string, style lipgloss.Style, label string, width int, pos lipgloss.Position) string {
	if label == "" {
		return s.Border.Render(strings.Repeat(rule, width))
	}

	text := " " + style.Render(label) + " "
	fill := s.Border.Render(strings.Repeat(rule, width-lipgloss.Width(label)-3))
	lead := s.Border.Render(rule)
	if pos == lipgloss.Right {
		return fill + text + lead
	}
	return lead + text + fill
}

// JoinColumns places panels side by side, top-aligned, one column apart.
func JoinColumns(panels ...string) string {
	if len(panels) == 0 {
		return ""
	}
	blocks := make([]string, 0, 2*len(panels)-1)
	for i, p := range panels {
		if i > 0 {
			blocks = append(blocks, " ")
		}
		blocks = append(blocks, p)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
