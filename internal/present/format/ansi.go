package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/copilotmd/pkg/markdown"
)

// Theme holds the lipgloss styles of the terminal renderer.
type Theme struct {
	Headings [3]lipgloss.Style
	Bold     lipgloss.Style
	Marker   lipgloss.Style
}

// DefaultTheme mirrors the colours of the answer cards.
func DefaultTheme() Theme {
	return Theme{
		Headings: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("212")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		},
		Bold:   lipgloss.NewStyle().Bold(true),
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// WriteANSIDocument renders blocks for a terminal, wrapping paragraphs and
// list items at width columns.
func WriteANSIDocument(w io.Writer, blocks []markdown.Block, width int) error {
	_, err := io.WriteString(w, RenderANSI(blocks, width, DefaultTheme()))
	return err
}

// RenderANSI is WriteANSIDocument returning a string, for embedding in views.
func RenderANSI(blocks []markdown.Block, width int, th Theme) string {
	if width <= 0 {
		width = 80
	}
	var parts []string
	for _, blk := range blocks {
		switch blk.Kind {
		case markdown.KindHeading:
			st := th.Headings[clampLevel(blk.Level)-1]
			parts = append(parts, st.Render(blk.Text.Text()))
		case markdown.KindList:
			items := make([]string, 0, len(blk.Items))
			for n, item := range blk.Items {
				marker := listMarker(blk.Style, n)
				body := wrap(styleInline(item, th), width-lipgloss.Width(marker))
				items = append(items, lipgloss.JoinHorizontal(lipgloss.Top, th.Marker.Render(marker), body))
			}
			parts = append(parts, strings.Join(items, "\n"))
		case markdown.KindParagraph:
			parts = append(parts, wrap(styleInline(blk.Text, th), width))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return trimRight(strings.Join(parts, "\n\n")) + "\n"
}

func styleInline(in markdown.Inline, th Theme) string {
	var b strings.Builder
	for _, r := range in {
		if r.Kind == markdown.RunBold && r.Text != "" {
			b.WriteString(th.Bold.Render(r.Text))
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

func wrap(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// trimRight drops the padding lipgloss adds to fill each line to its width.
func trimRight(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 3 {
		return 3
	}
	return level
}
