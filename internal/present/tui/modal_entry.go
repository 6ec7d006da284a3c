package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"

	"github.com/mithrel/copilotmd/internal/present/format"
	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

// entryModal shows one stored answer in a scrollable viewport, either as the
// rendered document or as the section report.
type entryModal struct {
	e      api.Entry
	vp     viewport.Model
	width  int
	height int
	padX   int
	padY   int
	box    lipglossv2.Style
	report bool
}

func newEntryModal(e api.Entry, termW, termH int) *entryModal {
	m := &entryModal{e: e, padX: 2, padY: 1}
	m.resizeForTerm(termW, termH)
	m.setEntry(e)
	return m
}

func (m *entryModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.7)
	if termW < 80 {
		w = termW - 4
	}
	if w < 40 {
		w = max(32, termW-2)
	}
	h := int(float64(termH) * 0.8)
	if termH < 20 {
		h = termH - 2
	}
	if h < 10 {
		h = max(8, termH-1)
	}
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := max(10, w-2-m.padX*2)
	innerH := max(5, h-2-m.padY*2)
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	m.refresh()
}

func (m *entryModal) setEntry(e api.Entry) {
	m.e = e
	m.refresh()
}

func (m *entryModal) refresh() {
	m.vp.SetContent(m.render())
}

func (m *entryModal) render() string {
	width := m.vp.Width
	var b strings.Builder
	b.WriteString(lipglossv2.NewStyle().Bold(true).Render(m.e.Query))
	b.WriteString("\n")
	meta := m.e.CreatedAt.Local().Format("2006-01-02 15:04")
	if m.e.Model != "" {
		meta += " • " + m.e.Model
	}
	b.WriteString(lipglossv2.NewStyle().Faint(true).Render(meta))
	b.WriteString("\n\n")

	if m.report {
		var buf bytes.Buffer
		_ = format.WriteReport(&buf, markdown.SplitSections(m.e.Response), width)
		b.WriteString(buf.String())
	} else {
		b.WriteString(format.RenderANSI(markdown.Parse(m.e.Response), width, format.DefaultTheme()))
	}

	if len(m.e.Citations) > 0 {
		b.WriteString("\nSources\n")
		for i, c := range m.e.Citations {
			fmt.Fprintf(&b, "%s  %s\n", api.CitationLabel(i+1, c), c)
		}
	}
	return b.String()
}

func (m *entryModal) update(msg tea.Msg) (*entryModal, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "tab" {
		m.report = !m.report
		m.refresh()
		m.vp.GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *entryModal) View() string {
	help := lipglossv2.NewStyle().Faint(true).Render("tab=report/document • esc=close")
	return m.box.Render(m.vp.View() + "\n" + help)
}
