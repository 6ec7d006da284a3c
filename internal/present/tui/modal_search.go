package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// searchModal collects a fuzzy query and a time window for the table.
type searchModal struct {
	query  textinput.Model
	since  textinput.Model
	until  textinput.Model
	width  int
	height int
	padX   int
	padY   int
	box    lipglossv2.Style
	focus  int
	err    string
}

func newSearchModal(query, since, until string, termW, termH int) *searchModal {
	m := &searchModal{padX: 2, padY: 1}
	m.query = newInput("query: ", "chest pain", query)
	m.since = newInput("since: ", "2h | 2025-10-26T14:30", since)
	m.until = newInput("until: ", "3d | 2025-10-26", until)
	m.setFocus(0)
	m.resizeForTerm(termW, termH)
	return m
}

func newInput(prompt, placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.SetValue(value)
	return ti
}

func (m *searchModal) inputs() []*textinput.Model {
	return []*textinput.Model{&m.query, &m.since, &m.until}
}

func (m *searchModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.6)
	if termW < 80 {
		w = termW - 4
	}
	w = min(max(w, 42), 90)
	h := 12
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := max(12, w-2-m.padX*2)
	for _, in := range m.inputs() {
		in.Width = max(12, innerW-lipgloss.Width(in.Prompt))
	}
}

func (m *searchModal) setFocus(idx int) {
	m.focus = idx
	for i, in := range m.inputs() {
		if i == idx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (m *searchModal) clear() {
	for _, in := range m.inputs() {
		in.SetValue("")
	}
	m.err = ""
}

func (m *searchModal) values() (string, string, string) {
	return strings.TrimSpace(m.query.Value()), strings.TrimSpace(m.since.Value()), strings.TrimSpace(m.until.Value())
}

func (m *searchModal) update(msg tea.Msg) (*searchModal, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		n := len(m.inputs())
		switch k.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % n)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + n - 1) % n)
			return m, nil
		}
	}
	in := m.inputs()[m.focus]
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m *searchModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Search")
	help := lipgloss.NewStyle().Faint(true).Render("enter=apply • esc=cancel • tab=next • ctrl+x=clear")
	lines := []string{header, "", m.query.View(), m.since.View(), m.until.View(), ""}
	if m.err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.err))
	}
	lines = append(lines, help)
	return m.box.Render(strings.Join(lines, "\n"))
}
