package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/copilotmd/internal/present/format"
	"github.com/mithrel/copilotmd/pkg/api"
)

// Source is the part of the history store the browser needs.
type Source interface {
	Get(ctx context.Context, id string) (api.Entry, error)
	Delete(ctx context.Context, id string) error
}

// Options tune the browser.
type Options struct {
	Headers bool
	Status  string
	// Out receives the pretty rendering of the entry selected with
	// ctrl+o, after the alt screen closes. Nil disables it.
	Out   io.Writer
	Style string
	Width int
}

// RenderTable opens an interactive Bubble Tea table to browse answers.
func RenderTable(ctx context.Context, src Source, entries []api.Entry, opts Options) error {
	m := newModel(ctx, src, entries, opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(model)
	if !ok || fm.printIdx < 0 || opts.Out == nil {
		return nil
	}
	sel := fm.visible[fm.printIdx]
	return format.WritePrettyEntry(opts.Out, sel, format.PrettyOptions{Style: opts.Style, Width: opts.Width})
}

type model struct {
	ctx     context.Context
	src     Source
	table   table.Model
	all     []api.Entry
	visible []api.Entry
	headers bool

	entry  *entryModal
	search *searchModal
	query  string
	since  string
	until  string

	printIdx     int
	width        int
	height       int
	status       string
	lastDuration time.Duration
}

func newModel(ctx context.Context, src Source, entries []api.Entry, opts Options) model {
	m := model{
		ctx:      ctx,
		src:      src,
		all:      entries,
		visible:  entries,
		headers:  opts.Headers,
		status:   opts.Status,
		printIdx: -1,
	}
	m.table = table.New(table.WithColumns(columnsFor(m.headers, 12, 19, 14, 40)), table.WithFocused(true))
	m.updateRows()
	m.applyStyles()
	return m
}

func (m *model) updateRows() {
	rows := make([]table.Row, 0, len(m.visible))
	for _, e := range m.visible {
		rows = append(rows, entryRow(e))
	}
	m.table.SetRows(rows)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		if m.entry != nil {
			m.entry.resizeForTerm(msg.Width, msg.Height)
		}
		if m.search != nil {
			m.search.resizeForTerm(msg.Width, msg.Height)
		}
		return m, nil
	case showEntryMsg:
		m.lastDuration = msg.dur
		if msg.err != nil {
			m.status = fmt.Sprintf("Load failed: %v", msg.err)
			return m, nil
		}
		if m.entry != nil && m.entry.e.ID == msg.entry.ID {
			m.entry.setEntry(msg.entry)
		}
		return m, nil
	case deleteResultMsg:
		m.lastDuration = msg.dur
		if msg.err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.all = removeID(m.all, msg.id)
		m.visible = removeID(m.visible, msg.id)
		m.updateRows()
		cur := msg.idx
		if cur >= len(m.visible) {
			cur = len(m.visible) - 1
		}
		m.table.SetCursor(max(cur, 0))
		m.status = fmt.Sprintf("Deleted %s", msg.id)
		return m, nil
	case tea.KeyMsg:
		if m.entry != nil {
			return m.updateEntryModal(msg)
		}
		if m.search != nil {
			return m.updateSearchModal(msg)
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c", "ctrl+q":
			return m, tea.Quit
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.visible) {
				sel := m.visible[idx]
				m.entry = newEntryModal(sel, m.width, m.height)
				return m, showCmd(m.ctx, m.src, sel.ID)
			}
			return m, nil
		case "ctrl+o":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.visible) {
				m.printIdx = idx
				return m, tea.Quit
			}
			return m, nil
		case "/", "f":
			m.search = newSearchModal(m.query, m.since, m.until, m.width, m.height)
			return m, nil
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.visible) {
				sel := m.visible[idx]
				m.status = fmt.Sprintf("Deleting %s…", sel.ID)
				return m, deleteCmd(m.ctx, m.src, sel.ID, idx)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateEntryModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+q":
		m.entry = nil
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.entry, cmd = m.entry.update(msg)
	return m, cmd
}

func (m model) updateSearchModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+q":
		m.search = nil
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+x":
		m.search.clear()
		return m, nil
	case "enter":
		q, since, until := m.search.values()
		visible, err := applyFilters(m.all, q, since, until, time.Now())
		if err != nil {
			m.search.err = err.Error()
			return m, nil
		}
		m.query, m.since, m.until = q, since, until
		m.visible = visible
		m.search = nil
		m.updateRows()
		m.table.SetCursor(0)
		m.status = fmt.Sprintf("%d matches", len(visible))
		if q == "" && since == "" && until == "" {
			m.status = ""
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.update(msg)
	return m, cmd
}

func (m model) renderFooter() string {
	left := "↑/↓ navigate • enter=show • /=search • d=delete • ctrl+o=print • q=exit"

	var right string
	if m.status != "" {
		if m.lastDuration > 0 {
			right = fmt.Sprintf("%s (%s) • ", m.status, m.lastDuration.Round(time.Microsecond))
		} else {
			right = m.status + " • "
		}
	}
	right += fmt.Sprintf("%d/%d answers ", len(m.visible), len(m.all))

	width := m.table.Width()
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return left + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	if len(m.all) == 0 {
		return "(no answers) \n"
	}
	base := m.table.View() + "\n" + m.renderFooter() + "\n"
	switch {
	case m.entry != nil:
		return renderOverlay(base, m.entry.View(), m.width, m.height, m.entry.width, m.entry.height)
	case m.search != nil:
		return renderOverlay(base, m.search.View(), m.width, m.height, m.search.width, m.search.height)
	}
	return base
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetHeight(max(6, m.height-1))
	m.table.SetWidth(m.width)
	avail := m.width - 8 // cell padding
	if avail < 40 {
		return
	}
	idW := 36
	if avail < idW+80 {
		idW = 8
	}
	createdW := 16
	modelW := 14
	queryW := max(12, avail-idW-createdW-modelW)
	m.table.SetColumns(columnsFor(m.headers, idW, createdW, modelW, queryW))
	m.updateRows()
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	if m.headers {
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
	} else {
		s.Header = s.Header.
			BorderBottom(false).
			Bold(false)
	}
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}
