package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/copilotmd/pkg/api"
)

// showEntryMsg carries a freshly loaded entry for the open modal.
type showEntryMsg struct {
	entry api.Entry
	err   error
	dur   time.Duration
}

// deleteResultMsg conveys the outcome of a delete operation back to Update.
type deleteResultMsg struct {
	idx int
	id  string
	err error
	dur time.Duration
}

func showCmd(ctx context.Context, src Source, id string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		e, err := src.Get(ctx, id)
		return showEntryMsg{entry: e, err: err, dur: time.Since(start)}
	}
}

func deleteCmd(ctx context.Context, src Source, id string, idx int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := src.Delete(ctx, id)
		return deleteResultMsg{idx: idx, id: id, err: err, dur: time.Since(start)}
	}
}
