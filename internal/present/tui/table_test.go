package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/copilotmd/pkg/api"
)

type fakeSource struct {
	entries map[string]api.Entry
	deleted []string
	failDel bool
}

func (f *fakeSource) Get(_ context.Context, id string) (api.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return api.Entry{}, errors.New("not found")
	}
	return e, nil
}

func (f *fakeSource) Delete(_ context.Context, id string) error {
	if f.failDel {
		return errors.New("locked")
	}
	f.deleted = append(f.deleted, id)
	delete(f.entries, id)
	return nil
}

func makeEntries(now time.Time) []api.Entry {
	return []api.Entry{
		{ID: "a", Query: "chest pain in a 45 year old", Response: "### Summary\nok", CreatedAt: now.Add(-time.Hour)},
		{ID: "b", Query: "type 2 diabetes symptoms", Response: "- thirst", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "c", Query: "pediatric fever", Response: "**fever**", CreatedAt: now.Add(-10 * 24 * time.Hour)},
	}
}

func newTestModel(t *testing.T) (model, *fakeSource) {
	t.Helper()
	entries := makeEntries(time.Now())
	src := &fakeSource{entries: map[string]api.Entry{}}
	for _, e := range entries {
		src.entries[e.ID] = e
	}
	m := newModel(context.Background(), src, entries, Options{Headers: true})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(model), src
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDeleteRemovesRow(t *testing.T) {
	m, src := newTestModel(t)

	next, cmd := m.Update(key("d"))
	require.NotNil(t, cmd)
	m = next.(model)
	assert.Contains(t, m.status, "Deleting a")

	next, _ = m.Update(cmd())
	m = next.(model)
	assert.Equal(t, []string{"a"}, src.deleted)
	assert.Len(t, m.visible, 2)
	assert.Len(t, m.all, 2)
	assert.Equal(t, "Deleted a", m.status)
	assert.Equal(t, 0, m.table.Cursor())
}

func TestDeleteFailureKeepsRow(t *testing.T) {
	m, src := newTestModel(t)
	src.failDel = true

	_, cmd := m.Update(key("d"))
	next, _ := m.Update(cmd())
	m = next.(model)
	assert.Len(t, m.visible, 3)
	assert.Contains(t, m.status, "Delete failed")
}

func TestEnterOpensEntryModal(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(key("enter"))
	m = next.(model)
	require.NotNil(t, m.entry)
	require.NotNil(t, cmd)
	assert.Equal(t, "a", m.entry.e.ID)

	next, _ = m.Update(cmd())
	m = next.(model)
	assert.Contains(t, m.entry.render(), "Summary")

	next, _ = m.Update(key("tab"))
	m = next.(model)
	assert.True(t, m.entry.report)
	assert.Contains(t, m.entry.render(), "Key Clinical Details")

	next, _ = m.Update(key("esc"))
	m = next.(model)
	assert.Nil(t, m.entry)
}

func TestSearchNarrowsRows(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(key("/"))
	m = next.(model)
	require.NotNil(t, m.search)
	m.search.query.SetValue("diab")

	next, _ = m.Update(key("enter"))
	m = next.(model)
	assert.Nil(t, m.search)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "b", m.visible[0].ID)
	assert.Equal(t, "1 matches", m.status)
}

func TestSearchBadTimeKeepsModal(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(key("/"))
	m = next.(model)
	m.search.since.SetValue("yesterday-ish")

	next, _ = m.Update(key("enter"))
	m = next.(model)
	require.NotNil(t, m.search)
	assert.Contains(t, m.search.err, "invalid --since")
	assert.Len(t, m.visible, 3)
}

func TestApplyFilters(t *testing.T) {
	now := time.Now()
	entries := makeEntries(now)

	got, err := applyFilters(entries, "", "3d", "", now)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = applyFilters(entries, "fever", "", "", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}
