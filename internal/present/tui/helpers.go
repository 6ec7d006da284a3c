package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/mithrel/copilotmd/internal/util"
	"github.com/mithrel/copilotmd/pkg/api"
)

func entryRow(e api.Entry) table.Row {
	return table.Row{
		e.ID,
		e.CreatedAt.Local().Format("2006-01-02 15:04"),
		e.Model,
		e.Query,
	}
}

// columnsFor returns columns with or without titles based on headers flag.
func columnsFor(headers bool, idW, createdW, modelW, queryW int) []table.Column {
	titles := []string{"", "", "", ""}
	if headers {
		titles = []string{"ID", "Created", "Model", "Query"}
	}
	return []table.Column{
		{Title: titles[0], Width: idW},
		{Title: titles[1], Width: createdW},
		{Title: titles[2], Width: modelW},
		{Title: titles[3], Width: queryW},
	}
}

func removeID(entries []api.Entry, id string) []api.Entry {
	out := make([]api.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// applyFilters narrows entries to the time window, then ranks the rest by
// fuzzy match against query.
func applyFilters(entries []api.Entry, query, since, until string, now time.Time) ([]api.Entry, error) {
	s, u, err := util.ParseTimeRange(since, until, now)
	if err != nil {
		return nil, err
	}
	q := api.ListQuery{Since: s, Until: u}
	window := make([]api.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Match(e) {
			window = append(window, e)
		}
	}
	return util.RankEntries(query, window, 0), nil
}
