package util

import (
	"github.com/sahilm/fuzzy"

	"github.com/mithrel/copilotmd/pkg/api"
)

// entryQueries adapts entries to fuzzy.Source over their query text.
type entryQueries []api.Entry

func (e entryQueries) String(i int) string { return e[i].Query }
func (e entryQueries) Len() int            { return len(e) }

// RankEntries returns the top n entries whose query fuzzily matches input,
// best match first. An empty input returns entries unchanged; n <= 0 means
// no limit.
func RankEntries(input string, entries []api.Entry, n int) []api.Entry {
	if input == "" {
		return entries
	}
	matches := fuzzy.FindFrom(input, entryQueries(entries))
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]api.Entry, limit)
	for i := 0; i < limit; i++ {
		out[i] = entries[matches[i].Index]
	}
	return out
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
