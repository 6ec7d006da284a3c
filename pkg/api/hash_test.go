package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntry_Hash(t *testing.T) {
	now := time.Now().UTC()

	baseEntry := Entry{
		ID:        "test-id",
		Query:     "45-year-old male with chest pain",
		Response:  "### Summary\nPossible **ACS**.",
		Citations: []string{"https://www.nih.gov/a", "https://example.org/b"},
		Model:     "sonar-pro",
		CreatedAt: now,
	}

	t.Run("identical entries produce identical hashes", func(t *testing.T) {
		e1 := baseEntry
		e2 := baseEntry
		assert.Equal(t, e1.Hash(), e2.Hash())
	})

	t.Run("citation order is deterministic", func(t *testing.T) {
		e1 := baseEntry
		e1.Citations = []string{"https://example.org/b", "https://www.nih.gov/a"}

		assert.Equal(t, baseEntry.Hash(), e1.Hash(), "Hashes should match despite different citation order")
	})

	t.Run("id and time are ignored", func(t *testing.T) {
		e1 := baseEntry
		e1.ID = "other"
		e1.CreatedAt = now.Add(time.Hour)

		assert.Equal(t, baseEntry.Hash(), e1.Hash())
	})

	t.Run("different content produces different hashes", func(t *testing.T) {
		e1 := baseEntry
		e1.Query = "Different query"

		e2 := baseEntry
		e2.Response = "Different response"

		e3 := baseEntry
		e3.Model = "sonar"

		assert.NotEqual(t, baseEntry.Hash(), e1.Hash())
		assert.NotEqual(t, baseEntry.Hash(), e2.Hash())
		assert.NotEqual(t, baseEntry.Hash(), e3.Hash())
	})

	t.Run("field boundaries matter", func(t *testing.T) {
		e1 := Entry{Query: "ab", Response: "c"}
		e2 := Entry{Query: "a", Response: "bc"}
		assert.NotEqual(t, e1.Hash(), e2.Hash())
	})

	t.Run("empty citations vs nil citations", func(t *testing.T) {
		e1 := baseEntry
		e1.Citations = []string{}

		e2 := baseEntry
		e2.Citations = nil

		assert.Equal(t, e1.Hash(), e2.Hash(), "Empty slice and nil slice should result in same hash")
	})
}

func TestCitationLabel(t *testing.T) {
	assert.Equal(t, "[1] nih.gov", CitationLabel(1, "https://www.nih.gov/health/x"))
	assert.Equal(t, "[2] pubmed.ncbi.nlm.nih.gov", CitationLabel(2, "https://pubmed.ncbi.nlm.nih.gov/123/"))
	assert.Equal(t, "[3] not a url", CitationLabel(3, "not a url"))
}

func TestNewIDSortsByTime(t *testing.T) {
	a := NewID()
	time.Sleep(2 * time.Millisecond)
	b := NewID()
	assert.Less(t, a, b)
	assert.Len(t, a, 36)
}

func TestListQueryMatch(t *testing.T) {
	now := time.Now()
	q := ListQuery{Since: now.Add(-time.Hour), Until: now}
	assert.True(t, q.Match(Entry{CreatedAt: now.Add(-time.Minute)}))
	assert.False(t, q.Match(Entry{CreatedAt: now.Add(-2 * time.Hour)}))
	assert.False(t, q.Match(Entry{CreatedAt: now.Add(time.Minute)}))
	assert.True(t, ListQuery{}.Match(Entry{}))
}
