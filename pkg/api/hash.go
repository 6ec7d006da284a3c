package api

import (
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the answer content.
// It covers Query, Response, Citations (sorted) and Model; ID and
// CreatedAt are left out so re-saving the same answer yields the same hash.
func (e Entry) Hash() string {
	h := blake3.New()

	h.Write([]byte(e.Query))
	h.Write([]byte{0})

	h.Write([]byte(e.Response))
	h.Write([]byte{0})

	sorted := append([]string(nil), e.Citations...)
	sort.Strings(sorted)
	for _, c := range sorted {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	h.Write([]byte{0}) // end of citations

	h.Write([]byte(e.Model))

	return hex.EncodeToString(h.Sum(nil))
}
