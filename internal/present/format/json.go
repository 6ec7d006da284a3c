package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

// Document is the JSON shape of a rendered answer.
type Document struct {
	Blocks []markdown.Block `json:"blocks"`
}

func newEncoder(w io.Writer, indent bool) *json.Encoder {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc
}

func WriteJSONDocument(w io.Writer, blocks []markdown.Block, indent bool) error {
	if blocks == nil {
		blocks = []markdown.Block{}
	}
	return newEncoder(w, indent).Encode(Document{Blocks: blocks})
}

func WriteJSONSections(w io.Writer, secs markdown.Sections, indent bool) error {
	if secs == nil {
		secs = markdown.Sections{}
	}
	return newEncoder(w, indent).Encode(secs)
}

func WriteJSONEntries(w io.Writer, entries []api.Entry, indent bool) error {
	if entries == nil {
		entries = []api.Entry{}
	}
	return newEncoder(w, indent).Encode(entries)
}

func WriteJSONEntry(w io.Writer, e api.Entry, indent bool) error {
	return newEncoder(w, indent).Encode(e)
}
