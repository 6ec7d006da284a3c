package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

// WriteNDJSONDocument writes one block per line.
func WriteNDJSONDocument(w io.Writer, blocks []markdown.Block) error {
	enc := json.NewEncoder(w)
	for _, b := range blocks {
		if err := enc.Encode(b); err != nil {
			return err
		}
	}
	return nil
}

// WriteNDJSONEntries writes entries as newline-delimited JSON objects.
func WriteNDJSONEntries(w io.Writer, entries []api.Entry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
