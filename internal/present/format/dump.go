package format

import (
	"io"

	"github.com/k0kubun/pp"

	"github.com/mithrel/copilotmd/pkg/markdown"
)

// WriteDumpDocument pretty-prints the Go values of blocks, for debugging
// how a response was classified.
func WriteDumpDocument(w io.Writer, blocks []markdown.Block, color bool) error {
	prev := pp.ColoringEnabled
	pp.ColoringEnabled = color
	defer func() { pp.ColoringEnabled = prev }()
	_, err := pp.Fprintln(w, blocks)
	return err
}
