package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

// PrettyOptions configures the glamour renderer.
type PrettyOptions struct {
	Style string // glamour standard style, or "auto"
	Width int
}

func newTermRenderer(opts PrettyOptions) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStandardStyle(opts.Style)
	if opts.Style == "" || opts.Style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r, nil
}

func renderPretty(w io.Writer, md string, opts PrettyOptions) error {
	r, err := newTermRenderer(opts)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// WritePrettyDocument re-serialises blocks in the markdown subset and
// renders them with glamour.
func WritePrettyDocument(w io.Writer, blocks []markdown.Block, opts PrettyOptions) error {
	return renderPretty(w, markdown.Format(blocks), opts)
}

// WritePrettyEntry renders a stored answer with its query and sources.
func WritePrettyEntry(w io.Writer, e api.Entry, opts PrettyOptions) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Query)
	fmt.Fprintf(&b, "> **ID:** %s | **Created:** %s | **Model:** %s\n\n---\n\n",
		e.ID, e.CreatedAt.Local().Format(time.RFC3339), e.Model)
	b.WriteString(markdown.Format(markdown.Parse(e.Response)))
	if len(e.Citations) > 0 {
		b.WriteString("\n## Sources\n\n")
		for i, c := range e.Citations {
			fmt.Fprintf(&b, "- %s: %s\n", api.CitationLabel(i+1, c), c)
		}
	}
	return renderPretty(w, b.String(), opts)
}
