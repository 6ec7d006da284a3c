package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mithrel/copilotmd/internal/util"
	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

// queryWidth is how much of a query the history table shows.
const queryWidth = 40

var headerLine = "id\tcreated\tmodel\tquery\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// listMarker returns the prefix of the n-th (0-based) item.
func listMarker(style markdown.ListStyle, n int) string {
	if style == markdown.ListNumbered {
		return strconv.Itoa(n+1) + ". "
	}
	return "• "
}

// WritePlainDocument writes blocks as undecorated text. Level 1 and 2
// headings are underlined; bold markup is dropped.
func WritePlainDocument(w io.Writer, blocks []markdown.Block) error {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch blk.Kind {
		case markdown.KindHeading:
			text := blk.Text.Text()
			b.WriteString(text + "\n")
			switch blk.Level {
			case 1:
				b.WriteString(strings.Repeat("=", len([]rune(text))) + "\n")
			case 2:
				b.WriteString(strings.Repeat("-", len([]rune(text))) + "\n")
			}
		case markdown.KindList:
			for n, item := range blk.Items {
				b.WriteString(listMarker(blk.Style, n) + item.Text() + "\n")
			}
		case markdown.KindParagraph:
			b.WriteString(blk.Text.Text() + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WritePlainEntries writes history as an aligned table, newest first.
func WritePlainEntries(w io.Writer, entries []api.Entry, headers bool) error {
	return writePlainRows(w, entries, headers, time.Now())
}

func writePlainRows(w io.Writer, entries []api.Entry, headers bool, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
			esc(e.ID), humanize.RelTime(e.CreatedAt, now, "ago", "from now"), esc(e.Model), esc(util.Truncate(e.Query, queryWidth)))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainEntry writes one answer: a header block, the rendered response
// and its numbered citations.
func WritePlainEntry(w io.Writer, e api.Entry) error {
	_, err := fmt.Fprintf(w, "ID: %s\nCreated: %s\nModel: %s\nQuery: %s\n---\n",
		e.ID, e.CreatedAt.Local().Format(time.RFC3339), e.Model, e.Query)
	if err != nil {
		return err
	}
	if err := WritePlainDocument(w, markdown.Parse(e.Response)); err != nil {
		return err
	}
	return writeCitations(w, e.Citations)
}

func writeCitations(w io.Writer, citations []string) error {
	if len(citations) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\nSources\n"); err != nil {
		return err
	}
	for i, c := range citations {
		if _, err := fmt.Fprintf(w, "%s  %s\n", api.CitationLabel(i+1, c), c); err != nil {
			return err
		}
	}
	return nil
}
