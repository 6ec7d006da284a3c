package present

import (
	"context"
	"errors"
	"io"

	"github.com/mithrel/copilotmd/internal/present/format"
	"github.com/mithrel/copilotmd/internal/present/tui"
	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeANSI
	ModeHTML
	ModeJSON
	ModeNDJSON
	ModeDump
	ModeTUI
)

var modeNames = map[string]Mode{
	"plain":  ModePlain,
	"pretty": ModePretty,
	"ansi":   ModeANSI,
	"html":   ModeHTML,
	"json":   ModeJSON,
	"ndjson": ModeNDJSON,
	"dump":   ModeDump,
	"tui":    ModeTUI,
}

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Width      int
	Style      string // glamour style for ModePretty
	Color      bool   // colour ModeDump output
	// Source backs deletes and reloads in ModeTUI.
	Source tui.Source
	Status string
}

// ParseMode parses a string like "plain", "pretty", "ansi", "html", "json",
// "ndjson", "dump" or "tui".
func ParseMode(s string) (Mode, bool) {
	m, ok := modeNames[s]
	if !ok {
		return ModePlain, false
	}
	return m, true
}

var ErrUnsupportedMode = errors.New("output mode not supported here")

func (o Options) pretty() format.PrettyOptions {
	return format.PrettyOptions{Style: o.Style, Width: o.Width}
}

// RenderDocument renders parsed answer text.
func RenderDocument(w io.Writer, blocks []markdown.Block, opts Options) error {
	switch opts.Mode {
	case ModePlain:
		return format.WritePlainDocument(w, blocks)
	case ModePretty:
		return format.WritePrettyDocument(w, blocks, opts.pretty())
	case ModeANSI:
		return format.WriteANSIDocument(w, blocks, opts.Width)
	case ModeHTML:
		return format.WriteHTMLDocument(w, blocks)
	case ModeJSON:
		return format.WriteJSONDocument(w, blocks, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONDocument(w, blocks)
	case ModeDump:
		return format.WriteDumpDocument(w, blocks, opts.Color)
	default:
		return ErrUnsupportedMode
	}
}

// RenderEntries renders a list of entries according to options.
func RenderEntries(ctx context.Context, w io.Writer, entries []api.Entry, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONEntries(w, entries, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONEntries(w, entries)
	case ModeTUI:
		if opts.Source == nil {
			return errors.New("tui output needs a history source")
		}
		return tui.RenderTable(ctx, opts.Source, entries, tui.Options{
			Headers: opts.Headers,
			Status:  opts.Status,
			Out:     w,
			Style:   opts.Style,
			Width:   opts.Width,
		})
	default:
		// Document modes have no table shape of their own.
		return format.WritePlainEntries(w, entries, opts.Headers)
	}
}

// RenderEntry renders a single entry according to options.
func RenderEntry(w io.Writer, e api.Entry, opts Options) error {
	switch opts.Mode {
	case ModeJSON, ModeNDJSON:
		return format.WriteJSONEntry(w, e, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModePretty, ModeANSI:
		return format.WritePrettyEntry(w, e, opts.pretty())
	case ModeHTML:
		return format.WriteHTMLDocument(w, markdown.Parse(e.Response))
	case ModeDump:
		return format.WriteDumpDocument(w, markdown.Parse(e.Response), opts.Color)
	case ModeTUI:
		return ErrUnsupportedMode
	default:
		return format.WritePlainEntry(w, e)
	}
}
