package markdown

import (
	"io"
	"regexp"
	"strings"
)

// numberedPrefix matches the marker of a numbered list item.
var numberedPrefix = regexp.MustCompile(`^\d+\.\s`)

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeading
	lineItem
	lineParagraph
)

// line is one classified input line.
type line struct {
	kind  lineKind
	level int
	style ListStyle
	text  string
}

// classifier reports whether it recognises a line. trimmed is raw without
// surrounding whitespace.
type classifier func(raw, trimmed string) (line, bool)

// classifiers are tried in order; the first match wins.
var classifiers = []classifier{
	headingMarker("### ", 3),
	headingMarker("## ", 2),
	headingMarker("# ", 1),
	bulletMarker,
	numberedMarker,
	paragraphLine,
}

func headingMarker(marker string, level int) classifier {
	return func(_, trimmed string) (line, bool) {
		if !strings.HasPrefix(trimmed, marker) {
			return line{}, false
		}
		text := strings.TrimSpace(trimmed[len(marker):])
		return line{kind: lineHeading, level: level, text: text}, true
	}
}

func bulletMarker(_, trimmed string) (line, bool) {
	if !strings.HasPrefix(trimmed, "- ") && !strings.HasPrefix(trimmed, "* ") {
		return line{}, false
	}
	return line{kind: lineItem, style: ListBullet, text: trimmed[2:]}, true
}

func numberedMarker(_, trimmed string) (line, bool) {
	loc := numberedPrefix.FindStringIndex(trimmed)
	if loc == nil {
		return line{}, false
	}
	return line{kind: lineItem, style: ListNumbered, text: trimmed[loc[1]:]}, true
}

func paragraphLine(raw, trimmed string) (line, bool) {
	if trimmed == "" {
		return line{}, false
	}
	return line{kind: lineParagraph, text: raw}, true
}

func classify(raw string) line {
	trimmed := strings.TrimSpace(raw)
	for _, c := range classifiers {
		if l, ok := c(raw, trimmed); ok {
			return l
		}
	}
	return line{kind: lineBlank}
}

// listRun accumulates the items of an open list.
type listRun struct {
	items []Inline
	style ListStyle
}

// parseState is the fold accumulator: the blocks emitted so far and the
// list run still open, or nil.
type parseState struct {
	blocks []Block
	open   *listRun
}

func (s parseState) flush() parseState {
	if s.open == nil {
		return s
	}
	return parseState{blocks: append(s.blocks, List(s.open.style, s.open.items...))}
}

func (s parseState) step(l line) parseState {
	switch l.kind {
	case lineItem:
		run := listRun{}
		if s.open != nil {
			run = *s.open
		}
		run.items = append(run.items, SplitInline(l.text))
		run.style = run.style.merge(l.style)
		return parseState{blocks: s.blocks, open: &run}
	case lineHeading:
		s = s.flush()
		s.blocks = append(s.blocks, Heading(l.level, SplitInline(l.text)))
		return s
	case lineParagraph:
		s = s.flush()
		s.blocks = append(s.blocks, Paragraph(SplitInline(l.text)))
		return s
	default:
		// Blank lines leave an open list run alone.
		return s
	}
}

// SplitLines splits text on "\n" or "\r\n" separators.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Parse converts text in the markdown subset into its block sequence.
// It accepts any input; lines it does not recognise become paragraphs.
func Parse(text string) []Block {
	s := parseState{blocks: []Block{}}
	for _, raw := range SplitLines(text) {
		s = s.step(classify(raw))
	}
	return s.flush().blocks
}

// ParseReader reads r to EOF and parses the result.
func ParseReader(r io.Reader) ([]Block, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(b)), nil
}
