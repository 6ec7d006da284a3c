package markdown

import (
	"fmt"
	"strings"
)

// RunKind tags an inline run as plain or bold text.
type RunKind int

const (
	RunPlain RunKind = iota
	RunBold
)

func (k RunKind) String() string {
	switch k {
	case RunPlain:
		return "plain"
	case RunBold:
		return "bold"
	default:
		return fmt.Sprintf("RunKind(%d)", int(k))
	}
}

func (k RunKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *RunKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "plain":
		*k = RunPlain
	case "bold":
		*k = RunBold
	default:
		return fmt.Errorf("unknown run kind %q", string(b))
	}
	return nil
}

// Run is a contiguous span of a line's text.
type Run struct {
	Kind RunKind `json:"kind"`
	Text string  `json:"text"`
}

// Plain returns a plain run.
func Plain(s string) Run { return Run{Kind: RunPlain, Text: s} }

// Bold returns a bold run.
func Bold(s string) Run { return Run{Kind: RunBold, Text: s} }

// Inline is the ordered run sequence of one line.
type Inline []Run

// Text concatenates the runs with markup stripped.
func (in Inline) Text() string {
	var b strings.Builder
	for _, r := range in {
		b.WriteString(r.Text)
	}
	return b.String()
}

// BlockKind tags a document block.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindList
	KindParagraph
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindParagraph:
		return "paragraph"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

func (k BlockKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *BlockKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "heading":
		*k = KindHeading
	case "list":
		*k = KindList
	case "paragraph":
		*k = KindParagraph
	default:
		return fmt.Errorf("unknown block kind %q", string(b))
	}
	return nil
}

// ListStyle records which marker style produced a list's items.
// Grouping never looks at it. Non-list blocks carry ListNone.
type ListStyle int

const (
	ListNone ListStyle = iota
	ListBullet
	ListNumbered
	ListMixed
)

func (s ListStyle) String() string {
	switch s {
	case ListNone:
		return ""
	case ListBullet:
		return "bullet"
	case ListNumbered:
		return "numbered"
	case ListMixed:
		return "mixed"
	default:
		return fmt.Sprintf("ListStyle(%d)", int(s))
	}
}

func (s ListStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *ListStyle) UnmarshalText(b []byte) error {
	switch string(b) {
	case "bullet":
		*s = ListBullet
	case "numbered":
		*s = ListNumbered
	case "mixed":
		*s = ListMixed
	case "":
		*s = ListNone
	default:
		return fmt.Errorf("unknown list style %q", string(b))
	}
	return nil
}

// merge combines the style seen so far with the style of the next item.
func (s ListStyle) merge(next ListStyle) ListStyle {
	if s == ListNone || s == next {
		return next
	}
	return ListMixed
}

// Block is one structural unit of a parsed document.
//
// Level and Text are set for headings, Text alone for paragraphs,
// Items and Style for lists.
type Block struct {
	Kind  BlockKind `json:"type"`
	Level int       `json:"level,omitempty"`
	Text  Inline    `json:"text,omitempty"`
	Items []Inline  `json:"items,omitempty"`
	Style ListStyle `json:"style,omitempty"`
}

// Heading builds a heading block.
func Heading(level int, text Inline) Block {
	return Block{Kind: KindHeading, Level: level, Text: text}
}

// Paragraph builds a paragraph block.
func Paragraph(text Inline) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// List builds a list block.
func List(style ListStyle, items ...Inline) Block {
	return Block{Kind: KindList, Items: items, Style: style}
}
