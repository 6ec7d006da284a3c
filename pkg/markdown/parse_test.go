package markdown

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(s string) Inline { return Inline{Plain(s)} }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Block{},
		},
		{
			name:  "only blank lines",
			input: "\n  \n\t\n",
			want:  []Block{},
		},
		{
			name:  "heading then paragraph",
			input: "### Title\ncontent",
			want: []Block{
				Heading(3, plain("Title")),
				Paragraph(plain("content")),
			},
		},
		{
			name:  "heading levels",
			input: "# One\n## Two\n### Three",
			want: []Block{
				Heading(1, plain("One")),
				Heading(2, plain("Two")),
				Heading(3, plain("Three")),
			},
		},
		{
			name:  "four hashes fall through to paragraph",
			input: "#### Four",
			want:  []Block{Paragraph(plain("#### Four"))},
		},
		{
			name:  "hash without space is a paragraph",
			input: "#heading",
			want:  []Block{Paragraph(plain("#heading"))},
		},
		{
			name:  "list closed by paragraph after blank line",
			input: "- one\n- two\n\nnext",
			want: []Block{
				List(ListBullet, plain("one"), plain("two")),
				Paragraph(plain("next")),
			},
		},
		{
			name:  "blank line does not split a list run",
			input: "- one\n\n* two\n\n\n- three",
			want: []Block{
				List(ListBullet, plain("one"), plain("two"), plain("three")),
			},
		},
		{
			name:  "numbered list",
			input: "1. first\n2. second\n10. tenth",
			want: []Block{
				List(ListNumbered, plain("first"), plain("second"), plain("tenth")),
			},
		},
		{
			name:  "mixed markers group into one list",
			input: "- bullet\n1. numbered",
			want: []Block{
				List(ListMixed, plain("bullet"), plain("numbered")),
			},
		},
		{
			name:  "numbered prefix keeps extra spaces",
			input: "1.   spaced",
			want: []Block{
				List(ListNumbered, plain("  spaced")),
			},
		},
		{
			name:  "numbered prefix needs whitespace",
			input: "1.no",
			want:  []Block{Paragraph(plain("1.no"))},
		},
		{
			name:  "tab after numbered marker",
			input: "3.\tthird",
			want:  []Block{List(ListNumbered, plain("third"))},
		},
		{
			name:  "heading closes list",
			input: "- a\n## Next\n- b",
			want: []Block{
				List(ListBullet, plain("a")),
				Heading(2, plain("Next")),
				List(ListBullet, plain("b")),
			},
		},
		{
			name:  "list flushed at end of input",
			input: "intro\n- a\n- b",
			want: []Block{
				Paragraph(plain("intro")),
				List(ListBullet, plain("a"), plain("b")),
			},
		},
		{
			name:  "indented marker is recognised",
			input: "   - item\n  ### Title  ",
			want: []Block{
				List(ListBullet, plain("item")),
				Heading(3, plain("Title")),
			},
		},
		{
			name:  "paragraph text is kept verbatim",
			input: "  leading and trailing  ",
			want:  []Block{Paragraph(plain("  leading and trailing  "))},
		},
		{
			name:  "crlf separators",
			input: "### A\r\n- x\r\n\r\ntext\r\n",
			want: []Block{
				Heading(3, plain("A")),
				List(ListBullet, plain("x")),
				Paragraph(plain("text")),
			},
		},
		{
			name:  "bare dash is a paragraph",
			input: "-\n- ",
			want: []Block{
				Paragraph(plain("-")),
				Paragraph(plain("- ")),
			},
		},
		{
			name:  "inline bold inside blocks",
			input: "### **Safety**\n- **Severity**: major\nSee **below**.",
			want: []Block{
				Heading(3, Inline{Plain(""), Bold("Safety"), Plain("")}),
				List(ListBullet, Inline{Plain(""), Bold("Severity"), Plain(": major")}),
				Paragraph(Inline{Plain("See "), Bold("below"), Plain(".")}),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseParagraphsPreserveOrder(t *testing.T) {
	lines := []string{"alpha", "beta gamma", "  delta", "epsilon."}
	blocks := Parse(strings.Join(lines, "\n\n"))
	require.Len(t, blocks, len(lines))
	for i, b := range blocks {
		assert.Equal(t, KindParagraph, b.Kind)
		assert.Equal(t, plain(lines[i]), b.Text)
	}
}

func TestParseListItemCount(t *testing.T) {
	input := "- a\n* b\n\n- c\n* d\n\nafter"
	blocks := Parse(input)
	require.Len(t, blocks, 2)
	assert.Equal(t, KindList, blocks[0].Kind)
	assert.Len(t, blocks[0].Items, 4)
	assert.Equal(t, "d", blocks[0].Items[3].Text())
}

func TestParseReader(t *testing.T) {
	blocks, err := ParseReader(strings.NewReader("# Hi\nthere"))
	require.NoError(t, err)
	assert.Equal(t, []Block{Heading(1, plain("Hi")), Paragraph(plain("there"))}, blocks)
}

func TestFormatRoundTrip(t *testing.T) {
	input := strings.Join([]string{
		"### Summary",
		"A **45-year-old** patient.",
		"",
		"- chest pain",
		"- **radiating** to left arm",
		"",
		"Next steps:",
		"1. ECG",
		"2.  troponin",
		"## Notes",
	}, "\n")
	blocks := Parse(input)
	assert.Equal(t, blocks, Parse(Format(blocks)))
}

func TestFormatNumberedList(t *testing.T) {
	out := Format([]Block{List(ListNumbered, plain("a"), Inline{Plain(""), Bold("b"), Plain("")})})
	assert.Equal(t, "1. a\n2. **b**\n", out)
}

func TestBlockJSON(t *testing.T) {
	blocks := Parse("## Plan\n1. rest\nok")
	b, err := json.Marshal(blocks)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"heading","level":2,"text":[{"kind":"plain","text":"Plan"}]},
		{"type":"list","items":[[{"kind":"plain","text":"rest"}]],"style":"numbered"},
		{"type":"paragraph","text":[{"kind":"plain","text":"ok"}]}
	]`, string(b))

	var back []Block
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, blocks, back)
}
