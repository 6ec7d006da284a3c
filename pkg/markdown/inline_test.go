package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitInline(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Inline
	}{
		{"plain text", "plain text", Inline{Plain("plain text")}},
		{"empty line", "", Inline{Plain("")}},
		{"whole line bold", "**bold**", Inline{Plain(""), Bold("bold"), Plain("")}},
		{
			"two bold spans",
			"a **b** c **d** e",
			Inline{Plain("a "), Bold("b"), Plain(" c "), Bold("d"), Plain(" e")},
		},
		{"empty bold", "****", Inline{Plain(""), Bold(""), Plain("")}},
		{"unmatched marker", "a **b", Inline{Plain("a **b")}},
		{
			"odd marker count",
			"**a** **b",
			Inline{Plain(""), Bold("a"), Plain(" **b")},
		},
		{
			"adjacent spans",
			"**a****b**",
			Inline{Plain(""), Bold("a"), Plain(""), Bold("b"), Plain("")},
		},
		{
			"no nesting",
			"***a***",
			Inline{Plain(""), Bold("*a"), Plain("*")},
		},
		{"single asterisks stay", "*a* b", Inline{Plain("*a* b")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitInline(tt.line))
		})
	}
}

func TestSplitInlineAlternates(t *testing.T) {
	for _, line := range []string{"x", "**a** b **c**", "****x**", "a**b**c**d"} {
		runs := SplitInline(line)
		for i, r := range runs {
			want := RunPlain
			if i%2 == 1 {
				want = RunBold
			}
			assert.Equal(t, want, r.Kind, "run %d of %q", i, line)
		}
		assert.Equal(t, RunPlain, runs[len(runs)-1].Kind)
	}
}

func TestInlineText(t *testing.T) {
	in := SplitInline("a **b** c")
	assert.Equal(t, "a b c", in.Text())
}
