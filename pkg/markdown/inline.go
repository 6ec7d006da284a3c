package markdown

import "regexp"

// boldPattern captures the shortest span between two "**" markers.
var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// SplitInline splits a line into alternating plain and bold runs.
//
// Even positions of the result are the text outside any marker pair and odd
// positions the captured text between a pair, so a bold span at the very
// start or end of the line is framed by empty plain runs. Markers that
// cannot pair stay verbatim in their plain run, and captured text is never
// scanned again.
func SplitInline(line string) Inline {
	matches := boldPattern.FindAllStringSubmatchIndex(line, -1)
	out := make(Inline, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		out = append(out, Plain(line[last:m[0]]), Bold(line[m[2]:m[3]]))
		last = m[1]
	}
	return append(out, Plain(line[last:]))
}
