package markdown

import (
	"strconv"
	"strings"
)

// Format writes blocks back out in the markdown subset, one blank line
// between blocks. Numbered lists are renumbered from 1.
func Format(blocks []Block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		switch blk.Kind {
		case KindHeading:
			b.WriteString(strings.Repeat("#", blk.Level))
			b.WriteByte(' ')
			writeInline(&b, blk.Text)
			b.WriteByte('\n')
		case KindList:
			for n, item := range blk.Items {
				if blk.Style == ListNumbered {
					b.WriteString(strconv.Itoa(n + 1))
					b.WriteString(". ")
				} else {
					b.WriteString("- ")
				}
				writeInline(&b, item)
				b.WriteByte('\n')
			}
		case KindParagraph:
			writeInline(&b, blk.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func writeInline(b *strings.Builder, in Inline) {
	for _, r := range in {
		if r.Kind == RunBold {
			b.WriteString("**")
			b.WriteString(r.Text)
			b.WriteString("**")
			continue
		}
		b.WriteString(r.Text)
	}
}
