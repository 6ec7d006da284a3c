package format

import (
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/mithrel/copilotmd/pkg/markdown"
)

// WriteHTMLDocument renders blocks as an HTML fragment wrapped in a
// markdown-content div. Numbered lists become <ol>, all others <ul>.
func WriteHTMLDocument(w io.Writer, blocks []markdown.Block) error {
	var b strings.Builder
	b.WriteString(`<div class="markdown-content">` + "\n")
	for _, blk := range blocks {
		switch blk.Kind {
		case markdown.KindHeading:
			tag := "h" + strconv.Itoa(blk.Level)
			b.WriteString(`<` + tag + ` class="md-` + tag + `">`)
			writeHTMLInline(&b, blk.Text)
			b.WriteString(`</` + tag + ">\n")
		case markdown.KindList:
			tag := "ul"
			if blk.Style == markdown.ListNumbered {
				tag = "ol"
			}
			b.WriteString(`<` + tag + ` class="md-list">` + "\n")
			for _, item := range blk.Items {
				b.WriteString(`<li class="md-li">`)
				writeHTMLInline(&b, item)
				b.WriteString("</li>\n")
			}
			b.WriteString(`</` + tag + ">\n")
		case markdown.KindParagraph:
			b.WriteString(`<p class="md-p">`)
			writeHTMLInline(&b, blk.Text)
			b.WriteString("</p>\n")
		}
	}
	b.WriteString("</div>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeHTMLInline(b *strings.Builder, in markdown.Inline) {
	for _, r := range in {
		if r.Kind == markdown.RunBold {
			b.WriteString("<strong>" + html.EscapeString(r.Text) + "</strong>")
			continue
		}
		b.WriteString(html.EscapeString(r.Text))
	}
}
