package markdown

import (
	"regexp"
	"strings"
)

// sectionHeading matches a level-3 heading marker at the start of any line.
var sectionHeading = regexp.MustCompile(`(?m)^###\s+`)

// Section is the text under one "### " heading of an answer.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sections is an ordered list of sections.
type Sections []Section

// SplitSections cuts text at every "### " heading. Text before the first
// heading forms a section of its own, titled by its first line.
func SplitSections(text string) Sections {
	out := Sections{}
	if text == "" {
		return out
	}
	for _, part := range sectionHeading.Split(text, -1) {
		if part == "" {
			continue
		}
		lines := SplitLines(part)
		out = append(out, Section{
			Title: strings.TrimSpace(lines[0]),
			Body:  strings.TrimSpace(strings.Join(lines[1:], "\n")),
		})
	}
	return out
}

// Get returns the body of the last section titled title.
func (s Sections) Get(title string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Title == title {
			return s[i].Body, true
		}
	}
	return "", false
}

// Titles lists section titles in order.
func (s Sections) Titles() []string {
	out := make([]string, len(s))
	for i, sec := range s {
		out[i] = sec.Title
	}
	return out
}
