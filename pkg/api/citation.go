package api

import (
	"fmt"
	"net/url"
	"strings"
)

// CitationLabel formats the n-th (1-based) citation as "[n] host", dropping a
// leading "www.". Strings that are not absolute URLs are shown as given.
func CitationLabel(n int, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("[%d] %s", n, raw)
	}
	return fmt.Sprintf("[%d] %s", n, strings.TrimPrefix(u.Hostname(), "www."))
}
