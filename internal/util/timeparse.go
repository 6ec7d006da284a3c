package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// relativeUnits are the shorthands time.ParseDuration does not know.
// "mo" must precede "d" and "w" is unambiguous.
var relativeUnits = []struct {
	suffix string
	back   func(now time.Time, n int) time.Time
}{
	{"mo", func(now time.Time, n int) time.Time { return now.AddDate(0, -n, 0) }},
	{"w", func(now time.Time, n int) time.Time { return now.AddDate(0, 0, -7*n) }},
	{"d", func(now time.Time, n int) time.Time { return now.AddDate(0, 0, -n) }},
}

var absoluteLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ParseTimeExpr resolves a history filter bound. Relative forms ("90m",
// "2h", "3d", "2w", "1mo") count back from now; absolute forms are RFC3339,
// "2006-01-02T15:04" or "2006-01-02".
func ParseTimeExpr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	for _, u := range relativeUnits {
		num, ok := strings.CutSuffix(s, u.suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid %s duration: %q", u.suffix, s)
		}
		return u.back(now, n), nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time expression: %q", s)
}

// ParseTimeRange parses since/until (empty allowed) and swaps them if
// reversed. Unset bounds come back as the zero time.
func ParseTimeRange(since, until string, now time.Time) (time.Time, time.Time, error) {
	var s, u time.Time
	var err error

	if since != "" {
		if s, err = ParseTimeExpr(since, now); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --since: %w", err)
		}
	}
	if until != "" {
		if u, err = ParseTimeExpr(until, now); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --until: %w", err)
		}
	}

	if !s.IsZero() && !u.IsZero() && s.After(u) {
		s, u = u, s
	}
	return s, u, nil
}
