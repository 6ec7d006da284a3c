package config

import (
	"fmt"
	"strings"
)

// section groups dotted options under their TOML table name.
type section struct {
	name string
	opts []ConfigOption
}

// groupOptions splits opts into top-level keys and tables in first-seen
// order; option keys inside a table lose their "table." prefix.
func groupOptions(opts []ConfigOption) ([]ConfigOption, []section) {
	var top []ConfigOption
	var tables []section
	index := map[string]int{}
	for _, o := range opts {
		name, key, dotted := strings.Cut(o.Key, ".")
		if !dotted {
			top = append(top, o)
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(tables)
			index[name] = i
			tables = append(tables, section{name: name})
		}
		tables[i].opts = append(tables[i].opts, ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, tables
}

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	top, tables := groupOptions(GetConfigOptions())
	lines := []string{"# copilotmd configuration (TOML)"}
	for _, o := range top {
		lines = appendOption(lines, o)
	}
	for _, t := range tables {
		lines = append(lines, "["+t.name+"]")
		for _, o := range t.opts {
			lines = appendOption(lines, o)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// UpdateTOML merges defaults into an existing TOML string and comments out
// keys that are no longer part of the schema. Missing keys are added to the
// table they belong to. It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	known := map[string]bool{}
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	// tables[0] holds the top-level keys that precede the first header.
	tables := []*section{{}}
	body := [][]string{nil}
	seen := map[string]bool{}
	changed := false
	for _, line := range strings.Split(existing, "\n") {
		trim := strings.TrimSpace(line)
		cur := len(tables) - 1
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			tables = append(tables, &section{name: strings.TrimSpace(trim[1 : len(trim)-1])})
			body = append(body, []string{line})
			continue
		}
		key, ok := parseTOMLKey(line)
		if ok && !strings.HasPrefix(trim, "#") && !strings.HasPrefix(trim, ";") {
			if name := tables[cur].name; name != "" {
				key = name + "." + key
			}
			seen[key] = true
			if !known[key] {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				body[cur] = append(body[cur], indent+"# OUTDATED: option removed from config schema", indent+"# "+strings.TrimLeft(line, " \t"))
				changed = true
				continue
			}
		}
		body[cur] = append(body[cur], line)
	}

	var missing []ConfigOption
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	top, newTables := groupOptions(missing)
	add := func(i int, opts []ConfigOption) {
		body[i] = append(body[i], "# Added by config update")
		for _, o := range opts {
			body[i] = appendOption(body[i], o)
		}
		changed = true
	}
	if len(top) > 0 {
		add(0, top)
	}
	for _, t := range newTables {
		i := indexOfTable(tables, t.name)
		if i < 0 {
			tables = append(tables, &section{name: t.name})
			body = append(body, []string{"", "[" + t.name + "]"})
			i = len(tables) - 1
		}
		add(i, t.opts)
	}

	var out []string
	for _, lines := range body {
		out = append(out, lines...)
	}
	return strings.Join(out, "\n"), changed
}

func indexOfTable(tables []*section, name string) int {
	for i, t := range tables {
		if i > 0 && t.name == name {
			return i
		}
	}
	return -1
}

func parseTOMLKey(line string) (string, bool) {
	raw, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key := strings.TrimSpace(raw)
	if key == "" || strings.ContainsAny(key[:1], "[\"'") {
		return "", false
	}
	return key, true
}

func appendOption(lines []string, o ConfigOption) []string {
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	return append(lines, o.Key+" = "+tomlValue(o.Default), "")
}

func tomlValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
