package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/copilotmd/pkg/api"
)

func TestParseEdited(t *testing.T) {
	input := `# comment line
Query: chest pain in a 45 year old
Model: sonar-pro
Citations: https://nih.gov/a ,  https://who.int/b,
---
### Summary
Likely **musculoskeletal**.
`
	e := ParseEdited(input)
	assert.Equal(t, "chest pain in a 45 year old", e.Query)
	assert.Equal(t, "sonar-pro", e.Model)
	assert.Equal(t, []string{"https://nih.gov/a", "https://who.int/b"}, e.Citations)
	assert.Equal(t, "### Summary\nLikely **musculoskeletal**.", e.Response)
}

func TestComposeContentRoundTrip(t *testing.T) {
	in := api.Entry{
		Query:     "fever",
		Model:     "m",
		Citations: []string{"https://a.org"},
		Response:  "# Heading\n- item",
	}
	content := ComposeContent(in)
	assert.True(t, strings.Contains(content, "---\n# Heading\n- item\n"))
	assert.Equal(t, in, ParseEdited(content))
}

func TestPathForID(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	path, err := PathForID("new answer/1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "copilotmd", "new_answer_1.copilotmd.md"), path)
}

func TestOpenAtWithEditorCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edit.md")
	script := filepath.Join(dir, "fake-editor")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho appended >> \"$1\"\n"), 0o755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	out, changed, err := OpenAt(path, []byte("start\n"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "start\nappended\n", string(out))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
