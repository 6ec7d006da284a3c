package editor

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mithrel/copilotmd/pkg/api"
)

const (
	QueryPrefix     = "Query: "
	ModelPrefix     = "Model: "
	CitationsPrefix = "Citations: "
)

// ComposeContent creates the text presented to the editor for an answer.
func ComposeContent(e api.Entry) string {
	var b bytes.Buffer
	b.WriteString("# copilotmd answer\n")
	b.WriteString("# Lines starting with '#' above '---' are ignored.\n")
	b.WriteString("# Citations are comma-separated URLs. After '---', paste the response.\n")
	b.WriteString(QueryPrefix + e.Query + "\n")
	b.WriteString(ModelPrefix + e.Model + "\n")
	b.WriteString(CitationsPrefix + strings.Join(e.Citations, ", ") + "\n")
	b.WriteString("---\n")
	if e.Response != "" {
		b.WriteString(e.Response)
		if !strings.HasSuffix(e.Response, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ParseEdited reads back the fields written by ComposeContent. Headings in
// the response survive because comment stripping stops at '---'.
func ParseEdited(s string) api.Entry {
	var e api.Entry
	var body []string
	inBody := false
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if inBody {
			body = append(body, line)
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
		case trimmed == "---":
			inBody = true
		case strings.HasPrefix(line, strings.TrimSpace(QueryPrefix)):
			e.Query = strings.TrimSpace(strings.TrimPrefix(line, strings.TrimSpace(QueryPrefix)))
		case strings.HasPrefix(line, strings.TrimSpace(ModelPrefix)):
			e.Model = strings.TrimSpace(strings.TrimPrefix(line, strings.TrimSpace(ModelPrefix)))
		case strings.HasPrefix(line, strings.TrimSpace(CitationsPrefix)):
			raw := strings.TrimPrefix(line, strings.TrimSpace(CitationsPrefix))
			for _, c := range strings.Split(raw, ",") {
				if c = strings.TrimSpace(c); c != "" {
					e.Citations = append(e.Citations, c)
				}
			}
		}
	}
	e.Response = strings.TrimSpace(strings.Join(body, "\n"))
	return e
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// PathForID returns a scratch file path for an answer being composed.
func PathForID(id string) (string, error) {
	name := sanitize(id) + ".copilotmd.md"
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "copilotmd", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "copilotmd", "edit", name), nil
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func writeFile0600(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, fs.FileMode(0o600))
}

// OpenAt opens the editor at path with initial content and returns final bytes and whether it changed.
func OpenAt(path string, initial []byte) (final []byte, changed bool, err error) {
	if err := writeFile0600(path, initial); err != nil {
		return nil, false, err
	}
	defer os.Remove(path)

	// Honor VISUAL/EDITOR including flags by running via a shell wrapper.
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	var cmd *exec.Cmd
	if strings.TrimSpace(ed) != "" {
		cmd = exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	} else {
		prog, err := PreferredEditor()
		if err != nil {
			return nil, false, err
		}
		cmd = exec.Command(prog, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}
