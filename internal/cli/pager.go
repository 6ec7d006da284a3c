package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultPager = "less -FRSX"

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, else fallback.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return fallback
}

// pagerEnabled combines pager.enabled with a --no-pager flag when present.
func pagerEnabled(cmd *cobra.Command) bool {
	if noPager, err := cmd.Flags().GetBool("no-pager"); err == nil && noPager {
		return false
	}
	return getConfig(cmd).GetBool("pager.enabled")
}

func withPager(ctx context.Context, enabled bool, out, errOut io.Writer, write func(io.Writer) error) error {
	if !enabled || !isTerminal(out) {
		return write(out)
	}
	outFile := out.(*os.File)
	pager := strings.TrimSpace(os.Getenv("PAGER"))
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
