package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/db"
	"github.com/mithrel/copilotmd/internal/wire"
	"github.com/mithrel/copilotmd/pkg/api"
)

func newHistoryImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Import answers from JSON (array or NDJSON)",
		Long: `Import answers exported with "history list -o json" or "-o ndjson".

Entries without a query are skipped, as are answers already stored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			entries, err := decodeEntries(bufio.NewReader(r))
			if err != nil {
				return err
			}

			imported, skipped := 0, 0
			now := time.Now().UTC()
			for _, e := range entries {
				ok, err := importOne(cmd, app, e, now)
				if err != nil {
					return err
				}
				if ok {
					imported++
				} else {
					skipped++
				}
			}
			if keep := app.Cfg.GetInt("history.max_entries"); keep > 0 {
				if _, err := app.Store.Prune(cmd.Context(), keep); err != nil {
					return err
				}
			}
			writeLine(cmd.OutOrStdout(), "Imported: %d\nSkipped: %d", imported, skipped)
			return nil
		},
	}
	return cmd
}

// decodeEntries reads a JSON array or a stream of JSON objects.
func decodeEntries(br *bufio.Reader) ([]api.Entry, error) {
	first, err := peekFirstNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(br)
	if first == '[' {
		var arr []api.Entry
		if err := dec.Decode(&arr); err != nil {
			return nil, fmt.Errorf("decode array: %w", err)
		}
		return arr, nil
	}
	var out []api.Entry
	for {
		var e api.Entry
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("decode entry %d: %w", len(out)+1, err)
		}
		out = append(out, e)
	}
}

// importOne stores e and reports whether it was new.
func importOne(cmd *cobra.Command, app *wire.App, e api.Entry, now time.Time) (bool, error) {
	if strings.TrimSpace(e.Query) == "" {
		return false, nil
	}
	if e.ID == "" {
		e.ID = api.NewID()
	} else if _, err := app.Store.Get(cmd.Context(), e.ID); err == nil {
		return false, nil
	} else if !errors.Is(err, db.ErrNotFound) {
		return false, err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	got, err := app.Store.Put(cmd.Context(), e)
	if err != nil {
		return false, err
	}
	return got.ID == e.ID, nil
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		// put it back for the decoder
		if err := r.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
