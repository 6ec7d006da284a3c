package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/editor"
	"github.com/mithrel/copilotmd/internal/wire"
	"github.com/mithrel/copilotmd/pkg/api"
)

// newHistoryCmd defines the parent "history" command.
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "Store and browse answered queries",
	}
	cmd.AddCommand(newHistoryAddCmd())
	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistorySearchCmd())
	cmd.AddCommand(newHistoryDeleteCmd())
	cmd.AddCommand(newHistoryPruneCmd())
	cmd.AddCommand(newHistoryBrowseCmd())
	cmd.AddCommand(newHistoryImportCmd())
	return cmd
}

func newHistoryAddCmd() *cobra.Command {
	var e api.Entry
	var file string
	var edit bool
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save an answer (response from --file, stdin or $EDITOR)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if edit {
				edited, changed, err := composeInEditor(e)
				if err != nil {
					return err
				}
				if !changed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No edits; nothing saved.")
					return nil
				}
				e = edited
			} else {
				var in []string
				if file != "" {
					in = []string{file}
				}
				text, err := readInput(cmd, in)
				if err != nil {
					return err
				}
				e.Response = text
			}
			e.Query = strings.TrimSpace(e.Query)
			if e.Query == "" {
				return fmt.Errorf("--query is required")
			}
			saved, err := saveEntry(cmd, app, e)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", saved.ID, saved.Query)
			return nil
		},
	}
	cmd.Flags().StringVarP(&e.Query, "query", "q", "", "the question that was asked")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the response from this file instead of stdin")
	cmd.Flags().StringArrayVarP(&e.Citations, "citation", "c", nil, "source URL (repeatable)")
	cmd.Flags().StringVarP(&e.Model, "model", "m", "", "model that produced the answer")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "compose the answer in $EDITOR")
	cmd.MarkFlagsMutuallyExclusive("file", "edit")
	return cmd
}

func composeInEditor(seed api.Entry) (api.Entry, bool, error) {
	path, err := editor.PathForID(api.NewID())
	if err != nil {
		return api.Entry{}, false, err
	}
	initial := []byte(editor.ComposeContent(seed))
	out, changed, err := editor.OpenAt(path, initial)
	if err != nil || !changed {
		return api.Entry{}, false, err
	}
	return editor.ParseEdited(string(out)), true, nil
}

// saveEntry stores e and trims history to history.max_entries.
func saveEntry(cmd *cobra.Command, app *wire.App, e api.Entry) (api.Entry, error) {
	saved, err := app.Store.Put(cmd.Context(), e)
	if err != nil {
		return api.Entry{}, err
	}
	if keep := app.Cfg.GetInt("history.max_entries"); keep > 0 {
		n, err := app.Store.Prune(cmd.Context(), keep)
		if err != nil {
			return saved, err
		}
		if n > 0 {
			app.Log.Printf("pruned %d old answers", n)
		}
	}
	return saved, nil
}

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
