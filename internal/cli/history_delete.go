package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/db"
)

func newHistoryDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete saved answers",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if len(args) > 1 {
				if err := confirmDelete(fmt.Sprintf("Delete %d answers?", len(args)), "This will permanently delete the selected answers.", yes); err != nil {
					return err
				}
			}
			var errs []error
			for _, id := range args {
				if err := app.Store.Delete(cmd.Context(), id); err != nil {
					if errors.Is(err, db.ErrNotFound) {
						err = fmt.Errorf("answer %s: %w", id, err)
					}
					errs = append(errs, err)
					continue
				}
				writeLine(cmd.OutOrStdout(), "Deleted %s", id)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt for bulk deletes")
	return cmd
}

func newHistoryPruneCmd() *cobra.Command {
	var keep int
	var yes bool
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop all but the newest answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if !cmd.Flags().Changed("keep") {
				keep = app.Cfg.GetInt("history.max_entries")
			}
			if keep <= 0 {
				return fmt.Errorf("--keep must be greater than 0")
			}
			if err := confirmDelete(fmt.Sprintf("Keep only the newest %d answers?", keep), "Older answers are deleted permanently.", yes); err != nil {
				return err
			}
			n, err := app.Store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "Pruned %d", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "answers to keep (default history.max_entries)")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt")
	return cmd
}

func confirmDelete(title, desc string, yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("confirmation required; rerun with --yes")
	}
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("aborted")
	}
	return nil
}
