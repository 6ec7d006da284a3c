package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/present"
	"github.com/mithrel/copilotmd/internal/util"
	"github.com/mithrel/copilotmd/pkg/api"
)

var listModes = []string{"plain", "json", "ndjson", "tui"}

type FilterOpts struct {
	Since string
	Until string
	Limit int
}

func addFilterFlags(cmd *cobra.Command, f *FilterOpts) {
	cmd.Flags().StringVar(&f.Since, "since", "", "only answers after this time (2h, 3d, 2w, 1mo, RFC3339, 2006-01-02)")
	cmd.Flags().StringVar(&f.Until, "until", "", "only answers before this time")
	cmd.Flags().IntVarP(&f.Limit, "limit", "n", 0, "maximum answers (0 = all)")
}

func (f FilterOpts) query(now time.Time) (api.ListQuery, error) {
	since, until, err := util.ParseTimeRange(f.Since, f.Until, now)
	if err != nil {
		return api.ListQuery{}, err
	}
	return api.ListQuery{Since: since, Until: until, Limit: f.Limit}, nil
}

func listOptions(cmd *cobra.Command, outputMode string, noHeaders bool) (present.Options, error) {
	mode, ok := present.ParseMode(strings.ToLower(outputMode))
	if !ok || (mode != present.ModePlain && mode != present.ModeJSON && mode != present.ModeNDJSON && mode != present.ModeTUI) {
		return present.Options{}, fmt.Errorf("invalid --output: %s", outputMode)
	}
	v := getConfig(cmd)
	return present.Options{
		Mode:    mode,
		Headers: !noHeaders,
		Width:   v.GetInt("render.width"),
		Style:   v.GetString("render.style"),
	}, nil
}

func renderEntries(cmd *cobra.Command, entries []api.Entry, opts present.Options) error {
	if opts.Mode == present.ModeTUI {
		opts.Source = getApp(cmd).Store
		return present.RenderEntries(cmd.Context(), cmd.OutOrStdout(), entries, opts)
	}
	return withPager(cmd.Context(), pagerEnabled(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
		return present.RenderEntries(cmd.Context(), w, entries, opts)
	})
}

func addListOutputFlags(cmd *cobra.Command, outputMode *string, noHeaders *bool) {
	cmd.Flags().StringVarP(outputMode, "output", "o", "plain", "output mode: "+strings.Join(listModes, "|"))
	cmd.Flags().BoolVar(noHeaders, "noheaders", false, "hide column headers (plain/tui)")
	cmd.Flags().Bool("no-pager", false, "write directly to stdout")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listModes, cobra.ShellCompDirectiveNoFileComp
	})
}

func newHistoryListCmd() *cobra.Command {
	var filters FilterOpts
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved answers, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := listOptions(cmd, outputMode, noHeaders)
			if err != nil {
				return err
			}
			q, err := filters.query(time.Now())
			if err != nil {
				return err
			}
			start := time.Now()
			entries, err := app.Store.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			opts.Status = fmt.Sprintf("loaded in %s", time.Since(start).Round(time.Microsecond))
			return renderEntries(cmd, entries, opts)
		},
	}
	addFilterFlags(cmd, &filters)
	addListOutputFlags(cmd, &outputMode, &noHeaders)
	return cmd
}

func newHistorySearchCmd() *cobra.Command {
	var filters FilterOpts
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Fuzzy-search saved queries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := listOptions(cmd, outputMode, noHeaders)
			if err != nil {
				return err
			}
			q, err := filters.query(time.Now())
			if err != nil {
				return err
			}
			limit := q.Limit
			q.Limit = 0
			entries, err := app.Store.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			ranked := util.RankEntries(strings.Join(args, " "), entries, limit)
			if len(ranked) == 0 && opts.Mode == present.ModePlain {
				writeLine(cmd.ErrOrStderr(), "no matches")
				return nil
			}
			return renderEntries(cmd, ranked, opts)
		},
	}
	addFilterFlags(cmd, &filters)
	addListOutputFlags(cmd, &outputMode, &noHeaders)
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var outputMode, style string
	var width int
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a saved answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			e, err := app.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("answer %s: %w", args[0], err)
			}
			opts, err := outputOptions(cmd, outputMode, width, style)
			if err != nil {
				return err
			}
			opts.JSONIndent = true
			return withPager(cmd.Context(), pagerEnabled(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderEntry(w, e, opts)
			})
		},
	}
	addOutputFlags(cmd, &outputMode, &width, &style, []string{"plain", "pretty", "ansi", "html", "json", "dump"})
	return cmd
}

func newHistoryBrowseCmd() *cobra.Command {
	var filters FilterOpts
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse saved answers interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			q, err := filters.query(time.Now())
			if err != nil {
				return err
			}
			entries, err := app.Store.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			opts, err := listOptions(cmd, "tui", noHeaders)
			if err != nil {
				return err
			}
			return renderEntries(cmd, entries, opts)
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers")
	return cmd
}
