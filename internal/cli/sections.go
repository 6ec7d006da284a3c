package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/present/format"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

func newSectionsCmd() *cobra.Command {
	var title string
	var report, asJSON bool
	var width int
	cmd := &cobra.Command{
		Use:   "sections [file|-]",
		Short: "Split an answer into its ### sections",
		Long: `Split an answer on its level-3 headings.

Without flags the section titles are printed one per line. --title prints
the body of one section, --report draws the standard answer cards and
--json emits every section.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			secs := markdown.SplitSections(text)
			out := cmd.OutOrStdout()
			switch {
			case title != "":
				body, ok := secs.Get(title)
				if !ok {
					return fmt.Errorf("no section titled %q", title)
				}
				_, err := fmt.Fprintln(out, body)
				return err
			case asJSON:
				return format.WriteJSONSections(out, secs, true)
			case report:
				if width <= 0 {
					width = terminalWidth(out, getConfig(cmd).GetInt("render.width"))
				}
				return withPager(cmd.Context(), pagerEnabled(cmd), out, cmd.ErrOrStderr(), func(w io.Writer) error {
					return format.WriteReport(w, secs, width)
				})
			default:
				titles := secs.Titles()
				if len(titles) == 0 {
					return nil
				}
				_, err := io.WriteString(out, strings.Join(titles, "\n")+"\n")
				return err
			}
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "print the body of the section with this title")
	cmd.Flags().BoolVar(&report, "report", false, "render the answer cards")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit sections as JSON")
	cmd.Flags().IntVar(&width, "width", 0, "card width for --report")
	cmd.Flags().Bool("no-pager", false, "write directly to stdout")
	cmd.MarkFlagsMutuallyExclusive("title", "report", "json")
	return skipApp(cmd)
}
