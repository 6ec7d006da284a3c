package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/config"
	"github.com/mithrel/copilotmd/internal/present"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

// outputOptions resolves -o/--width/--style against configuration.
func outputOptions(cmd *cobra.Command, outputMode string, width int, style string) (present.Options, error) {
	v := getConfig(cmd)
	if outputMode == "" {
		outputMode = v.GetString("render.output")
	}
	mode, ok := present.ParseMode(strings.ToLower(outputMode))
	if !ok {
		return present.Options{}, fmt.Errorf("invalid --output: %s", outputMode)
	}
	if width <= 0 {
		width = terminalWidth(cmd.OutOrStdout(), v.GetInt("render.width"))
	}
	if style == "" {
		style = v.GetString("render.style")
	}
	return present.Options{
		Mode:  mode,
		Width: width,
		Style: style,
		Color: isTerminal(cmd.OutOrStdout()),
	}, nil
}

func addOutputFlags(cmd *cobra.Command, outputMode *string, width *int, style *string, modes []string) {
	cmd.Flags().StringVarP(outputMode, "output", "o", "", "output mode: "+strings.Join(modes, "|")+" (default from render.output)")
	cmd.Flags().IntVar(width, "width", 0, "wrap width (default: terminal width or render.width)")
	cmd.Flags().StringVar(style, "style", "", "glamour style for pretty output (default from render.style)")
	cmd.Flags().Bool("no-pager", false, "write directly to stdout")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
}

func newRenderCmd() *cobra.Command {
	var outputMode, style string
	var width int
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render an answer written in the markdown subset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts, err := outputOptions(cmd, outputMode, width, style)
			if err != nil {
				return err
			}
			opts.JSONIndent = true
			blocks := markdown.Parse(text)
			return withPager(cmd.Context(), pagerEnabled(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderDocument(w, blocks, opts)
			})
		},
	}
	addOutputFlags(cmd, &outputMode, &width, &style, config.OutputModes)
	return skipApp(cmd)
}
