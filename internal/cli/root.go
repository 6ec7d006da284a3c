package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/copilotmd/internal/config"
	"github.com/mithrel/copilotmd/internal/wire"
)

type ctxKey string

const (
	appKey ctxKey = "app"
	cfgKey ctxKey = "cfg"
)

// skipAppAnnotation marks commands that only need configuration, not an
// open history store.
const skipAppAnnotation = "copilotmd/skip-app"

// Execute builds the root command and runs it with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "copilotmd",
		Short:         "copilotmd: render and keep clinical co-pilot answers",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, map[string]string{
				"store":    "store",
				"data-dir": "data_dir",
			})
			ctx := context.WithValue(cmd.Context(), cfgKey, v)
			if cmd.Annotations[skipAppAnnotation] == "" {
				app, err := wire.BuildApp(ctx, v)
				if err != nil {
					return err
				}
				ctx = context.WithValue(ctx, appKey, app)
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app, ok := cmd.Context().Value(appKey).(*wire.App); ok {
				return app.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml)")
	cmd.PersistentFlags().String("store", "", "history backend override: sqlite|mem")
	cmd.PersistentFlags().String("data-dir", "", "data directory override")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newSectionsCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAuthCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return skipApp(cmd)
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}

func getConfig(cmd *cobra.Command) *viper.Viper {
	if v, ok := cmd.Context().Value(cfgKey).(*viper.Viper); ok {
		return v
	}
	return viper.New()
}

func skipApp(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipAppAnnotation] = "true"
	return cmd
}
