package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and history HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if listen != "" {
				app.Cfg.Set("http_addr", listen)
			}
			addr := app.Cfg.GetString("http_addr")
			if strings.TrimSpace(app.Cfg.GetString("auth.token")) == "" {
				app.Log.Printf("auth.token is empty; history endpoints are unauthenticated")
			}
			srv := server.New(app.Cfg, app.Store)
			fmt.Fprintf(cmd.OutOrStdout(), "HTTP server listening on %s\n", addr)
			return srv.Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (override config http_addr)")
	return cmd
}
