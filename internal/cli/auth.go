package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/copilotmd/internal/keys"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the HTTP API bearer token in the system keyring",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-token [token|-]",
		Short: "Store the bearer token (reads stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			var tok string
			if len(args) == 1 && args[0] != "-" {
				tok = args[0]
			} else {
				in, err := readInput(cmd, nil)
				if err != nil {
					return err
				}
				tok = in
			}
			tok = strings.TrimSpace(tok)
			if tok == "" {
				return errors.New("empty token")
			}
			if err := app.Secrets.Put(keys.TokenName, tok); err != nil {
				return fmt.Errorf("keyring: %w", err)
			}
			writeLine(cmd.OutOrStdout(), "Token stored; set auth.keyring = true to use it")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear-token",
		Short: "Remove the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := getApp(cmd).Secrets.Delete(keys.TokenName); err != nil {
				return fmt.Errorf("keyring: %w", err)
			}
			writeLine(cmd.OutOrStdout(), "Token removed")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the history API requires a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			_, err := app.Secrets.Get(keys.TokenName)
			state := "off"
			if strings.TrimSpace(app.Cfg.GetString("auth.token")) != "" {
				state = "on"
			}
			out := cmd.OutOrStdout()
			writeLine(out, "auth: %s", state)
			writeLine(out, "auth.keyring: %t", app.Cfg.GetBool("auth.keyring"))
			writeLine(out, "keyring token stored: %t", err == nil)
			return nil
		},
	})
	return cmd
}
