package cli

import (
	"github.com/spf13/cobra"
)

func newRegistrarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "registrar <address>",
		Short: "Show a registrar and its voting mints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseKey("registrar", args[0])
			if err != nil {
				return err
			}
			r, err := app.client.GetRegistrar(cmd.Context(), addr)
			if err != nil {
				return err
			}
			return app.print(cmd.OutOrStdout(), newRegistrarView(addr, r))
		},
	}
}
