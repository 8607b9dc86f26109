package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X github.com/metfin/vsr-sdk-go/internal/cli.version=x.y.z"
var version = "0.1.0"

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show vsrctl and program interface versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			idl := app.client.Program().IDL()
			fmt.Fprintf(cmd.OutOrStdout(), "vsrctl version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", idl.Metadata.Name, idl.Metadata.Version, app.client.ProgramID())
			return nil
		},
	}
}
