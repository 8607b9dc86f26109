package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metfin/vsr-sdk-go/pkg/vsr"
)

type idlInstructionView struct {
	Name          string   `yaml:"name" json:"name"`
	Discriminator string   `yaml:"discriminator" json:"discriminator"`
	Accounts      []string `yaml:"accounts" json:"accounts"`
	Args          []string `yaml:"args,omitempty" json:"args,omitempty"`
}

type idlAccountView struct {
	Name          string `yaml:"name" json:"name"`
	Discriminator string `yaml:"discriminator" json:"discriminator"`
}

type idlView struct {
	Name         string               `yaml:"name" json:"name"`
	Version      string               `yaml:"version" json:"version"`
	Address      string               `yaml:"address" json:"address"`
	Instructions []idlInstructionView `yaml:"instructions" json:"instructions"`
	Accounts     []idlAccountView     `yaml:"accounts" json:"accounts"`
	Errors       int                  `yaml:"errors" json:"errors"`
}

func newIdlCmd(app *App) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "idl",
		Short: "Print the program interface the client is bound to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				_, err := cmd.OutOrStdout().Write(vsr.IDLJSON())
				return err
			}
			idl := app.client.Program().IDL()
			view := idlView{
				Name:    idl.Metadata.Name,
				Version: idl.Metadata.Version,
				Address: idl.Address,
				Errors:  len(idl.Errors),
			}
			for _, ix := range idl.Instructions {
				iv := idlInstructionView{
					Name:          ix.Name,
					Discriminator: hex.EncodeToString(ix.Discriminator[:]),
				}
				for _, acc := range ix.Accounts {
					iv.Accounts = append(iv.Accounts, accountLabel(acc.Name, acc.Writable, acc.Signer))
				}
				for _, arg := range ix.Args {
					iv.Args = append(iv.Args, arg.Name)
				}
				view.Instructions = append(view.Instructions, iv)
			}
			for _, acc := range idl.Accounts {
				view.Accounts = append(view.Accounts, idlAccountView{
					Name:          acc.Name,
					Discriminator: hex.EncodeToString(acc.Discriminator[:]),
				})
			}
			return app.print(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the embedded IDL JSON unchanged")
	return cmd
}

func accountLabel(name string, writable, signer bool) string {
	switch {
	case writable && signer:
		return fmt.Sprintf("%s (mut, signer)", name)
	case writable:
		return fmt.Sprintf("%s (mut)", name)
	case signer:
		return fmt.Sprintf("%s (signer)", name)
	}
	return name
}
