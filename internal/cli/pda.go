package cli

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/metfin/vsr-sdk-go/pkg/vsr"
)

type registrarPDAView struct {
	Registrar string `yaml:"registrar" json:"registrar"`
	Bump      uint8  `yaml:"bump" json:"bump"`
}

type voterPDAView struct {
	Voter                 string `yaml:"voter" json:"voter"`
	VoterBump             uint8  `yaml:"voter_bump" json:"voter_bump"`
	VoterWeightRecord     string `yaml:"voter_weight_record" json:"voter_weight_record"`
	VoterWeightRecordBump uint8  `yaml:"voter_weight_record_bump" json:"voter_weight_record_bump"`
	Vault                 string `yaml:"vault,omitempty" json:"vault,omitempty"`
}

func newPdaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pda",
		Short: "Derive program addresses",
	}
	cmd.AddCommand(newPdaRegistrarCmd(app), newPdaVoterCmd(app))
	return cmd
}

func newPdaRegistrarCmd(app *App) *cobra.Command {
	var realm, mint string
	cmd := &cobra.Command{
		Use:   "registrar",
		Short: "Derive the registrar address of a realm and governing mint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			realmKey, err := parseKey("realm", realm)
			if err != nil {
				return err
			}
			mintKey, err := parseKey("mint", mint)
			if err != nil {
				return err
			}
			addr, bump, err := app.client.RegistrarAddress(realmKey, mintKey)
			if err != nil {
				return err
			}
			return app.print(cmd.OutOrStdout(), registrarPDAView{Registrar: addr.String(), Bump: bump})
		},
	}
	cmd.Flags().StringVar(&realm, "realm", "", "realm address")
	cmd.Flags().StringVar(&mint, "mint", "", "realm governing token mint")
	_ = cmd.MarkFlagRequired("realm")
	_ = cmd.MarkFlagRequired("mint")
	return cmd
}

func newPdaVoterCmd(app *App) *cobra.Command {
	var registrar, authority, mint string
	cmd := &cobra.Command{
		Use:   "voter",
		Short: "Derive voter, voter weight record and optional vault addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registrarKey, err := parseKey("registrar", registrar)
			if err != nil {
				return err
			}
			authorityKey, err := parseKey("authority", authority)
			if err != nil {
				return err
			}
			addrs, err := app.client.VoterAddresses(registrarKey, authorityKey)
			if err != nil {
				return err
			}
			view := voterPDAView{
				Voter:                 addrs.Voter.String(),
				VoterBump:             addrs.VoterBump,
				VoterWeightRecord:     addrs.VoterWeightRecord.String(),
				VoterWeightRecordBump: addrs.VoterWeightRecordBump,
			}
			if mint != "" {
				mintKey, err := parseKey("mint", mint)
				if err != nil {
					return err
				}
				vault, err := vsr.FindVaultAddress(addrs.Voter, mintKey)
				if err != nil {
					return err
				}
				view.Vault = vault.String()
			}
			return app.print(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().StringVar(&registrar, "registrar", "", "registrar address")
	cmd.Flags().StringVar(&authority, "authority", "", "voter authority")
	cmd.Flags().StringVar(&mint, "mint", "", "deposit mint, derives the vault when set")
	_ = cmd.MarkFlagRequired("registrar")
	_ = cmd.MarkFlagRequired("authority")
	return cmd
}

func parseKey(what, s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return key, nil
}
