package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newVoterCmd(app *App) *cobra.Command {
	var now int64
	cmd := &cobra.Command{
		Use:   "voter <registrar> <authority>",
		Short: "Show a voter's deposits with locked and unlocked amounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registrarKey, err := parseKey("registrar", args[0])
			if err != nil {
				return err
			}
			authorityKey, err := parseKey("authority", args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			ts := now
			if !cmd.Flags().Changed("now") {
				registrar, err := app.client.GetRegistrar(ctx, registrarKey)
				if err != nil {
					return err
				}
				ts = registrar.ClockUnixTimestamp(time.Now().Unix())
			}

			addrs, err := app.client.VoterAddresses(registrarKey, authorityKey)
			if err != nil {
				return err
			}
			voter, err := app.client.GetVoterByAddress(ctx, addrs.Voter)
			if err != nil {
				return err
			}
			app.logger.Debug("voter loaded",
				zap.Stringer("voter", addrs.Voter),
				zap.Int("deposits", len(voter.ActiveDeposits())),
				zap.Int64("now", ts))
			return app.print(cmd.OutOrStdout(), newVoterView(addrs, voter, ts))
		},
	}
	cmd.Flags().Int64Var(&now, "now", 0, "unix time to evaluate lockups at (default: cluster-adjusted wall clock)")
	return cmd
}
