package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metfin/vsr-sdk-go/internal/config"
	"github.com/metfin/vsr-sdk-go/pkg/anchor"
	"github.com/metfin/vsr-sdk-go/pkg/vsr"
)

// App carries state shared by all subcommands.
type App struct {
	cfgFile      string
	rpcURL       string
	outputFormat string
	devnet       bool

	cfg    *config.Config
	client *vsr.Client
	logger *zap.Logger
}

// SetClient lets tests inject a connected client; PersistentPreRunE then
// skips dialing.
func (a *App) SetClient(c *vsr.Client) { a.client = c }

// NewRootCmd builds the vsrctl command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "vsrctl",
		Short: "Inspect voter stake registry registrars and voters",
		Long: `vsrctl reads voter stake registry accounts from a Solana cluster,
derives program addresses and prints the bundled program interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is ~/.vsr/config.yaml)")
	root.PersistentFlags().StringVar(&app.rpcURL, "rpc-url", "", "RPC endpoint, overrides config")
	root.PersistentFlags().StringVarP(&app.outputFormat, "output", "o", "", "output format: yaml or json")
	root.PersistentFlags().BoolVar(&app.devnet, "devnet", false, "mark the client as targeting devnet")

	root.AddCommand(
		newVersionCmd(app),
		newIdlCmd(app),
		newPdaCmd(app),
		newRegistrarCmd(app),
		newVoterCmd(app),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.rpcURL != "" {
		cfg.RPCURL = a.rpcURL
	}
	if a.outputFormat != "" {
		cfg.Output = a.outputFormat
	}
	if cmd.Flags().Changed("devnet") {
		cfg.Devnet = &a.devnet
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger, err = cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
	}
	if a.client != nil {
		return nil
	}

	var wallet solana.PrivateKey
	if cfg.Keypair != "" {
		wallet, err = solana.PrivateKeyFromSolanaKeygenFile(cfg.Keypair)
		if err != nil {
			return fmt.Errorf("read keypair: %w", err)
		}
	}
	commitment := solanarpc.CommitmentType(cfg.Commitment)
	provider, err := anchor.NewProvider(solanarpc.New(cfg.RPCURL), wallet, anchor.WithProviderCommitment(commitment))
	if err != nil {
		return err
	}
	a.client, err = vsr.Connect(provider, cfg.Devnet, vsr.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Debug("client ready", zap.String("rpc_url", cfg.RPCURL), zap.Stringer("program_id", a.client.ProgramID()))
	return nil
}

// Execute runs vsrctl with os.Args.
func Execute() {
	app := &App{}
	if err := NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if app.logger != nil {
		_ = app.logger.Sync()
	}
}

func (a *App) print(w io.Writer, v interface{}) error {
	return writeOutput(w, a.cfg.Output, v)
}
