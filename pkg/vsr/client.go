package vsr

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/metfin/vsr-sdk-go/pkg/anchor"
)

// ErrProgramIDMismatch is returned when an IDL describes a different program.
var ErrProgramIDMismatch = errors.New("idl address does not match VSRID")

// ErrAccountNotFound is returned when a requested account does not exist.
var ErrAccountNotFound = anchor.ErrAccountNotFound

// Client is a handle to the voter stake registry program. It wraps an anchor
// program client bound to VSRID and is immutable after Connect.
type Client struct {
	program *anchor.Program
	devnet  *bool
	logger  *zap.Logger
}

// Connect binds provider to the bundled IDL. devnet is optional and kept
// as given; the client does not interpret it.
func Connect(provider anchor.Provider, devnet *bool, opts ...Option) (*Client, error) {
	// the bundled IDL could also be fetched from chain, see ConnectFromChain
	idl, err := LoadIDL()
	if err != nil {
		return nil, err
	}
	return newClient(idl, provider, devnet, opts)
}

// ConnectFromChain is Connect with the IDL read from the program's on-chain
// IDL account instead of the bundled copy.
func ConnectFromChain(ctx context.Context, provider anchor.Provider, devnet *bool, opts ...Option) (*Client, error) {
	if provider == nil || provider.Connection() == nil {
		return nil, fmt.Errorf("%w: nil provider", anchor.ErrInvalidProvider)
	}
	idl, err := anchor.FetchIDL(ctx, provider.Connection(), VSRID, provider.Commitment())
	if err != nil {
		return nil, err
	}
	return newClient(idl, provider, devnet, opts)
}

func newClient(idl *anchor.IDL, provider anchor.Provider, devnet *bool, opts []Option) (*Client, error) {
	if idl.ProgramID() != VSRID {
		return nil, fmt.Errorf("%w: %s", ErrProgramIDMismatch, idl.ProgramID())
	}

	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	programOpts := []anchor.Option{anchor.WithLogger(cfg.logger)}
	if cfg.commitment != "" {
		programOpts = append(programOpts, anchor.WithCommitment(cfg.commitment))
	}
	program, err := anchor.NewProgram(idl, provider, programOpts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		program: program,
		devnet:  copyBool(devnet),
		logger:  program.Logger(),
	}
	c.logger.Debug("connected", zap.Boolp("devnet", devnet))
	return c, nil
}

// Program returns the underlying anchor program client.
func (c *Client) Program() *anchor.Program { return c.program }

// ProgramID returns VSRID.
func (c *Client) ProgramID() solana.PublicKey { return c.program.ProgramID() }

// Devnet returns the network flag passed to Connect, possibly nil. The
// returned pointer is a copy; mutating it does not affect the client.
func (c *Client) Devnet() *bool { return copyBool(c.devnet) }

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func (c *Client) Provider() anchor.Provider { return c.program.Provider() }

// Logger returns the logger used by the client.
func (c *Client) Logger() *zap.Logger { return c.logger }

// Send submits instructions through the provider.
func (c *Client) Send(ctx context.Context, ixs []solana.Instruction, signers ...solana.PrivateKey) (solana.Signature, error) {
	sig, err := c.Provider().Send(ctx, ixs, signers...)
	if err != nil {
		return solana.Signature{}, err
	}
	c.logger.Info("sent transaction", zap.Stringer("signature", sig), zap.Int("instructions", len(ixs)))
	return sig, nil
}
