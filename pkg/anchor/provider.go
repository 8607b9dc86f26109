package anchor

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

// RPCClient is the subset of *rpc.Client the program client relies on.
type RPCClient interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error)
	GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey, opts *solanarpc.GetMultipleAccountsOpts) (*solanarpc.GetMultipleAccountsResult, error)
	GetProgramAccountsWithOpts(ctx context.Context, program solana.PublicKey, opts *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error)
	GetLatestBlockhash(ctx context.Context, commitment solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error)
}

var _ RPCClient = (*solanarpc.Client)(nil)

// Provider bundles a ledger connection with the wallet that pays for and
// signs transactions.
type Provider interface {
	Connection() RPCClient
	PublicKey() solana.PublicKey
	Commitment() solanarpc.CommitmentType
	Send(ctx context.Context, ixs []solana.Instruction, signers ...solana.PrivateKey) (solana.Signature, error)
}

// WalletProvider is the default Provider backed by a local keypair.
type WalletProvider struct {
	conn          RPCClient
	wallet        solana.PrivateKey
	commitment    solanarpc.CommitmentType
	skipPreflight bool
}

// ProviderOption configures a WalletProvider.
type ProviderOption func(*WalletProvider)

// WithProviderCommitment sets the commitment used for reads and preflight.
func WithProviderCommitment(commitment solanarpc.CommitmentType) ProviderOption {
	return func(p *WalletProvider) { p.commitment = commitment }
}

// WithSkipPreflight disables transaction simulation before submission.
func WithSkipPreflight(skip bool) ProviderOption {
	return func(p *WalletProvider) { p.skipPreflight = skip }
}

// NewProvider creates a provider. A nil wallet yields a read-only provider.
func NewProvider(conn RPCClient, wallet solana.PrivateKey, opts ...ProviderOption) (*WalletProvider, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: nil connection", ErrInvalidProvider)
	}
	if wallet != nil && len(wallet) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: malformed wallet key", ErrInvalidProvider)
	}
	p := &WalletProvider{
		conn:       conn,
		wallet:     wallet,
		commitment: solanarpc.CommitmentConfirmed,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *WalletProvider) Connection() RPCClient { return p.conn }

// PublicKey returns the wallet address, or the zero key when read-only.
func (p *WalletProvider) PublicKey() solana.PublicKey {
	if p.wallet == nil {
		return solana.PublicKey{}
	}
	return p.wallet.PublicKey()
}

func (p *WalletProvider) Commitment() solanarpc.CommitmentType { return p.commitment }

// Send builds a transaction paid by the wallet, signs it with the wallet and
// any extra signers, and submits it once.
func (p *WalletProvider) Send(ctx context.Context, ixs []solana.Instruction, signers ...solana.PrivateKey) (solana.Signature, error) {
	if p.wallet == nil {
		return solana.Signature{}, ErrReadOnlyProvider
	}
	recent, err := p.conn.GetLatestBlockhash(ctx, p.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	tx, err := solana.NewTransaction(ixs, recent.Value.Blockhash, solana.TransactionPayer(p.wallet.PublicKey()))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	keys := make(map[solana.PublicKey]solana.PrivateKey, len(signers)+1)
	keys[p.wallet.PublicKey()] = p.wallet
	for _, s := range signers {
		keys[s.PublicKey()] = s
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if k, ok := keys[key]; ok {
			return &k
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	return p.conn.SendTransactionWithOpts(ctx, tx, solanarpc.TransactionOpts{
		SkipPreflight:       p.skipPreflight,
		PreflightCommitment: p.commitment,
	})
}
