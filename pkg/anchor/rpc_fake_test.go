package anchor

import (
	"context"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

// fakeRPC serves accounts from memory and records what it was asked.
type fakeRPC struct {
	accounts    map[solana.PublicKey]*solanarpc.Account
	programAccs solanarpc.GetProgramAccountsResult
	blockhash   solana.Hash
	sendErr     error

	lastFilters    []solanarpc.RPCFilter
	lastCommitment solanarpc.CommitmentType
	sent           []*solana.Transaction
}

func newFakeRPC() *fakeRPC {
	return &fakeRPC{accounts: map[solana.PublicKey]*solanarpc.Account{}}
}

func (f *fakeRPC) put(key, owner solana.PublicKey, data []byte) {
	f.accounts[key] = &solanarpc.Account{Owner: owner, Data: solanarpc.DataBytesOrJSONFromBytes(data)}
}

func (f *fakeRPC) GetAccountInfoWithOpts(_ context.Context, account solana.PublicKey, opts *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
	if opts != nil {
		f.lastCommitment = opts.Commitment
	}
	acc, ok := f.accounts[account]
	if !ok {
		return nil, solanarpc.ErrNotFound
	}
	return &solanarpc.GetAccountInfoResult{Value: acc}, nil
}

func (f *fakeRPC) GetMultipleAccountsWithOpts(_ context.Context, accounts []solana.PublicKey, _ *solanarpc.GetMultipleAccountsOpts) (*solanarpc.GetMultipleAccountsResult, error) {
	out := &solanarpc.GetMultipleAccountsResult{Value: make([]*solanarpc.Account, len(accounts))}
	for i, k := range accounts {
		out.Value[i] = f.accounts[k]
	}
	return out, nil
}

func (f *fakeRPC) GetProgramAccountsWithOpts(_ context.Context, _ solana.PublicKey, opts *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error) {
	if opts != nil {
		f.lastFilters = opts.Filters
	}
	return f.programAccs, nil
}

func (f *fakeRPC) GetLatestBlockhash(_ context.Context, _ solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
	return &solanarpc.GetLatestBlockhashResult{Value: &solanarpc.LatestBlockhashResult{Blockhash: f.blockhash}}, nil
}

func (f *fakeRPC) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	f.sent = append(f.sent, tx)
	return tx.Signatures[0], nil
}
