package vsr

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"

	"github.com/metfin/vsr-sdk-go/pkg/anchor"
)

type fakeRPC struct {
	accounts    map[solana.PublicKey]*solanarpc.Account
	programAccs solanarpc.GetProgramAccountsResult
	lastFilters []solanarpc.RPCFilter
}

func newFakeRPC() *fakeRPC {
	return &fakeRPC{accounts: map[solana.PublicKey]*solanarpc.Account{}}
}

func (f *fakeRPC) put(key solana.PublicKey, data []byte) {
	f.accounts[key] = &solanarpc.Account{Owner: VSRID, Data: solanarpc.DataBytesOrJSONFromBytes(data)}
}

func (f *fakeRPC) GetAccountInfoWithOpts(_ context.Context, account solana.PublicKey, _ *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
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
	f.lastFilters = opts.Filters
	return f.programAccs, nil
}

func (f *fakeRPC) GetLatestBlockhash(_ context.Context, _ solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
	return &solanarpc.GetLatestBlockhashResult{Value: &solanarpc.LatestBlockhashResult{}}, nil
}

func (f *fakeRPC) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
	return tx.Signatures[0], nil
}

func newTestClient(t *testing.T) (*Client, *fakeRPC) {
	t.Helper()
	rpc := newFakeRPC()
	provider, err := anchor.NewProvider(rpc, nil)
	require.NoError(t, err)
	client, err := Connect(provider, nil)
	require.NoError(t, err)
	return client, rpc
}

// encodeAccount serializes v behind disc the way the program stores it.
func encodeAccount(t *testing.T, disc anchor.Discriminator, v interface{}) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(v))
	return buf.Bytes()
}
