package vsr

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metfin/vsr-sdk-go/pkg/anchor"
)

func TestGetRegistrar(t *testing.T) {
	client, rpc := newTestClient(t)
	ctx := context.Background()
	addr := solana.NewWallet().PublicKey()
	want := &Registrar{Realm: solana.NewWallet().PublicKey(), Bump: 1}
	rpc.put(addr, encodeAccount(t, Account_Registrar, want))

	got, err := client.GetRegistrar(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = client.GetRegistrar(ctx, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = client.GetVoterByAddress(ctx, addr)
	assert.ErrorIs(t, err, anchor.ErrDiscriminatorMismatch)
}

func TestGetVoterAndWeightRecord(t *testing.T) {
	client, rpc := newTestClient(t)
	ctx := context.Background()
	registrar := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	addrs, err := client.VoterAddresses(registrar, authority)
	require.NoError(t, err)

	voter := &Voter{VoterAuthority: authority, Registrar: registrar, VoterBump: addrs.VoterBump}
	rpc.put(addrs.Voter, encodeAccount(t, Account_Voter, voter))
	record := &VoterWeightRecord{GoverningTokenOwner: authority, VoterWeight: 77}
	rpc.put(addrs.VoterWeightRecord, encodeAccount(t, Account_VoterWeightRecord, record))

	gotVoter, err := client.GetVoter(ctx, registrar, authority)
	require.NoError(t, err)
	assert.Equal(t, voter, gotVoter)

	gotRecord, err := client.GetVoterWeightRecord(ctx, registrar, authority)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), gotRecord.VoterWeight)

	_, err = client.GetVoter(ctx, registrar, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetVotersByRegistrar(t *testing.T) {
	client, rpc := newTestClient(t)
	registrar := solana.NewWallet().PublicKey()
	key := solana.NewWallet().PublicKey()
	voter := &Voter{Registrar: registrar}
	rpc.programAccs = solanarpc.GetProgramAccountsResult{
		{Pubkey: key, Account: &solanarpc.Account{Data: solanarpc.DataBytesOrJSONFromBytes(encodeAccount(t, Account_Voter, voter))}},
	}

	voters, err := client.GetVotersByRegistrar(context.Background(), registrar)
	require.NoError(t, err)
	require.Len(t, voters, 1)
	assert.Equal(t, key, voters[0].Address)
	assert.Equal(t, registrar, voters[0].Voter.Registrar)

	require.Len(t, rpc.lastFilters, 2)
	assert.Equal(t, uint64(40), rpc.lastFilters[1].Memcmp.Offset)
	assert.Equal(t, registrar.Bytes(), []byte(rpc.lastFilters[1].Memcmp.Bytes))

	t.Run("corrupt account", func(t *testing.T) {
		rpc.programAccs = solanarpc.GetProgramAccountsResult{
			{Pubkey: key, Account: &solanarpc.Account{Data: solanarpc.DataBytesOrJSONFromBytes([]byte{1, 2, 3})}},
		}
		_, err := client.GetVotersByRegistrar(context.Background(), registrar)
		assert.ErrorIs(t, err, anchor.ErrDiscriminatorMismatch)
	})
}

func TestGetVaultBalance(t *testing.T) {
	client, rpc := newTestClient(t)
	voter := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	vault, err := FindVaultAddress(voter, mint)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBinEncoder(buf).Encode(&token.Account{
		Mint:   mint,
		Owner:  voter,
		Amount: 31337,
	}))
	rpc.put(vault, buf.Bytes())

	balance, err := client.GetVaultBalance(context.Background(), voter, mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), balance)

	_, err = client.GetVaultBalance(context.Background(), voter, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
