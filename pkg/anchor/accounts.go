package anchor

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// KeyedAccountData is raw account data together with its address.
type KeyedAccountData struct {
	Pubkey solana.PublicKey
	Data   []byte
}

// DecodeAccount checks the discriminator of data against the IDL account
// type name and borsh-decodes the remainder into out.
func (p *Program) DecodeAccount(name string, data []byte, out interface{}) error {
	acc, err := p.idl.Account(name)
	if err != nil {
		return err
	}
	return DecodeAccountData(acc.Discriminator, data, out)
}

// DecodeAccountData is DecodeAccount without an IDL lookup.
func DecodeAccountData(disc Discriminator, data []byte, out interface{}) error {
	if len(data) < DiscriminatorSize {
		return fmt.Errorf("%w: data too short (%d bytes)", ErrDiscriminatorMismatch, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorSize], disc[:]) {
		return fmt.Errorf("%w: got %v, want %v", ErrDiscriminatorMismatch, data[:DiscriminatorSize], disc[:])
	}
	return bin.NewBorshDecoder(data[DiscriminatorSize:]).Decode(out)
}

// FetchAccount loads a single account and decodes it as the named type.
func (p *Program) FetchAccount(ctx context.Context, name string, address solana.PublicKey, out interface{}) error {
	data, err := p.fetchRaw(ctx, address)
	if err != nil {
		return err
	}
	if err := p.DecodeAccount(name, data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", name, address, err)
	}
	return nil
}

func (p *Program) fetchRaw(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	resp, err := p.provider.Connection().GetAccountInfoWithOpts(ctx, address, &solanarpc.GetAccountInfoOpts{
		Commitment: p.commitment,
	})
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
		}
		return nil, err
	}
	if resp == nil || resp.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	if resp.Value.Owner != p.programID {
		p.logger.Warn("account owned by another program",
			zap.Stringer("account", address),
			zap.Stringer("owner", resp.Value.Owner))
	}
	return resp.Value.Data.GetBinary(), nil
}

// FetchMultipleAccounts loads several accounts in one request. Missing
// accounts come back as nil entries at the same index.
func (p *Program) FetchMultipleAccounts(ctx context.Context, addresses []solana.PublicKey) ([][]byte, error) {
	if len(addresses) == 0 {
		return [][]byte{}, nil
	}
	multi, err := p.provider.Connection().GetMultipleAccountsWithOpts(ctx, addresses, &solanarpc.GetMultipleAccountsOpts{
		Commitment: p.commitment,
	})
	if err != nil {
		return nil, err
	}
	if multi == nil || multi.Value == nil {
		return nil, ErrAccountNotFound
	}
	out := make([][]byte, len(addresses))
	for i, acct := range multi.Value {
		if i >= len(out) || acct == nil {
			continue
		}
		out[i] = acct.Data.GetBinary()
	}
	return out, nil
}

// AllAccounts returns every program account of the named type, narrowed by
// additional filters. Offsets in filters include the discriminator.
func (p *Program) AllAccounts(ctx context.Context, name string, filters ...solanarpc.RPCFilter) ([]KeyedAccountData, error) {
	acc, err := p.idl.Account(name)
	if err != nil {
		return nil, err
	}
	all := append([]solanarpc.RPCFilter{MemcmpFilter(0, acc.Discriminator[:])}, filters...)
	accs, err := p.provider.Connection().GetProgramAccountsWithOpts(ctx, p.programID, &solanarpc.GetProgramAccountsOpts{
		Commitment: p.commitment,
		Filters:    all,
	})
	if err != nil {
		return nil, err
	}

	out := make([]KeyedAccountData, 0, len(accs))
	for _, a := range accs {
		if a == nil || a.Account == nil {
			continue
		}
		out = append(out, KeyedAccountData{Pubkey: a.Pubkey, Data: a.Account.Data.GetBinary()})
	}
	p.logger.Debug("listed program accounts", zap.String("account", name), zap.Int("count", len(out)))
	return out, nil
}

// MemcmpFilter constructs an RPC memcmp filter.
func MemcmpFilter(offset uint64, bytes []byte) solanarpc.RPCFilter {
	return solanarpc.RPCFilter{Memcmp: &solanarpc.RPCFilterMemcmp{Offset: offset, Bytes: bytes}}
}
