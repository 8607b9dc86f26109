package vsr

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/metfin/vsr-sdk-go/pkg/anchor"
)

// GetRegistrar fetches and decodes a registrar account.
func (c *Client) GetRegistrar(ctx context.Context, registrar solana.PublicKey) (*Registrar, error) {
	out := new(Registrar)
	if err := c.program.FetchAccount(ctx, AccountRegistrar, registrar, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVoter fetches the voter account of voterAuthority in registrar.
func (c *Client) GetVoter(ctx context.Context, registrar, voterAuthority solana.PublicKey) (*Voter, error) {
	voter, _, err := FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	return c.GetVoterByAddress(ctx, voter)
}

// GetVoterByAddress fetches and decodes a voter account.
func (c *Client) GetVoterByAddress(ctx context.Context, voter solana.PublicKey) (*Voter, error) {
	out := new(Voter)
	if err := c.program.FetchAccount(ctx, AccountVoter, voter, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVoterWeightRecord fetches the weight record of voterAuthority.
func (c *Client) GetVoterWeightRecord(ctx context.Context, registrar, voterAuthority solana.PublicKey) (*VoterWeightRecord, error) {
	addr, _, err := FindVoterWeightRecordAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	out := new(VoterWeightRecord)
	if err := c.program.FetchAccount(ctx, AccountVoterWeightRecord, addr, out); err != nil {
		return nil, err
	}
	return out, nil
}

// KeyedVoter is a decoded voter account with its address.
type KeyedVoter struct {
	Address solana.PublicKey
	Voter   *Voter
}

// GetVotersByRegistrar returns every voter account of a registrar.
func (c *Client) GetVotersByRegistrar(ctx context.Context, registrar solana.PublicKey) ([]KeyedVoter, error) {
	accs, err := c.program.AllAccounts(ctx, AccountVoter, anchor.MemcmpFilter(voterRegistrarOffset, registrar.Bytes()))
	if err != nil {
		return nil, err
	}
	voters := make([]KeyedVoter, 0, len(accs))
	for _, acc := range accs {
		v, err := ParseAccount_Voter(acc.Data)
		if err != nil {
			return nil, fmt.Errorf("decode voter %s: %w", acc.Pubkey, err)
		}
		voters = append(voters, KeyedVoter{Address: acc.Pubkey, Voter: v})
	}
	c.logger.Debug("fetched voters", zap.Stringer("registrar", registrar), zap.Int("count", len(voters)))
	return voters, nil
}

// GetVaultBalance returns the token balance held in a voter's vault for mint.
func (c *Client) GetVaultBalance(ctx context.Context, voter, mint solana.PublicKey) (uint64, error) {
	vault, err := FindVaultAddress(voter, mint)
	if err != nil {
		return 0, err
	}
	data, err := c.program.FetchMultipleAccounts(ctx, []solana.PublicKey{vault})
	if err != nil {
		return 0, err
	}
	if len(data) == 0 || data[0] == nil {
		return 0, fmt.Errorf("%w: vault %s", ErrAccountNotFound, vault)
	}
	var acc token.Account
	if err := bin.NewBinDecoder(data[0]).Decode(&acc); err != nil {
		return 0, fmt.Errorf("decode vault %s: %w", vault, err)
	}
	return acc.Amount, nil
}
