package anchor

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Accounts maps IDL account names to addresses for one instruction.
type Accounts map[string]solana.PublicKey

// Instruction builds an instruction from its IDL entry. Account metas follow
// IDL order and flags; accounts with a fixed IDL address may be omitted, and
// omitted optional accounts resolve to the program ID. args must be a struct
// whose borsh layout matches the IDL args, or nil when there are none.
func (p *Program) Instruction(name string, args interface{}, accounts Accounts, remaining ...*solana.AccountMeta) (*solana.GenericInstruction, error) {
	ix, err := p.idl.Instruction(name)
	if err != nil {
		return nil, err
	}

	metas := make(solana.AccountMetaSlice, 0, len(ix.Accounts)+len(remaining))
	for _, acc := range ix.Accounts {
		key, ok := accounts[acc.Name]
		switch {
		case ok:
		case acc.Address != "":
			key = solana.MustPublicKeyFromBase58(acc.Address)
		case acc.Optional:
			key = p.programID
		default:
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingAccount, name, acc.Name)
		}
		metas = append(metas, solana.NewAccountMeta(key, acc.Writable, acc.Signer))
	}
	metas = append(metas, remaining...)

	data, err := EncodeInstructionData(ix.Discriminator, args)
	if err != nil {
		return nil, fmt.Errorf("encode %s args: %w", name, err)
	}

	p.logger.Debug("built instruction",
		zap.String("instruction", name),
		zap.Int("accounts", len(metas)),
		zap.Int("data_len", len(data)))
	return solana.NewInstruction(p.programID, metas, data), nil
}

// EncodeInstructionData returns the discriminator followed by borsh(args).
func EncodeInstructionData(disc Discriminator, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if args == nil {
		return buf.Bytes(), nil
	}
	if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
