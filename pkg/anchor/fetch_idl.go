package anchor

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/klauspost/compress/zlib"
)

const idlSeed = "anchor:idl"

// idl account layout: discriminator(8) | authority(32) | len(u32 LE) | zlib(json)
const idlHeaderSize = DiscriminatorSize + solana.PublicKeyLength + 4

// IdlAddress returns the account where Anchor stores a program's IDL.
func IdlAddress(programID solana.PublicKey) (solana.PublicKey, error) {
	base, _, err := solana.FindProgramAddress([][]byte{}, programID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.CreateWithSeed(base, idlSeed, programID)
}

// FetchIDL reads and parses the IDL a program published on chain.
func FetchIDL(ctx context.Context, conn RPCClient, programID solana.PublicKey, commitment solanarpc.CommitmentType) (*IDL, error) {
	addr, err := IdlAddress(programID)
	if err != nil {
		return nil, fmt.Errorf("derive idl address: %w", err)
	}
	resp, err := conn.GetAccountInfoWithOpts(ctx, addr, &solanarpc.GetAccountInfoOpts{Commitment: commitment})
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: idl %s", ErrAccountNotFound, addr)
		}
		return nil, err
	}
	if resp == nil || resp.Value == nil {
		return nil, fmt.Errorf("%w: idl %s", ErrAccountNotFound, addr)
	}
	raw, err := DecodeIdlAccount(resp.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	return ParseIDL(raw)
}

// DecodeIdlAccount extracts and inflates the JSON document held by an IDL
// account.
func DecodeIdlAccount(data []byte) ([]byte, error) {
	if len(data) < idlHeaderSize {
		return nil, fmt.Errorf("%w: idl account too short (%d bytes)", ErrInvalidIDL, len(data))
	}
	n := binary.LittleEndian.Uint32(data[idlHeaderSize-4 : idlHeaderSize])
	if uint64(n) > uint64(len(data)-idlHeaderSize) {
		return nil, fmt.Errorf("%w: idl length %d exceeds account data", ErrInvalidIDL, n)
	}
	zr, err := zlib.NewReader(bytes.NewReader(data[idlHeaderSize : idlHeaderSize+int(n)]))
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrInvalidIDL, err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrInvalidIDL, err)
	}
	return raw, nil
}
