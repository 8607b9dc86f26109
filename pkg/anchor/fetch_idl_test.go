package anchor

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idlAccountData(t *testing.T, doc []byte) []byte {
	t.Helper()
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, err := zw.Write(doc)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data := make([]byte, idlHeaderSize, idlHeaderSize+compressed.Len())
	copy(data[8:40], solana.NewWallet().PublicKey().Bytes())
	binary.LittleEndian.PutUint32(data[40:44], uint32(compressed.Len()))
	return append(data, compressed.Bytes()...)
}

func TestFetchIDL(t *testing.T) {
	programID := solana.MustPublicKeyFromBase58(testProgramAddress)
	addr, err := IdlAddress(programID)
	require.NoError(t, err)

	rpc := newFakeRPC()
	rpc.put(addr, programID, idlAccountData(t, []byte(testIDL)))

	idl, err := FetchIDL(context.Background(), rpc, programID, solanarpc.CommitmentFinalized)
	require.NoError(t, err)
	assert.Equal(t, programID, idl.ProgramID())
	assert.Equal(t, []string{"increment", "reset"}, idl.InstructionNames())
	assert.Equal(t, solanarpc.CommitmentFinalized, rpc.lastCommitment)

	t.Run("missing account", func(t *testing.T) {
		_, err := FetchIDL(context.Background(), newFakeRPC(), programID, solanarpc.CommitmentFinalized)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestDecodeIdlAccount(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := DecodeIdlAccount(make([]byte, 10))
		assert.ErrorIs(t, err, ErrInvalidIDL)
	})

	t.Run("length overflow", func(t *testing.T) {
		data := make([]byte, idlHeaderSize)
		binary.LittleEndian.PutUint32(data[40:44], 100)
		_, err := DecodeIdlAccount(data)
		assert.ErrorIs(t, err, ErrInvalidIDL)
	})

	t.Run("not zlib", func(t *testing.T) {
		data := make([]byte, idlHeaderSize, idlHeaderSize+4)
		binary.LittleEndian.PutUint32(data[40:44], 4)
		data = append(data, 1, 2, 3, 4)
		_, err := DecodeIdlAccount(data)
		assert.ErrorIs(t, err, ErrInvalidIDL)
	})

	t.Run("trailing slack ignored", func(t *testing.T) {
		data := append(idlAccountData(t, []byte(`{"a":1}`)), 0, 0, 0)
		raw, err := DecodeIdlAccount(data)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(raw))
	})
}
