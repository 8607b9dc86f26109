package anchor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProgramAddress = "4Q6WW2ouZ6V3iaNm56MTd5n2tnTm4C5fiH8miFHnAFHo"

const testIDL = `{
  "address": "4Q6WW2ouZ6V3iaNm56MTd5n2tnTm4C5fiH8miFHnAFHo",
  "metadata": {"name": "counter", "version": "0.1.0", "spec": "0.1.0"},
  "instructions": [
    {
      "name": "increment",
      "accounts": [
        {"name": "counter", "writable": true},
        {"name": "authority", "signer": true},
        {"name": "observer", "optional": true},
        {"name": "system_program", "address": "11111111111111111111111111111111"}
      ],
      "args": [{"name": "by", "type": "u64"}, {"name": "note", "type": {"option": "u8"}}]
    },
    {
      "name": "reset",
      "discriminator": [1, 2, 3, 4, 5, 6, 7, 8],
      "accounts": [
        {"name": "group", "accounts": [{"name": "counter", "writable": true}, {"name": "authority", "signer": true}]}
      ],
      "args": []
    }
  ],
  "accounts": [{"name": "Counter"}],
  "errors": [{"code": 6000, "name": "Overflow", "msg": "Counter overflow"}]
}`

func mustParseTestIDL(t *testing.T) *IDL {
	t.Helper()
	idl, err := ParseIDL([]byte(testIDL))
	require.NoError(t, err)
	return idl
}

func TestParseIDL(t *testing.T) {
	idl := mustParseTestIDL(t)

	assert.Equal(t, testProgramAddress, idl.ProgramID().String())
	assert.Equal(t, "counter", idl.Metadata.Name)
	assert.Equal(t, []string{"increment", "reset"}, idl.InstructionNames())

	t.Run("derives missing instruction discriminator", func(t *testing.T) {
		ix, err := idl.Instruction("increment")
		require.NoError(t, err)
		assert.Equal(t, InstructionDiscriminator("increment"), ix.Discriminator)
	})

	t.Run("keeps explicit discriminator", func(t *testing.T) {
		ix, err := idl.Instruction("reset")
		require.NoError(t, err)
		assert.Equal(t, Discriminator{1, 2, 3, 4, 5, 6, 7, 8}, ix.Discriminator)
	})

	t.Run("flattens account groups", func(t *testing.T) {
		ix, err := idl.Instruction("reset")
		require.NoError(t, err)
		require.Len(t, ix.Accounts, 2)
		assert.Equal(t, "counter", ix.Accounts[0].Name)
		assert.Equal(t, "authority", ix.Accounts[1].Name)
	})

	t.Run("derives account discriminator", func(t *testing.T) {
		acc, err := idl.Account("Counter")
		require.NoError(t, err)
		assert.Equal(t, AccountDiscriminator("Counter"), acc.Discriminator)
	})

	t.Run("unknown lookups", func(t *testing.T) {
		_, err := idl.Instruction("nope")
		assert.ErrorIs(t, err, ErrUnknownInstruction)
		_, err = idl.Account("Nope")
		assert.ErrorIs(t, err, ErrUnknownAccount)
	})

	t.Run("errors", func(t *testing.T) {
		perr := idl.Error(6000)
		require.NotNil(t, perr)
		assert.Equal(t, "Overflow: Counter overflow", perr.Error())
		assert.Nil(t, idl.Error(6001))
	})
}

func TestParseIDL_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":        `{`,
		"bad address":     `{"address": "not-a-key", "instructions": []}`,
		"unnamed ix":      `{"address": "` + testProgramAddress + `", "instructions": [{"accounts": [], "args": []}]}`,
		"duplicate ix":    `{"address": "` + testProgramAddress + `", "instructions": [{"name": "a"}, {"name": "a"}]}`,
		"duplicate acct":  `{"address": "` + testProgramAddress + `", "instructions": [], "accounts": [{"name": "A"}, {"name": "A"}]}`,
		"short disc":      `{"address": "` + testProgramAddress + `", "instructions": [{"name": "a", "discriminator": [1, 2]}]}`,
		"bad fixed addr":  `{"address": "` + testProgramAddress + `", "instructions": [{"name": "a", "accounts": [{"name": "x", "address": "zz"}]}]}`,
		"disc byte range": `{"address": "` + testProgramAddress + `", "instructions": [{"name": "a", "discriminator": [1, 2, 3, 4, 5, 6, 7, 300]}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIDL([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidIDL)
		})
	}
}

func TestDiscriminator_JSON(t *testing.T) {
	d := InstructionDiscriminator("create_registrar")
	assert.Equal(t, Discriminator{132, 235, 36, 49, 139, 66, 202, 69}, d)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "[132,235,36,49,139,66,202,69]", string(raw))

	var back Discriminator
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)
}

func TestAccountDiscriminator(t *testing.T) {
	assert.Equal(t, Discriminator{193, 202, 205, 51, 78, 168, 150, 128}, AccountDiscriminator("Registrar"))
	assert.Equal(t, Discriminator{241, 93, 35, 191, 254, 147, 17, 202}, AccountDiscriminator("Voter"))
}
