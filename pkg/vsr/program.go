package vsr

import (
	_ "embed"

	"github.com/gagliardetto/solana-go"

	"github.com/metfin/vsr-sdk-go/pkg/anchor"
)

// VSRID is the address of the deployed voter stake registry program.
var VSRID = solana.MustPublicKeyFromBase58("4Q6WW2ouZ6V3iaNm56MTd5n2tnTm4C5fiH8miFHnAFHo")

//go:embed idl/voter_stake_registry.json
var idlJSON []byte

// IDLJSON returns a copy of the bundled interface description document.
func IDLJSON() []byte {
	out := make([]byte, len(idlJSON))
	copy(out, idlJSON)
	return out
}

// LoadIDL parses the bundled IDL. Every call returns a fresh value.
func LoadIDL() (*anchor.IDL, error) {
	return anchor.ParseIDL(idlJSON)
}
