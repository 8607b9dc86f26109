package anchor

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// IDL is an Anchor interface description (0.30+ layout).
type IDL struct {
	Address      string           `json:"address"`
	Metadata     IdlMetadata      `json:"metadata"`
	Instructions []IdlInstruction `json:"instructions"`
	Accounts     []IdlAccount     `json:"accounts,omitempty"`
	Types        []IdlTypeDef     `json:"types,omitempty"`
	Errors       []IdlError       `json:"errors,omitempty"`

	programID    solana.PublicKey
	instructions map[string]*IdlInstruction
	accounts     map[string]*IdlAccount
	errors       map[uint32]*IdlError
}

type IdlMetadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Spec        string `json:"spec"`
	Description string `json:"description,omitempty"`
}

type IdlInstruction struct {
	Name          string                  `json:"name"`
	Discriminator Discriminator           `json:"discriminator"`
	Accounts      []IdlInstructionAccount `json:"accounts"`
	Args          []IdlField              `json:"args"`
}

// IdlInstructionAccount is either a single account or, when Accounts is
// set, a named group that is flattened in declaration order.
type IdlInstructionAccount struct {
	Name     string                  `json:"name"`
	Writable bool                    `json:"writable,omitempty"`
	Signer   bool                    `json:"signer,omitempty"`
	Optional bool                    `json:"optional,omitempty"`
	Address  string                  `json:"address,omitempty"`
	Accounts []IdlInstructionAccount `json:"accounts,omitempty"`
}

type IdlAccount struct {
	Name          string        `json:"name"`
	Discriminator Discriminator `json:"discriminator"`
}

// IdlField keeps the type expression raw; typed clients own the layouts.
type IdlField struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

type IdlTypeDef struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

type IdlError struct {
	Code uint32 `json:"code"`
	Name string `json:"name"`
	Msg  string `json:"msg,omitempty"`
}

// ParseIDL decodes and validates an IDL document. Missing discriminators are
// derived from the instruction and account names.
func ParseIDL(data []byte) (*IDL, error) {
	var idl IDL
	if err := json.Unmarshal(data, &idl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDL, err)
	}
	if err := idl.index(); err != nil {
		return nil, err
	}
	return &idl, nil
}

func (idl *IDL) index() error {
	programID, err := solana.PublicKeyFromBase58(idl.Address)
	if err != nil {
		return fmt.Errorf("%w: address %q: %v", ErrInvalidIDL, idl.Address, err)
	}
	idl.programID = programID

	idl.instructions = make(map[string]*IdlInstruction, len(idl.Instructions))
	for i := range idl.Instructions {
		ix := &idl.Instructions[i]
		if ix.Name == "" {
			return fmt.Errorf("%w: instruction %d has no name", ErrInvalidIDL, i)
		}
		if _, dup := idl.instructions[ix.Name]; dup {
			return fmt.Errorf("%w: duplicate instruction %q", ErrInvalidIDL, ix.Name)
		}
		if ix.Discriminator.IsZero() {
			ix.Discriminator = InstructionDiscriminator(ix.Name)
		}
		ix.Accounts = flattenAccounts(ix.Accounts)
		for _, acc := range ix.Accounts {
			if acc.Address == "" {
				continue
			}
			if _, err := solana.PublicKeyFromBase58(acc.Address); err != nil {
				return fmt.Errorf("%w: %s.%s address: %v", ErrInvalidIDL, ix.Name, acc.Name, err)
			}
		}
		idl.instructions[ix.Name] = ix
	}

	idl.accounts = make(map[string]*IdlAccount, len(idl.Accounts))
	for i := range idl.Accounts {
		acc := &idl.Accounts[i]
		if acc.Name == "" {
			return fmt.Errorf("%w: account %d has no name", ErrInvalidIDL, i)
		}
		if _, dup := idl.accounts[acc.Name]; dup {
			return fmt.Errorf("%w: duplicate account %q", ErrInvalidIDL, acc.Name)
		}
		if acc.Discriminator.IsZero() {
			acc.Discriminator = AccountDiscriminator(acc.Name)
		}
		idl.accounts[acc.Name] = acc
	}

	idl.errors = make(map[uint32]*IdlError, len(idl.Errors))
	for i := range idl.Errors {
		idl.errors[idl.Errors[i].Code] = &idl.Errors[i]
	}
	return nil
}

func flattenAccounts(in []IdlInstructionAccount) []IdlInstructionAccount {
	out := make([]IdlInstructionAccount, 0, len(in))
	for _, acc := range in {
		if len(acc.Accounts) > 0 {
			out = append(out, flattenAccounts(acc.Accounts)...)
			continue
		}
		out = append(out, acc)
	}
	return out
}

// ProgramID returns the program address declared by the IDL.
func (idl *IDL) ProgramID() solana.PublicKey { return idl.programID }

// Instruction looks up an instruction by its IDL name.
func (idl *IDL) Instruction(name string) (*IdlInstruction, error) {
	ix, ok := idl.instructions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstruction, name)
	}
	return ix, nil
}

// Account looks up an account type by its IDL name.
func (idl *IDL) Account(name string) (*IdlAccount, error) {
	acc, ok := idl.accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, name)
	}
	return acc, nil
}

// Error resolves a custom program error code, or nil if the IDL doesn't list it.
func (idl *IDL) Error(code uint32) *ProgramError {
	e, ok := idl.errors[code]
	if !ok {
		return nil
	}
	return &ProgramError{Code: e.Code, Name: e.Name, Msg: e.Msg}
}

// InstructionNames returns instruction names in declaration order.
func (idl *IDL) InstructionNames() []string {
	names := make([]string, 0, len(idl.Instructions))
	for _, ix := range idl.Instructions {
		names = append(names, ix.Name)
	}
	return names
}
