package anchor

import "errors"

var (
	// ErrAccountNotFound is returned when an account does not exist on chain.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidProvider is returned when a provider or its connection is missing.
	ErrInvalidProvider = errors.New("invalid provider")
	// ErrReadOnlyProvider is returned by Send on a provider without a wallet.
	ErrReadOnlyProvider = errors.New("provider has no wallet")
	ErrInvalidIDL       = errors.New("invalid idl")

	ErrUnknownInstruction    = errors.New("unknown instruction")
	ErrUnknownAccount        = errors.New("unknown account type")
	ErrMissingAccount        = errors.New("missing instruction account")
	ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")
)

// ProgramError is a custom program error resolved through the IDL.
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string {
	if e.Msg == "" {
		return e.Name
	}
	return e.Name + ": " + e.Msg
}
