package anchor

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// Program binds an IDL to a provider. It is immutable after construction.
type Program struct {
	idl        *IDL
	programID  solana.PublicKey
	provider   Provider
	commitment solanarpc.CommitmentType
	logger     *zap.Logger
}

// Option configures a Program.
type Option func(*Program)

// WithCommitment overrides the provider commitment for account reads.
func WithCommitment(commitment solanarpc.CommitmentType) Option {
	return func(p *Program) { p.commitment = commitment }
}

// WithLogger sets a custom logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Program) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProgram creates a program client whose address is the IDL address.
func NewProgram(idl *IDL, provider Provider, opts ...Option) (*Program, error) {
	if idl == nil {
		return nil, fmt.Errorf("%w: nil idl", ErrInvalidIDL)
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrInvalidProvider)
	}
	if provider.Connection() == nil {
		return nil, fmt.Errorf("%w: nil connection", ErrInvalidProvider)
	}
	p := &Program{
		idl:        idl,
		programID:  idl.ProgramID(),
		provider:   provider,
		commitment: provider.Commitment(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(
		zap.String("program", idl.Metadata.Name),
		zap.Stringer("program_id", p.programID),
	)
	return p, nil
}

// ProgramID returns the program address.
func (p *Program) ProgramID() solana.PublicKey { return p.programID }

// IDL returns the interface description the program was built from.
func (p *Program) IDL() *IDL { return p.idl }

func (p *Program) Provider() Provider { return p.provider }

// Commitment returns the commitment used for account reads.
func (p *Program) Commitment() solanarpc.CommitmentType { return p.commitment }

func (p *Program) Logger() *zap.Logger { return p.logger }

// ProgramError resolves a custom error code returned by the program.
func (p *Program) ProgramError(code uint32) *ProgramError { return p.idl.Error(code) }
