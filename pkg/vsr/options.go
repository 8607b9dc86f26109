package vsr

import (
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

type config struct {
	commitment solanarpc.CommitmentType
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*config)

// WithCommitment sets the commitment used for account reads. Defaults to the
// provider's commitment.
func WithCommitment(commitment solanarpc.CommitmentType) Option {
	return func(c *config) { c.commitment = commitment }
}

// WithLogger sets a custom logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) { c.logger = logger }
}
