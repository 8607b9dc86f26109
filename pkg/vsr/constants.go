package vsr

// PDA seeds.
const (
	RegistrarSeed         = "registrar"
	VoterSeed             = "voter"
	VoterWeightRecordSeed = "voter-weight-record"
)

// Registrar and voter capacities fixed by the program's account layouts.
const (
	MaxVotingMints    = 4
	MaxDepositEntries = 32
)

// ScaledFactorBase is the fixed-point scale of vote weight factors (1e9).
const ScaledFactorBase uint64 = 1_000_000_000

const (
	SecsPerDay   int64 = 86_400
	SecsPerMonth int64 = 365 * SecsPerDay / 12
)

// Account sizes including the 8-byte discriminator.
const (
	RegistrarAccountSize         = 8 + 872
	VoterAccountSize             = 8 + 2720
	VoterWeightRecordAccountSize = 8 + 156
)

// Offsets into Voter account data, discriminator included.
const (
	voterAuthorityOffset = 8
	voterRegistrarOffset = 8 + 32
)
