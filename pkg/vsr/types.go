package vsr

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/metfin/vsr-sdk-go/pkg/anchor"
)

// Account type names as declared in the IDL.
const (
	AccountRegistrar         = "Registrar"
	AccountVoter             = "Voter"
	AccountVoterWeightRecord = "VoterWeightRecord"
)

var (
	Account_Registrar = anchor.AccountDiscriminator(AccountRegistrar)
	Account_Voter     = anchor.AccountDiscriminator(AccountVoter)
	// spl-governance addin records carry a fixed ascii discriminator.
	Account_VoterWeightRecord = anchor.Discriminator{'2', 'e', 'f', '9', '9', 'b', '4', 'b'}
)

// LockupKind selects how a deposit unlocks over time.
type LockupKind uint8

const (
	LockupKindNone LockupKind = iota
	LockupKindDaily
	LockupKindMonthly
	LockupKindCliff
	LockupKindConstant
)

func (k LockupKind) String() string {
	switch k {
	case LockupKindNone:
		return "none"
	case LockupKindDaily:
		return "daily"
	case LockupKindMonthly:
		return "monthly"
	case LockupKindCliff:
		return "cliff"
	case LockupKindConstant:
		return "constant"
	}
	return fmt.Sprintf("LockupKind(%d)", uint8(k))
}

// ParseLockupKind is the inverse of LockupKind.String.
func ParseLockupKind(s string) (LockupKind, error) {
	for k := LockupKindNone; k <= LockupKindConstant; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown lockup kind %q", s)
}

// PeriodSecs returns the length of one lockup period; zero for None.
func (k LockupKind) PeriodSecs() int64 {
	switch k {
	case LockupKindDaily, LockupKindCliff, LockupKindConstant:
		return SecsPerDay
	case LockupKindMonthly:
		return SecsPerMonth
	}
	return 0
}

// Lockup describes the locking schedule of a deposit entry.
type Lockup struct {
	StartTs  int64
	EndTs    int64
	Kind     LockupKind
	Reserved [15]uint8
}

// DepositEntry is one of a voter's deposit slots.
type DepositEntry struct {
	Lockup                      Lockup
	AmountDepositedNative       uint64
	AmountInitiallyLockedNative uint64
	IsUsed                      bool
	AllowClawback               bool
	VotingMintConfigIdx         uint8
	Reserved                    [29]uint8
}

// VotingMintConfig configures how deposits of one mint turn into vote weight.
type VotingMintConfig struct {
	Mint                                 solana.PublicKey
	GrantAuthority                       solana.PublicKey
	BaselineVoteWeightScaledFactor       uint64
	MaxExtraLockupVoteWeightScaledFactor uint64
	LockupSaturationSecs                 uint64
	DigitShift                           int8
	Reserved1                            [7]uint8
	Reserved2                            [7]uint64
}

// InUse reports whether the slot holds a configured mint.
func (m *VotingMintConfig) InUse() bool { return !m.Mint.IsZero() }

// Registrar is the per-realm configuration account.
type Registrar struct {
	GovernanceProgramId     solana.PublicKey
	Realm                   solana.PublicKey
	RealmGoverningTokenMint solana.PublicKey
	RealmAuthority          solana.PublicKey
	Reserved1               [32]uint8
	VotingMints             [MaxVotingMints]VotingMintConfig
	TimeOffset              int64
	Bump                    uint8
	Reserved2               [7]uint8
	Reserved3               [11]uint64
}

// VotingMintConfigIndex returns the slot configured for mint, or -1.
func (r *Registrar) VotingMintConfigIndex(mint solana.PublicKey) int {
	for i := range r.VotingMints {
		if r.VotingMints[i].InUse() && r.VotingMints[i].Mint == mint {
			return i
		}
	}
	return -1
}

// ClockUnixTimestamp applies the registrar's time offset to a unix time.
func (r *Registrar) ClockUnixTimestamp(unix int64) int64 { return unix + r.TimeOffset }

// Voter holds a voter's deposits within one registrar.
type Voter struct {
	VoterAuthority        solana.PublicKey
	Registrar             solana.PublicKey
	Deposits              [MaxDepositEntries]DepositEntry
	VoterBump             uint8
	VoterWeightRecordBump uint8
	Reserved              [94]uint8
}

// ActiveDeposits returns the indexes of used deposit entries.
func (v *Voter) ActiveDeposits() []int {
	var out []int
	for i := range v.Deposits {
		if v.Deposits[i].IsUsed {
			out = append(out, i)
		}
	}
	return out
}

// VoterWeightAction is the governance action a weight record was built for.
type VoterWeightAction uint8

const (
	VoterWeightActionCastVote VoterWeightAction = iota
	VoterWeightActionCommentProposal
	VoterWeightActionCreateGovernance
	VoterWeightActionCreateProposal
	VoterWeightActionSignOffProposal
)

// VoterWeightRecord is the spl-governance addin record the program maintains.
type VoterWeightRecord struct {
	Realm               solana.PublicKey
	GoverningTokenMint  solana.PublicKey
	GoverningTokenOwner solana.PublicKey
	VoterWeight         uint64
	VoterWeightExpiry   *uint64            `bin:"optional"`
	WeightAction        *VoterWeightAction `bin:"optional"`
	WeightActionTarget  *solana.PublicKey  `bin:"optional"`
	Reserved            [8]uint8
}

// ParseAccount_Registrar decodes raw Registrar account data.
func ParseAccount_Registrar(data []byte) (*Registrar, error) {
	out := new(Registrar)
	if err := anchor.DecodeAccountData(Account_Registrar, data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseAccount_Voter decodes raw Voter account data.
func ParseAccount_Voter(data []byte) (*Voter, error) {
	out := new(Voter)
	if err := anchor.DecodeAccountData(Account_Voter, data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseAccount_VoterWeightRecord decodes raw VoterWeightRecord account data.
func ParseAccount_VoterWeightRecord(data []byte) (*VoterWeightRecord, error) {
	out := new(VoterWeightRecord)
	if err := anchor.DecodeAccountData(Account_VoterWeightRecord, data, out); err != nil {
		return nil, err
	}
	return out, nil
}
