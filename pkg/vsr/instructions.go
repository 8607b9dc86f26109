package vsr

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/metfin/vsr-sdk-go/pkg/anchor"
)

// Instruction names as declared in the IDL.
const (
	InstructionCreateRegistrar          = "create_registrar"
	InstructionConfigureVotingMint      = "configure_voting_mint"
	InstructionCreateVoter              = "create_voter"
	InstructionCreateDepositEntry       = "create_deposit_entry"
	InstructionDeposit                  = "deposit"
	InstructionWithdraw                 = "withdraw"
	InstructionGrant                    = "grant"
	InstructionClawback                 = "clawback"
	InstructionCloseDepositEntry        = "close_deposit_entry"
	InstructionResetLockup              = "reset_lockup"
	InstructionInternalTransferLocked   = "internal_transfer_locked"
	InstructionInternalTransferUnlocked = "internal_transfer_unlocked"
	InstructionUpdateVoterWeightRecord  = "update_voter_weight_record"
	InstructionCloseVoter               = "close_voter"
	InstructionLogVoterInfo             = "log_voter_info"
	InstructionSetTimeOffset            = "set_time_offset"
)

// ScaledFactor converts a vote weight factor to the program's 1e9 fixed point.
func ScaledFactor(f float64) (uint64, error) {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid vote weight factor %v", f)
	}
	scaled := f * float64(ScaledFactorBase)
	if scaled >= math.MaxUint64 {
		return 0, fmt.Errorf("vote weight factor %v overflows", f)
	}
	return uint64(scaled), nil
}

type createRegistrarArgs struct {
	RegistrarBump uint8
}

// CreateRegistrar builds create_registrar for realm and its governing mint.
func (c *Client) CreateRegistrar(realm, governanceProgramID, realmGoverningTokenMint, realmAuthority, payer solana.PublicKey) (*solana.GenericInstruction, error) {
	registrar, bump, err := c.RegistrarAddress(realm, realmGoverningTokenMint)
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionCreateRegistrar, &createRegistrarArgs{RegistrarBump: bump}, anchor.Accounts{
		"registrar":                  registrar,
		"realm":                      realm,
		"governance_program_id":      governanceProgramID,
		"realm_governing_token_mint": realmGoverningTokenMint,
		"realm_authority":            realmAuthority,
		"payer":                      payer,
	})
}

// VotingMintParams configures one registrar voting mint slot. Factors are
// plain ratios, e.g. 1.0, and are scaled on encode.
type VotingMintParams struct {
	Index                          uint16
	DigitShift                     int8
	BaselineVoteWeightFactor       float64
	MaxExtraLockupVoteWeightFactor float64
	LockupSaturationSecs           uint64
	GrantAuthority                 *solana.PublicKey
}

type configureVotingMintArgs struct {
	Idx                                  uint16
	DigitShift                           int8
	BaselineVoteWeightScaledFactor       uint64
	MaxExtraLockupVoteWeightScaledFactor uint64
	LockupSaturationSecs                 uint64
	GrantAuthority                       *solana.PublicKey `bin:"optional"`
}

// ConfigureVotingMint builds configure_voting_mint. The program expects every
// configured mint as a remaining account, so mint is passed again followed by
// otherMints.
func (c *Client) ConfigureVotingMint(registrar, realmAuthority, mint solana.PublicKey, params VotingMintParams, otherMints ...solana.PublicKey) (*solana.GenericInstruction, error) {
	if params.Index >= MaxVotingMints {
		return nil, fmt.Errorf("voting mint index %d out of range", params.Index)
	}
	baseline, err := ScaledFactor(params.BaselineVoteWeightFactor)
	if err != nil {
		return nil, err
	}
	maxExtra, err := ScaledFactor(params.MaxExtraLockupVoteWeightFactor)
	if err != nil {
		return nil, err
	}

	remaining := make([]*solana.AccountMeta, 0, len(otherMints)+1)
	remaining = append(remaining, solana.Meta(mint))
	for _, m := range otherMints {
		remaining = append(remaining, solana.Meta(m))
	}

	return c.program.Instruction(InstructionConfigureVotingMint, &configureVotingMintArgs{
		Idx:                                  params.Index,
		DigitShift:                           params.DigitShift,
		BaselineVoteWeightScaledFactor:       baseline,
		MaxExtraLockupVoteWeightScaledFactor: maxExtra,
		LockupSaturationSecs:                 params.LockupSaturationSecs,
		GrantAuthority:                       params.GrantAuthority,
	}, anchor.Accounts{
		"registrar":       registrar,
		"realm_authority": realmAuthority,
		"mint":            mint,
	}, remaining...)
}

type createVoterArgs struct {
	VoterBump             uint8
	VoterWeightRecordBump uint8
}

// CreateVoter builds create_voter.
func (c *Client) CreateVoter(registrar, voterAuthority, payer solana.PublicKey) (*solana.GenericInstruction, error) {
	addrs, err := c.VoterAddresses(registrar, voterAuthority)
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionCreateVoter, &createVoterArgs{
		VoterBump:             addrs.VoterBump,
		VoterWeightRecordBump: addrs.VoterWeightRecordBump,
	}, anchor.Accounts{
		"registrar":           registrar,
		"voter":               addrs.Voter,
		"voter_authority":     voterAuthority,
		"voter_weight_record": addrs.VoterWeightRecord,
		"payer":               payer,
	})
}

// DepositEntryParams describes a new deposit entry.
type DepositEntryParams struct {
	Registrar         solana.PublicKey
	VoterAuthority    solana.PublicKey
	Payer             solana.PublicKey
	DepositMint       solana.PublicKey
	DepositEntryIndex uint8
	Kind              LockupKind
	// StartTs defaults to the current on-chain time when nil.
	StartTs       *uint64
	Periods       uint32
	AllowClawback bool
}

type createDepositEntryArgs struct {
	DepositEntryIndex uint8
	Kind              LockupKind
	StartTs           *uint64 `bin:"optional"`
	Periods           uint32
	AllowClawback     bool
}

// CreateDepositEntry builds create_deposit_entry.
func (c *Client) CreateDepositEntry(p DepositEntryParams) (*solana.GenericInstruction, error) {
	if err := checkDepositIndex(p.DepositEntryIndex); err != nil {
		return nil, err
	}
	voter, vault, err := c.voterAndVault(p.Registrar, p.VoterAuthority, p.DepositMint)
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionCreateDepositEntry, &createDepositEntryArgs{
		DepositEntryIndex: p.DepositEntryIndex,
		Kind:              p.Kind,
		StartTs:           p.StartTs,
		Periods:           p.Periods,
		AllowClawback:     p.AllowClawback,
	}, anchor.Accounts{
		"registrar":       p.Registrar,
		"voter":           voter,
		"vault":           vault,
		"voter_authority": p.VoterAuthority,
		"payer":           p.Payer,
		"deposit_mint":    p.DepositMint,
	})
}

type amountArgs struct {
	DepositEntryIndex uint8
	Amount            uint64
}

// Deposit builds deposit, moving amount from depositToken into the vault of
// the voter owned by voterAuthority.
func (c *Client) Deposit(registrar, voterAuthority, depositMint, depositToken, depositAuthority solana.PublicKey, depositEntryIndex uint8, amount uint64) (*solana.GenericInstruction, error) {
	if err := checkDepositIndex(depositEntryIndex); err != nil {
		return nil, err
	}
	voter, vault, err := c.voterAndVault(registrar, voterAuthority, depositMint)
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionDeposit, &amountArgs{
		DepositEntryIndex: depositEntryIndex,
		Amount:            amount,
	}, anchor.Accounts{
		"registrar":         registrar,
		"voter":             voter,
		"vault":             vault,
		"deposit_token":     depositToken,
		"deposit_authority": depositAuthority,
	})
}

// WithdrawParams describes a withdrawal to Destination.
type WithdrawParams struct {
	Registrar         solana.PublicKey
	VoterAuthority    solana.PublicKey
	TokenOwnerRecord  solana.PublicKey
	DepositMint       solana.PublicKey
	Destination       solana.PublicKey
	DepositEntryIndex uint8
	Amount            uint64
}

// Withdraw builds withdraw.
func (c *Client) Withdraw(p WithdrawParams) (*solana.GenericInstruction, error) {
	if err := checkDepositIndex(p.DepositEntryIndex); err != nil {
		return nil, err
	}
	addrs, err := c.VoterAddresses(p.Registrar, p.VoterAuthority)
	if err != nil {
		return nil, err
	}
	vault, err := FindVaultAddress(addrs.Voter, p.DepositMint)
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionWithdraw, &amountArgs{
		DepositEntryIndex: p.DepositEntryIndex,
		Amount:            p.Amount,
	}, anchor.Accounts{
		"registrar":           p.Registrar,
		"voter":               addrs.Voter,
		"voter_authority":     p.VoterAuthority,
		"token_owner_record":  p.TokenOwnerRecord,
		"voter_weight_record": addrs.VoterWeightRecord,
		"vault":               vault,
		"destination":         p.Destination,
	})
}

// GrantParams describes a locked grant to VoterAuthority, creating the voter
// when needed.
type GrantParams struct {
	Registrar      solana.PublicKey
	VoterAuthority solana.PublicKey
	DepositMint    solana.PublicKey
	DepositToken   solana.PublicKey
	TokenAuthority solana.PublicKey
	GrantAuthority solana.PublicKey
	// Payer defaults to TokenAuthority.
	Payer         solana.PublicKey
	Kind          LockupKind
	StartTs       *uint64
	Periods       uint32
	AllowClawback bool
	Amount        uint64
}

type grantArgs struct {
	VoterBump             uint8
	VoterWeightRecordBump uint8
	Kind                  LockupKind
	StartTs               *uint64 `bin:"optional"`
	Periods               uint32
	AllowClawback         bool
	Amount                uint64
}

// Grant builds grant.
func (c *Client) Grant(p GrantParams) (*solana.GenericInstruction, error) {
	addrs, err := c.VoterAddresses(p.Registrar, p.VoterAuthority)
	if err != nil {
		return nil, err
	}
	vault, err := FindVaultAddress(addrs.Voter, p.DepositMint)
	if err != nil {
		return nil, err
	}
	payer := p.Payer
	if payer.IsZero() {
		payer = p.TokenAuthority
	}
	return c.program.Instruction(InstructionGrant, &grantArgs{
		VoterBump:             addrs.VoterBump,
		VoterWeightRecordBump: addrs.VoterWeightRecordBump,
		Kind:                  p.Kind,
		StartTs:               p.StartTs,
		Periods:               p.Periods,
		AllowClawback:         p.AllowClawback,
		Amount:                p.Amount,
	}, anchor.Accounts{
		"registrar":           p.Registrar,
		"voter":               addrs.Voter,
		"voter_authority":     p.VoterAuthority,
		"voter_weight_record": addrs.VoterWeightRecord,
		"vault":               vault,
		"deposit_token":       p.DepositToken,
		"token_authority":     p.TokenAuthority,
		"grant_authority":     p.GrantAuthority,
		"payer":               payer,
		"deposit_mint":        p.DepositMint,
	})
}

type depositEntryIndexArgs struct {
	DepositEntryIndex uint8
}

// Clawback builds clawback, returning the locked part of a clawback-enabled
// deposit to destination.
func (c *Client) Clawback(registrar, realmAuthority, voterAuthority, depositMint, destination solana.PublicKey, depositEntryIndex uint8) (*solana.GenericInstruction, error) {
	if err := checkDepositIndex(depositEntryIndex); err != nil {
		return nil, err
	}
	voter, vault, err := c.voterAndVault(registrar, voterAuthority, depositMint)
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionClawback, &depositEntryIndexArgs{DepositEntryIndex: depositEntryIndex}, anchor.Accounts{
		"registrar":       registrar,
		"realm_authority": realmAuthority,
		"voter":           voter,
		"vault":           vault,
		"destination":     destination,
	})
}

// CloseDepositEntry builds close_deposit_entry.
func (c *Client) CloseDepositEntry(registrar, voterAuthority solana.PublicKey, depositEntryIndex uint8) (*solana.GenericInstruction, error) {
	if err := checkDepositIndex(depositEntryIndex); err != nil {
		return nil, err
	}
	voter, _, err := FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionCloseDepositEntry, &depositEntryIndexArgs{DepositEntryIndex: depositEntryIndex}, anchor.Accounts{
		"voter":           voter,
		"voter_authority": voterAuthority,
	})
}

type resetLockupArgs struct {
	DepositEntryIndex uint8
	Kind              LockupKind
	Periods           uint32
}

// ResetLockup builds reset_lockup.
func (c *Client) ResetLockup(registrar, voterAuthority solana.PublicKey, depositEntryIndex uint8, kind LockupKind, periods uint32) (*solana.GenericInstruction, error) {
	if err := checkDepositIndex(depositEntryIndex); err != nil {
		return nil, err
	}
	voter, _, err := FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionResetLockup, &resetLockupArgs{
		DepositEntryIndex: depositEntryIndex,
		Kind:              kind,
		Periods:           periods,
	}, anchor.Accounts{
		"registrar":       registrar,
		"voter":           voter,
		"voter_authority": voterAuthority,
	})
}

type internalTransferArgs struct {
	SourceDepositEntryIndex uint8
	TargetDepositEntryIndex uint8
	Amount                  uint64
}

// InternalTransferLocked builds internal_transfer_locked.
func (c *Client) InternalTransferLocked(registrar, voterAuthority solana.PublicKey, source, target uint8, amount uint64) (*solana.GenericInstruction, error) {
	return c.internalTransfer(InstructionInternalTransferLocked, registrar, voterAuthority, source, target, amount)
}

// InternalTransferUnlocked builds internal_transfer_unlocked.
func (c *Client) InternalTransferUnlocked(registrar, voterAuthority solana.PublicKey, source, target uint8, amount uint64) (*solana.GenericInstruction, error) {
	return c.internalTransfer(InstructionInternalTransferUnlocked, registrar, voterAuthority, source, target, amount)
}

func (c *Client) internalTransfer(name string, registrar, voterAuthority solana.PublicKey, source, target uint8, amount uint64) (*solana.GenericInstruction, error) {
	if err := checkDepositIndex(source); err != nil {
		return nil, err
	}
	if err := checkDepositIndex(target); err != nil {
		return nil, err
	}
	voter, _, err := FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(name, &internalTransferArgs{
		SourceDepositEntryIndex: source,
		TargetDepositEntryIndex: target,
		Amount:                  amount,
	}, anchor.Accounts{
		"registrar":       registrar,
		"voter":           voter,
		"voter_authority": voterAuthority,
	})
}

// UpdateVoterWeightRecord builds update_voter_weight_record.
func (c *Client) UpdateVoterWeightRecord(registrar, voterAuthority solana.PublicKey) (*solana.GenericInstruction, error) {
	addrs, err := c.VoterAddresses(registrar, voterAuthority)
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionUpdateVoterWeightRecord, nil, anchor.Accounts{
		"registrar":           registrar,
		"voter":               addrs.Voter,
		"voter_weight_record": addrs.VoterWeightRecord,
	})
}

// CloseVoter builds close_voter. The vault of every deposit mint must be
// passed so the program can close them.
func (c *Client) CloseVoter(registrar, voterAuthority, solDestination solana.PublicKey, depositMints ...solana.PublicKey) (*solana.GenericInstruction, error) {
	voter, _, err := FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	vaults := make([]*solana.AccountMeta, 0, len(depositMints))
	for _, mint := range depositMints {
		vault, err := FindVaultAddress(voter, mint)
		if err != nil {
			return nil, err
		}
		vaults = append(vaults, solana.Meta(vault).WRITE())
	}
	return c.program.Instruction(InstructionCloseVoter, nil, anchor.Accounts{
		"registrar":       registrar,
		"voter":           voter,
		"voter_authority": voterAuthority,
		"sol_destination": solDestination,
	}, vaults...)
}

type logVoterInfoArgs struct {
	DepositEntryBegin uint8
	DepositEntryCount uint8
}

// LogVoterInfo builds log_voter_info for count entries starting at begin.
func (c *Client) LogVoterInfo(registrar, voterAuthority solana.PublicKey, begin, count uint8) (*solana.GenericInstruction, error) {
	voter, _, err := FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	return c.program.Instruction(InstructionLogVoterInfo, &logVoterInfoArgs{
		DepositEntryBegin: begin,
		DepositEntryCount: count,
	}, anchor.Accounts{
		"registrar": registrar,
		"voter":     voter,
	})
}

type setTimeOffsetArgs struct {
	TimeOffset int64
}

// SetTimeOffset builds set_time_offset, a testing aid the program only
// honours in debug builds.
func (c *Client) SetTimeOffset(registrar, realmAuthority solana.PublicKey, timeOffset int64) (*solana.GenericInstruction, error) {
	return c.program.Instruction(InstructionSetTimeOffset, &setTimeOffsetArgs{TimeOffset: timeOffset}, anchor.Accounts{
		"registrar":       registrar,
		"realm_authority": realmAuthority,
	})
}

func (c *Client) voterAndVault(registrar, voterAuthority, mint solana.PublicKey) (voter, vault solana.PublicKey, err error) {
	voter, _, err = FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return
	}
	vault, err = FindVaultAddress(voter, mint)
	return
}

func checkDepositIndex(idx uint8) error {
	if idx >= MaxDepositEntries {
		return fmt.Errorf("deposit entry index %d out of range", idx)
	}
	return nil
}
