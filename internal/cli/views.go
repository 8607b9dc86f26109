package cli

import (
	"github.com/gagliardetto/solana-go"

	"github.com/metfin/vsr-sdk-go/pkg/vsr"
)

type votingMintView struct {
	Index                          int    `yaml:"index" json:"index"`
	Mint                           string `yaml:"mint" json:"mint"`
	GrantAuthority                 string `yaml:"grant_authority,omitempty" json:"grant_authority,omitempty"`
	BaselineVoteWeightFactor       uint64 `yaml:"baseline_vote_weight_scaled_factor" json:"baseline_vote_weight_scaled_factor"`
	MaxExtraLockupVoteWeightFactor uint64 `yaml:"max_extra_lockup_vote_weight_scaled_factor" json:"max_extra_lockup_vote_weight_scaled_factor"`
	LockupSaturationSecs           uint64 `yaml:"lockup_saturation_secs" json:"lockup_saturation_secs"`
	DigitShift                     int8   `yaml:"digit_shift" json:"digit_shift"`
}

type registrarView struct {
	Address             string           `yaml:"address" json:"address"`
	GovernanceProgramID string           `yaml:"governance_program_id" json:"governance_program_id"`
	Realm               string           `yaml:"realm" json:"realm"`
	GoverningTokenMint  string           `yaml:"governing_token_mint" json:"governing_token_mint"`
	RealmAuthority      string           `yaml:"realm_authority" json:"realm_authority"`
	TimeOffset          int64            `yaml:"time_offset" json:"time_offset"`
	VotingMints         []votingMintView `yaml:"voting_mints" json:"voting_mints"`
}

func newRegistrarView(addr solana.PublicKey, r *vsr.Registrar) registrarView {
	v := registrarView{
		Address:             addr.String(),
		GovernanceProgramID: r.GovernanceProgramId.String(),
		Realm:               r.Realm.String(),
		GoverningTokenMint:  r.RealmGoverningTokenMint.String(),
		RealmAuthority:      r.RealmAuthority.String(),
		TimeOffset:          r.TimeOffset,
		VotingMints:         []votingMintView{},
	}
	for i := range r.VotingMints {
		m := &r.VotingMints[i]
		if !m.InUse() {
			continue
		}
		mv := votingMintView{
			Index:                          i,
			Mint:                           m.Mint.String(),
			BaselineVoteWeightFactor:       m.BaselineVoteWeightScaledFactor,
			MaxExtraLockupVoteWeightFactor: m.MaxExtraLockupVoteWeightScaledFactor,
			LockupSaturationSecs:           m.LockupSaturationSecs,
			DigitShift:                     m.DigitShift,
		}
		if !m.GrantAuthority.IsZero() {
			mv.GrantAuthority = m.GrantAuthority.String()
		}
		v.VotingMints = append(v.VotingMints, mv)
	}
	return v
}

type depositView struct {
	Index               int    `yaml:"index" json:"index"`
	VotingMintConfigIdx uint8  `yaml:"voting_mint_config_idx" json:"voting_mint_config_idx"`
	Kind                string `yaml:"kind" json:"kind"`
	StartTs             int64  `yaml:"start_ts" json:"start_ts"`
	EndTs               int64  `yaml:"end_ts" json:"end_ts"`
	Deposited           uint64 `yaml:"amount_deposited_native" json:"amount_deposited_native"`
	InitiallyLocked     uint64 `yaml:"amount_initially_locked_native" json:"amount_initially_locked_native"`
	Locked              uint64 `yaml:"amount_locked" json:"amount_locked"`
	Unlocked            uint64 `yaml:"amount_unlocked" json:"amount_unlocked"`
	SecondsLeft         uint64 `yaml:"seconds_left" json:"seconds_left"`
	AllowClawback       bool   `yaml:"allow_clawback" json:"allow_clawback"`
}

type voterView struct {
	Address           string        `yaml:"address" json:"address"`
	VoterAuthority    string        `yaml:"voter_authority" json:"voter_authority"`
	Registrar         string        `yaml:"registrar" json:"registrar"`
	VoterWeightRecord string        `yaml:"voter_weight_record" json:"voter_weight_record"`
	Now               int64         `yaml:"now" json:"now"`
	Deposits          []depositView `yaml:"deposits" json:"deposits"`
}

func newVoterView(addrs *vsr.VoterAddresses, v *vsr.Voter, now int64) voterView {
	out := voterView{
		Address:           addrs.Voter.String(),
		VoterAuthority:    v.VoterAuthority.String(),
		Registrar:         v.Registrar.String(),
		VoterWeightRecord: addrs.VoterWeightRecord.String(),
		Now:               now,
		Deposits:          []depositView{},
	}
	for _, i := range v.ActiveDeposits() {
		d := &v.Deposits[i]
		out.Deposits = append(out.Deposits, depositView{
			Index:               i,
			VotingMintConfigIdx: d.VotingMintConfigIdx,
			Kind:                d.Lockup.Kind.String(),
			StartTs:             d.Lockup.StartTs,
			EndTs:               d.Lockup.EndTs,
			Deposited:           d.AmountDepositedNative,
			InitiallyLocked:     d.AmountInitiallyLockedNative,
			Locked:              d.AmountLocked(now),
			Unlocked:            d.AmountUnlocked(now),
			SecondsLeft:         d.Lockup.SecondsLeft(now),
			AllowClawback:       d.AllowClawback,
		})
	}
	return out
}
