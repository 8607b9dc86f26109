package vsr

import (
	"github.com/gagliardetto/solana-go"
)

// FindRegistrarAddress derives the registrar PDA for a realm and its
// governing token mint.
func FindRegistrarAddress(realm, mint, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		realm.Bytes(),
		[]byte(RegistrarSeed),
		mint.Bytes(),
	}, programID)
}

// FindVoterAddress derives the voter PDA.
func FindVoterAddress(registrar, voterAuthority, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		registrar.Bytes(),
		[]byte(VoterSeed),
		voterAuthority.Bytes(),
	}, programID)
}

// FindVoterWeightRecordAddress derives the voter weight record PDA.
func FindVoterWeightRecordAddress(registrar, voterAuthority, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		registrar.Bytes(),
		[]byte(VoterWeightRecordSeed),
		voterAuthority.Bytes(),
	}, programID)
}

// FindVaultAddress returns the voter's associated token account for mint.
func FindVaultAddress(voter, mint solana.PublicKey) (solana.PublicKey, error) {
	vault, _, err := solana.FindAssociatedTokenAddress(voter, mint)
	return vault, err
}

// VoterAddresses groups the accounts derived for one voter authority.
type VoterAddresses struct {
	Voter                 solana.PublicKey
	VoterBump             uint8
	VoterWeightRecord     solana.PublicKey
	VoterWeightRecordBump uint8
}

// RegistrarAddress derives the registrar PDA under the client's program.
func (c *Client) RegistrarAddress(realm, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindRegistrarAddress(realm, mint, c.ProgramID())
}

// VoterAddresses derives the voter and voter weight record PDAs.
func (c *Client) VoterAddresses(registrar, voterAuthority solana.PublicKey) (*VoterAddresses, error) {
	voter, voterBump, err := FindVoterAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	vwr, vwrBump, err := FindVoterWeightRecordAddress(registrar, voterAuthority, c.ProgramID())
	if err != nil {
		return nil, err
	}
	return &VoterAddresses{
		Voter:                 voter,
		VoterBump:             voterBump,
		VoterWeightRecord:     vwr,
		VoterWeightRecordBump: vwrBump,
	}, nil
}
