package vesting

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
)

var (
	freezeTokenAccountAccountNames = []string{
		"globalAuthority", "vestingToken", "userTokenAccount", "tokenProgram",
	}
	thawTokenAccountAccountNames = []string{
		"applicant", "globalAuthority", "vestingToken", "userTokenAccount", "tokenProgram",
	}
)

// FreezeTokenAccount freezes a holder's vesting token account. Anyone may
// send it; the program only acts while vesting is inactive.
type FreezeTokenAccount struct {
	GlobalBump *uint8

	// [0] = [WRITE] globalAuthority
	//
	// [1] = [WRITE] vestingToken
	//
	// [2] = [WRITE] userTokenAccount
	//
	// [3] = [] tokenProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewFreezeTokenAccountInstruction(
	globalBump uint8,
	globalAuthority solana.PublicKey,
	vestingToken solana.PublicKey,
	userTokenAccount solana.PublicKey,
) *FreezeTokenAccount {
	accounts := make(solana.AccountMetaSlice, 4)
	accounts[0] = solana.Meta(globalAuthority).WRITE()
	accounts[1] = solana.Meta(vestingToken).WRITE()
	accounts[2] = solana.Meta(userTokenAccount).WRITE()
	accounts[3] = solana.Meta(TokenProgramID)
	return &FreezeTokenAccount{
		GlobalBump:       &globalBump,
		AccountMetaSlice: accounts,
	}
}

func (inst *FreezeTokenAccount) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_FreezeTokenAccount,
	}}
}

func (inst *FreezeTokenAccount) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *FreezeTokenAccount) Validate() error {
	if inst.GlobalBump == nil {
		return errors.New("GlobalBump parameter is not set")
	}
	return validateAccounts(freezeTokenAccountAccountNames, inst.AccountMetaSlice)
}

func (inst *FreezeTokenAccount) EncodeToTree(parent treeout.Branches) {
	encodeInstructionTree(parent, "FreezeTokenAccount",
		[]param{{"GlobalBump", derefUint8(inst.GlobalBump)}},
		freezeTokenAccountAccountNames, inst.AccountMetaSlice)
}

func (inst FreezeTokenAccount) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeGlobalBump(encoder, inst.GlobalBump)
}

func (inst *FreezeTokenAccount) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	inst.GlobalBump, err = readGlobalBump(decoder)
	return err
}

// ThawTokenAccount thaws a holder's token account. While vesting is active
// the applicant must be whitelisted.
type ThawTokenAccount struct {
	GlobalBump *uint8

	// [0] = [WRITE, SIGNER] applicant
	//
	// [1] = [WRITE] globalAuthority
	//
	// [2] = [WRITE] vestingToken
	//
	// [3] = [WRITE] userTokenAccount
	//
	// [4] = [] tokenProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewThawTokenAccountInstruction(
	globalBump uint8,
	applicant solana.PublicKey,
	globalAuthority solana.PublicKey,
	vestingToken solana.PublicKey,
	userTokenAccount solana.PublicKey,
) *ThawTokenAccount {
	accounts := make(solana.AccountMetaSlice, 5)
	accounts[0] = solana.Meta(applicant).WRITE().SIGNER()
	accounts[1] = solana.Meta(globalAuthority).WRITE()
	accounts[2] = solana.Meta(vestingToken).WRITE()
	accounts[3] = solana.Meta(userTokenAccount).WRITE()
	accounts[4] = solana.Meta(TokenProgramID)
	return &ThawTokenAccount{
		GlobalBump:       &globalBump,
		AccountMetaSlice: accounts,
	}
}

func (inst *ThawTokenAccount) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_ThawTokenAccount,
	}}
}

func (inst *ThawTokenAccount) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *ThawTokenAccount) Validate() error {
	if inst.GlobalBump == nil {
		return errors.New("GlobalBump parameter is not set")
	}
	return validateAccounts(thawTokenAccountAccountNames, inst.AccountMetaSlice)
}

func (inst *ThawTokenAccount) EncodeToTree(parent treeout.Branches) {
	encodeInstructionTree(parent, "ThawTokenAccount",
		[]param{{"GlobalBump", derefUint8(inst.GlobalBump)}},
		thawTokenAccountAccountNames, inst.AccountMetaSlice)
}

func (inst ThawTokenAccount) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeGlobalBump(encoder, inst.GlobalBump)
}

func (inst *ThawTokenAccount) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	inst.GlobalBump, err = readGlobalBump(decoder)
	return err
}
