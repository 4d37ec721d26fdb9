package vesting

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
)

var transferFreezeAuthorityAccountNames = []string{
	"globalAuthority", "admin", "vestingToken", "newAuthority", "tokenProgram",
}

// TransferFreezeAuthority hands the mint's freeze authority from the global
// PDA to newAuthority. Admin only.
type TransferFreezeAuthority struct {
	GlobalBump *uint8

	// [0] = [WRITE] globalAuthority
	//
	// [1] = [WRITE, SIGNER] admin
	//
	// [2] = [WRITE] vestingToken
	//
	// [3] = [WRITE] newAuthority
	//
	// [4] = [] tokenProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewTransferFreezeAuthorityInstructionBuilder() *TransferFreezeAuthority {
	return &TransferFreezeAuthority{
		AccountMetaSlice: make(solana.AccountMetaSlice, 5),
	}
}

func NewTransferFreezeAuthorityInstruction(
	globalBump uint8,
	globalAuthority solana.PublicKey,
	admin solana.PublicKey,
	vestingToken solana.PublicKey,
	newAuthority solana.PublicKey,
) *TransferFreezeAuthority {
	return NewTransferFreezeAuthorityInstructionBuilder().
		SetGlobalBump(globalBump).
		SetGlobalAuthorityAccount(globalAuthority).
		SetAdminAccount(admin).
		SetVestingTokenAccount(vestingToken).
		SetNewAuthorityAccount(newAuthority).
		SetTokenProgramAccount(TokenProgramID)
}

func (inst *TransferFreezeAuthority) SetGlobalBump(globalBump uint8) *TransferFreezeAuthority {
	inst.GlobalBump = &globalBump
	return inst
}

func (inst *TransferFreezeAuthority) SetGlobalAuthorityAccount(globalAuthority solana.PublicKey) *TransferFreezeAuthority {
	inst.AccountMetaSlice[0] = solana.Meta(globalAuthority).WRITE()
	return inst
}

func (inst *TransferFreezeAuthority) SetAdminAccount(admin solana.PublicKey) *TransferFreezeAuthority {
	inst.AccountMetaSlice[1] = solana.Meta(admin).WRITE().SIGNER()
	return inst
}

func (inst *TransferFreezeAuthority) SetVestingTokenAccount(vestingToken solana.PublicKey) *TransferFreezeAuthority {
	inst.AccountMetaSlice[2] = solana.Meta(vestingToken).WRITE()
	return inst
}

func (inst *TransferFreezeAuthority) SetNewAuthorityAccount(newAuthority solana.PublicKey) *TransferFreezeAuthority {
	inst.AccountMetaSlice[3] = solana.Meta(newAuthority).WRITE()
	return inst
}

func (inst *TransferFreezeAuthority) SetTokenProgramAccount(tokenProgram solana.PublicKey) *TransferFreezeAuthority {
	inst.AccountMetaSlice[4] = solana.Meta(tokenProgram)
	return inst
}

func (inst *TransferFreezeAuthority) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_TransferFreezeAuthority,
	}}
}

func (inst *TransferFreezeAuthority) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *TransferFreezeAuthority) Validate() error {
	if inst.GlobalBump == nil {
		return errors.New("GlobalBump parameter is not set")
	}
	return validateAccounts(transferFreezeAuthorityAccountNames, inst.AccountMetaSlice)
}

func (inst *TransferFreezeAuthority) EncodeToTree(parent treeout.Branches) {
	encodeInstructionTree(parent, "TransferFreezeAuthority",
		[]param{{"GlobalBump", derefUint8(inst.GlobalBump)}},
		transferFreezeAuthorityAccountNames, inst.AccountMetaSlice)
}

func (inst TransferFreezeAuthority) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeGlobalBump(encoder, inst.GlobalBump)
}

func (inst *TransferFreezeAuthority) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	inst.GlobalBump, err = readGlobalBump(decoder)
	return err
}
