package vesting

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
)

var initializeAccountNames = []string{"globalAuthority", "admin", "systemProgram", "rent"}

// Initialize creates GlobalInfo with the signer as admin and vesting active.
type Initialize struct {
	GlobalBump *uint8

	// [0] = [WRITE] globalAuthority
	//
	// [1] = [WRITE, SIGNER] admin
	//
	// [2] = [] systemProgram
	//
	// [3] = [] rent
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewInitializeInstructionBuilder() *Initialize {
	return &Initialize{
		AccountMetaSlice: make(solana.AccountMetaSlice, 4),
	}
}

func NewInitializeInstruction(globalBump uint8, globalAuthority, admin solana.PublicKey) *Initialize {
	return NewInitializeInstructionBuilder().
		SetGlobalBump(globalBump).
		SetGlobalAuthorityAccount(globalAuthority).
		SetAdminAccount(admin).
		SetSystemProgramAccount(solana.SystemProgramID).
		SetRentAccount(solana.SysVarRentPubkey)
}

func (inst *Initialize) SetGlobalBump(globalBump uint8) *Initialize {
	inst.GlobalBump = &globalBump
	return inst
}

func (inst *Initialize) SetGlobalAuthorityAccount(globalAuthority solana.PublicKey) *Initialize {
	inst.AccountMetaSlice[0] = solana.Meta(globalAuthority).WRITE()
	return inst
}

func (inst *Initialize) SetAdminAccount(admin solana.PublicKey) *Initialize {
	inst.AccountMetaSlice[1] = solana.Meta(admin).WRITE().SIGNER()
	return inst
}

func (inst *Initialize) SetSystemProgramAccount(systemProgram solana.PublicKey) *Initialize {
	inst.AccountMetaSlice[2] = solana.Meta(systemProgram)
	return inst
}

func (inst *Initialize) SetRentAccount(rent solana.PublicKey) *Initialize {
	inst.AccountMetaSlice[3] = solana.Meta(rent)
	return inst
}

func (inst *Initialize) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_Initialize,
	}}
}

func (inst *Initialize) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *Initialize) Validate() error {
	if inst.GlobalBump == nil {
		return errors.New("GlobalBump parameter is not set")
	}
	return validateAccounts(initializeAccountNames, inst.AccountMetaSlice)
}

func (inst *Initialize) EncodeToTree(parent treeout.Branches) {
	encodeInstructionTree(parent, "Initialize",
		[]param{{"GlobalBump", derefUint8(inst.GlobalBump)}},
		initializeAccountNames, inst.AccountMetaSlice)
}

func (inst Initialize) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeGlobalBump(encoder, inst.GlobalBump)
}

func (inst *Initialize) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	inst.GlobalBump, err = readGlobalBump(decoder)
	return err
}

func derefUint8(v *uint8) interface{} {
	if v == nil {
		return "<nil>"
	}
	return *v
}
