package vesting

import (
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
)

var transferWithUnlockAccountNames = []string{
	"applicant", "globalAuthority", "vestingToken", "userTokenAccount", "destTokenAccount", "tokenProgram",
}

// TransferWithUnlock moves amount from userTokenAccount to destTokenAccount,
// thawing frozen sides for the transfer and refreezing them afterwards while
// vesting is active.
type TransferWithUnlock struct {
	GlobalBump *uint8
	Amount     *uint64

	// [0] = [WRITE, SIGNER] applicant
	//
	// [1] = [WRITE] globalAuthority
	//
	// [2] = [WRITE] vestingToken
	//
	// [3] = [WRITE] userTokenAccount
	//
	// [4] = [WRITE] destTokenAccount
	//
	// [5] = [] tokenProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewTransferWithUnlockInstruction(
	globalBump uint8,
	amount uint64,
	applicant solana.PublicKey,
	globalAuthority solana.PublicKey,
	vestingToken solana.PublicKey,
	userTokenAccount solana.PublicKey,
	destTokenAccount solana.PublicKey,
) *TransferWithUnlock {
	accounts := make(solana.AccountMetaSlice, 6)
	accounts[0] = solana.Meta(applicant).WRITE().SIGNER()
	accounts[1] = solana.Meta(globalAuthority).WRITE()
	accounts[2] = solana.Meta(vestingToken).WRITE()
	accounts[3] = solana.Meta(userTokenAccount).WRITE()
	accounts[4] = solana.Meta(destTokenAccount).WRITE()
	accounts[5] = solana.Meta(TokenProgramID)
	return &TransferWithUnlock{
		GlobalBump:       &globalBump,
		Amount:           &amount,
		AccountMetaSlice: accounts,
	}
}

func (inst *TransferWithUnlock) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_TransferWithUnlock,
	}}
}

func (inst *TransferWithUnlock) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *TransferWithUnlock) Validate() error {
	if inst.GlobalBump == nil {
		return errors.New("GlobalBump parameter is not set")
	}
	if inst.Amount == nil {
		return errors.New("Amount parameter is not set")
	}
	return validateAccounts(transferWithUnlockAccountNames, inst.AccountMetaSlice)
}

func (inst *TransferWithUnlock) EncodeToTree(parent treeout.Branches) {
	var amount interface{} = "<nil>"
	if inst.Amount != nil {
		amount = *inst.Amount
	}
	encodeInstructionTree(parent, "TransferWithUnlock",
		[]param{
			{"GlobalBump", derefUint8(inst.GlobalBump)},
			{"Amount", amount},
		},
		transferWithUnlockAccountNames, inst.AccountMetaSlice)
}

func (inst TransferWithUnlock) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := writeGlobalBump(encoder, inst.GlobalBump); err != nil {
		return err
	}
	if inst.Amount == nil {
		return errors.New("Amount parameter is not set")
	}
	return encoder.WriteUint64(*inst.Amount, binary.LittleEndian)
}

func (inst *TransferWithUnlock) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if inst.GlobalBump, err = readGlobalBump(decoder); err != nil {
		return err
	}
	amount, err := decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return err
	}
	inst.Amount = &amount
	return nil
}
