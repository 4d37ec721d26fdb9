package vesting

import (
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
)

var adminAccountNames = []string{"globalAuthority", "admin"}

// UpdateGlobalState replaces the admin and/or the active flag. Both
// arguments are Borsh options; an absent one leaves the field unchanged.
type UpdateGlobalState struct {
	GlobalBump  *uint8
	NewAdmin    *solana.PublicKey
	ActiveState *uint64

	// [0] = [WRITE] globalAuthority
	//
	// [1] = [WRITE, SIGNER] admin
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewUpdateGlobalStateInstructionBuilder() *UpdateGlobalState {
	return &UpdateGlobalState{
		AccountMetaSlice: make(solana.AccountMetaSlice, 2),
	}
}

func NewUpdateGlobalStateInstruction(
	globalBump uint8,
	newAdmin *solana.PublicKey,
	activeState *uint64,
	globalAuthority solana.PublicKey,
	admin solana.PublicKey,
) *UpdateGlobalState {
	inst := NewUpdateGlobalStateInstructionBuilder().
		SetGlobalBump(globalBump).
		SetGlobalAuthorityAccount(globalAuthority).
		SetAdminAccount(admin)
	if newAdmin != nil {
		inst.SetNewAdmin(*newAdmin)
	}
	if activeState != nil {
		inst.SetActiveState(*activeState)
	}
	return inst
}

func (inst *UpdateGlobalState) SetGlobalBump(globalBump uint8) *UpdateGlobalState {
	inst.GlobalBump = &globalBump
	return inst
}

func (inst *UpdateGlobalState) SetNewAdmin(newAdmin solana.PublicKey) *UpdateGlobalState {
	inst.NewAdmin = &newAdmin
	return inst
}

func (inst *UpdateGlobalState) SetActiveState(activeState uint64) *UpdateGlobalState {
	inst.ActiveState = &activeState
	return inst
}

func (inst *UpdateGlobalState) SetGlobalAuthorityAccount(globalAuthority solana.PublicKey) *UpdateGlobalState {
	inst.AccountMetaSlice[0] = solana.Meta(globalAuthority).WRITE()
	return inst
}

func (inst *UpdateGlobalState) SetAdminAccount(admin solana.PublicKey) *UpdateGlobalState {
	inst.AccountMetaSlice[1] = solana.Meta(admin).WRITE().SIGNER()
	return inst
}

func (inst *UpdateGlobalState) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_UpdateGlobalState,
	}}
}

func (inst *UpdateGlobalState) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *UpdateGlobalState) Validate() error {
	if inst.GlobalBump == nil {
		return errors.New("GlobalBump parameter is not set")
	}
	return validateAccounts(adminAccountNames, inst.AccountMetaSlice)
}

func (inst *UpdateGlobalState) EncodeToTree(parent treeout.Branches) {
	var newAdmin, activeState interface{} = "<none>", "<none>"
	if inst.NewAdmin != nil {
		newAdmin = *inst.NewAdmin
	}
	if inst.ActiveState != nil {
		activeState = *inst.ActiveState
	}
	encodeInstructionTree(parent, "UpdateGlobalState",
		[]param{
			{"GlobalBump", derefUint8(inst.GlobalBump)},
			{"NewAdmin (OPT)", newAdmin},
			{"ActiveState (OPT)", activeState},
		},
		adminAccountNames, inst.AccountMetaSlice)
}

func (inst UpdateGlobalState) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = writeGlobalBump(encoder, inst.GlobalBump); err != nil {
		return err
	}
	if err = encoder.WriteBool(inst.NewAdmin != nil); err != nil {
		return err
	}
	if inst.NewAdmin != nil {
		if err = encoder.WriteBytes(inst.NewAdmin[:], false); err != nil {
			return err
		}
	}
	if err = encoder.WriteBool(inst.ActiveState != nil); err != nil {
		return err
	}
	if inst.ActiveState != nil {
		if err = encoder.WriteUint64(*inst.ActiveState, binary.LittleEndian); err != nil {
			return err
		}
	}
	return nil
}

func (inst *UpdateGlobalState) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if inst.GlobalBump, err = readGlobalBump(decoder); err != nil {
		return err
	}
	ok, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if ok {
		newAdmin, err := readPublicKey(decoder)
		if err != nil {
			return err
		}
		inst.NewAdmin = &newAdmin
	}
	if ok, err = decoder.ReadBool(); err != nil {
		return err
	}
	if ok {
		activeState, err := decoder.ReadUint64(binary.LittleEndian)
		if err != nil {
			return err
		}
		inst.ActiveState = &activeState
	}
	return nil
}
