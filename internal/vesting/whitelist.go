package vesting

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
)

// whitelistArgs is the argument list shared by add_to_whitelist and
// remove_from_whitelist: (global_bump: u8, address: Pubkey).
type whitelistArgs struct {
	GlobalBump *uint8
	Address    *solana.PublicKey

	// [0] = [WRITE] globalAuthority
	//
	// [1] = [WRITE, SIGNER] admin
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func newWhitelistArgs(globalBump uint8, address, globalAuthority, admin solana.PublicKey) whitelistArgs {
	accounts := make(solana.AccountMetaSlice, 2)
	accounts[0] = solana.Meta(globalAuthority).WRITE()
	accounts[1] = solana.Meta(admin).WRITE().SIGNER()
	return whitelistArgs{
		GlobalBump:       &globalBump,
		Address:          &address,
		AccountMetaSlice: accounts,
	}
}

func (args *whitelistArgs) validate() error {
	if args.GlobalBump == nil {
		return errors.New("GlobalBump parameter is not set")
	}
	if args.Address == nil {
		return errors.New("Address parameter is not set")
	}
	return validateAccounts(adminAccountNames, args.AccountMetaSlice)
}

func (args *whitelistArgs) encodeToTree(parent treeout.Branches, name string) {
	var address interface{} = "<nil>"
	if args.Address != nil {
		address = *args.Address
	}
	encodeInstructionTree(parent, name,
		[]param{
			{"GlobalBump", derefUint8(args.GlobalBump)},
			{"Address", address},
		},
		adminAccountNames, args.AccountMetaSlice)
}

func (args whitelistArgs) marshal(encoder *bin.Encoder) error {
	if err := writeGlobalBump(encoder, args.GlobalBump); err != nil {
		return err
	}
	if args.Address == nil {
		return errors.New("Address parameter is not set")
	}
	return encoder.WriteBytes(args.Address[:], false)
}

func (args *whitelistArgs) unmarshal(decoder *bin.Decoder) (err error) {
	if args.GlobalBump, err = readGlobalBump(decoder); err != nil {
		return err
	}
	address, err := readPublicKey(decoder)
	if err != nil {
		return err
	}
	args.Address = &address
	return nil
}

// AddToWhitelist appends an address to GlobalInfo.Whitelist. The program
// ignores addresses already present.
type AddToWhitelist struct {
	whitelistArgs
}

func NewAddToWhitelistInstruction(globalBump uint8, address, globalAuthority, admin solana.PublicKey) *AddToWhitelist {
	return &AddToWhitelist{newWhitelistArgs(globalBump, address, globalAuthority, admin)}
}

func (inst *AddToWhitelist) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_AddToWhitelist,
	}}
}

func (inst *AddToWhitelist) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *AddToWhitelist) Validate() error { return inst.validate() }

func (inst *AddToWhitelist) EncodeToTree(parent treeout.Branches) {
	inst.encodeToTree(parent, "AddToWhitelist")
}

func (inst AddToWhitelist) MarshalWithEncoder(encoder *bin.Encoder) error {
	return inst.marshal(encoder)
}

func (inst *AddToWhitelist) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	return inst.unmarshal(decoder)
}

// RemoveFromWhitelist swaps the address with the last entry and shrinks the
// list. The program fails with InvalidWhitelistAddress if it is absent.
type RemoveFromWhitelist struct {
	whitelistArgs
}

func NewRemoveFromWhitelistInstruction(globalBump uint8, address, globalAuthority, admin solana.PublicKey) *RemoveFromWhitelist {
	return &RemoveFromWhitelist{newWhitelistArgs(globalBump, address, globalAuthority, admin)}
}

func (inst *RemoveFromWhitelist) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_RemoveFromWhitelist,
	}}
}

func (inst *RemoveFromWhitelist) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *RemoveFromWhitelist) Validate() error { return inst.validate() }

func (inst *RemoveFromWhitelist) EncodeToTree(parent treeout.Branches) {
	inst.encodeToTree(parent, "RemoveFromWhitelist")
}

func (inst RemoveFromWhitelist) MarshalWithEncoder(encoder *bin.Encoder) error {
	return inst.marshal(encoder)
}

func (inst *RemoveFromWhitelist) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	return inst.unmarshal(decoder)
}
