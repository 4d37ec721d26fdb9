package vesting

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/text"
	"github.com/gagliardetto/solana-go/text/format"
	"github.com/gagliardetto/treeout"
)

// Instruction is a vesting program instruction: an Anchor sighash followed
// by the Borsh encoded arguments of Impl.
type Instruction struct {
	bin.BaseVariant
}

var (
	_ solana.Instruction  = (*Instruction)(nil)
	_ bin.EncoderDecoder  = (*Instruction)(nil)
	_ text.EncodableToTree = (*Instruction)(nil)
)

func (inst *Instruction) ProgramID() solana.PublicKey {
	return ProgramID
}

func (inst *Instruction) Accounts() (out []*solana.AccountMeta) {
	return inst.Impl.(solana.AccountsGettable).GetAccounts()
}

func (inst *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(inst); err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return buf.Bytes(), nil
}

func (inst *Instruction) EncodeToTree(parent treeout.Branches) {
	if enToTree, ok := inst.Impl.(text.EncodableToTree); ok {
		enToTree.EncodeToTree(parent)
		return
	}
	parent.Child(format.Program(ProgramName, ProgramID))
}

func (inst *Instruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(inst.TypeID[:], false); err != nil {
		return fmt.Errorf("unable to write variant type: %w", err)
	}
	return encoder.Encode(inst.Impl)
}

func (inst *Instruction) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	raw, err := decoder.ReadNBytes(8)
	if err != nil {
		return fmt.Errorf("unable to read instruction sighash: %w", err)
	}
	var id bin.TypeID
	copy(id[:], raw)

	impl := newInstructionImpl(id)
	if impl == nil {
		return fmt.Errorf("unknown instruction sighash %v", raw)
	}
	inst.TypeID = id
	inst.Impl = impl
	return decoder.Decode(impl)
}

func newInstructionImpl(id bin.TypeID) interface{} {
	switch id {
	case Instruction_Initialize:
		return new(Initialize)
	case Instruction_UpdateGlobalState:
		return new(UpdateGlobalState)
	case Instruction_AddToWhitelist:
		return new(AddToWhitelist)
	case Instruction_RemoveFromWhitelist:
		return new(RemoveFromWhitelist)
	case Instruction_TransferFreezeAuthority:
		return new(TransferFreezeAuthority)
	case Instruction_FreezeTokenAccount:
		return new(FreezeTokenAccount)
	case Instruction_ThawTokenAccount:
		return new(ThawTokenAccount)
	case Instruction_TransferWithUnlock:
		return new(TransferWithUnlock)
	default:
		return nil
	}
}

func registryDecodeInstruction(accounts []*solana.AccountMeta, data []byte) (interface{}, error) {
	inst, err := DecodeInstruction(accounts, data)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// DecodeInstruction parses raw instruction data of the vesting program and
// attaches accounts to the decoded arguments.
func DecodeInstruction(accounts []*solana.AccountMeta, data []byte) (*Instruction, error) {
	inst := new(Instruction)
	if err := bin.NewBorshDecoder(data).Decode(inst); err != nil {
		return nil, fmt.Errorf("unable to decode instruction: %w", err)
	}
	if v, ok := inst.Impl.(solana.AccountsSettable); ok {
		if err := v.SetAccounts(accounts); err != nil {
			return nil, fmt.Errorf("unable to set accounts for instruction: %w", err)
		}
	}
	return inst, nil
}

type param struct {
	name  string
	value interface{}
}

func encodeInstructionTree(
	parent treeout.Branches,
	name string,
	params []param,
	accountNames []string,
	accounts solana.AccountMetaSlice,
) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction(name)).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					// Parameters of the instruction:
					instructionBranch.Child(fmt.Sprintf("Params[len=%d]", len(params))).ParentFunc(func(paramsBranch treeout.Branches) {
						for _, p := range params {
							paramsBranch.Child(format.Param(p.name, p.value))
						}
					})

					// Accounts of the instruction:
					instructionBranch.Child(fmt.Sprintf("Accounts[len=%d]", len(accountNames))).ParentFunc(func(accountsBranch treeout.Branches) {
						for i, accountName := range accountNames {
							meta := accounts.Get(i)
							if meta == nil {
								accountsBranch.Child(accountName + ": <nil>")
								continue
							}
							accountsBranch.Child(format.Meta(accountName, meta))
						}
					})
				})
		})
}

func validateAccounts(accountNames []string, accounts solana.AccountMetaSlice) error {
	for i, accountName := range accountNames {
		if accounts.Get(i) == nil {
			return fmt.Errorf("accounts.%s is not set", accountName)
		}
	}
	return nil
}

func writeGlobalBump(encoder *bin.Encoder, bump *uint8) error {
	if bump == nil {
		return fmt.Errorf("GlobalBump parameter is not set")
	}
	return encoder.WriteUint8(*bump)
}

func readGlobalBump(decoder *bin.Decoder) (*uint8, error) {
	bump, err := decoder.ReadUint8()
	if err != nil {
		return nil, err
	}
	return &bump, nil
}

func readPublicKey(decoder *bin.Decoder) (solana.PublicKey, error) {
	raw, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(raw), nil
}
