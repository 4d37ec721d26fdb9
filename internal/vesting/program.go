package vesting

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	ProgramName = "AikoVesting"

	// GlobalAuthoritySeed is the only seed of the program's global PDA. The
	// same address signs freeze/thaw CPIs and stores GlobalInfo.
	GlobalAuthoritySeed = "global-authority"

	// MaxWhitelist is the fixed capacity of GlobalInfo.Whitelist.
	MaxWhitelist = 30

	// GlobalInfoSize is the discriminator plus the Borsh body
	// (32 + 8 + 32*MaxWhitelist + 8).
	GlobalInfoSize = 8 + 32 + 8 + 32*MaxWhitelist + 8
)

var (
	ProgramID    = solana.MustPublicKeyFromBase58("Ah9YbbS3KuYYoa26CuNMjzN6U4aBcu1ZgimSKeD7Q9zs")
	VestingMint  = solana.MustPublicKeyFromBase58("CFt8zQNRUpK4Lxhgv64JgZ5giZ3VWXSceQr6yKh7VoFU")
	DefaultAdmin = solana.MustPublicKeyFromBase58("Fs8R7R6dP3B7mAJ6QmWZbomBRuTbiJyiR4QYjoxhLdPu")

	TokenProgramID = solana.TokenProgramID
)

// Anchor sighashes of the program's instructions.
var (
	Instruction_Initialize              = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "initialize")
	Instruction_UpdateGlobalState       = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "update_global_state")
	Instruction_AddToWhitelist          = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "add_to_whitelist")
	Instruction_RemoveFromWhitelist     = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "remove_from_whitelist")
	Instruction_TransferFreezeAuthority = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "transfer_freeze_authority")
	Instruction_FreezeTokenAccount      = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "freeze_token_account")
	Instruction_ThawTokenAccount        = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "thaw_token_account")
	Instruction_TransferWithUnlock      = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "transfer_with_unlock")

	GlobalInfoDiscriminator = bin.SighashTypeID("account", "GlobalInfo")
)

// InstructionIDToName returns the IDL name of an instruction sighash.
func InstructionIDToName(id bin.TypeID) string {
	switch id {
	case Instruction_Initialize:
		return "Initialize"
	case Instruction_UpdateGlobalState:
		return "UpdateGlobalState"
	case Instruction_AddToWhitelist:
		return "AddToWhitelist"
	case Instruction_RemoveFromWhitelist:
		return "RemoveFromWhitelist"
	case Instruction_TransferFreezeAuthority:
		return "TransferFreezeAuthority"
	case Instruction_FreezeTokenAccount:
		return "FreezeTokenAccount"
	case Instruction_ThawTokenAccount:
		return "ThawTokenAccount"
	case Instruction_TransferWithUnlock:
		return "TransferWithUnlock"
	default:
		return ""
	}
}

// SetProgramID points the package at another deployment of the program.
func SetProgramID(pubkey solana.PublicKey) {
	ProgramID = pubkey
	solana.RegisterInstructionDecoder(ProgramID, registryDecodeInstruction)
}

func init() {
	if !ProgramID.IsZero() {
		solana.RegisterInstructionDecoder(ProgramID, registryDecodeInstruction)
	}
}

// FindGlobalAuthority derives the global PDA of programID.
func FindGlobalAuthority(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(GlobalAuthoritySeed)}, programID)
}
