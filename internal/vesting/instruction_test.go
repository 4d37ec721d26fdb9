package vesting

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"testing"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchorSighash(namespace, name string) []byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	return sum[:8]
}

func TestInstructionDiscriminators(t *testing.T) {
	cases := map[string]bin.TypeID{
		"initialize":                Instruction_Initialize,
		"update_global_state":       Instruction_UpdateGlobalState,
		"add_to_whitelist":          Instruction_AddToWhitelist,
		"remove_from_whitelist":     Instruction_RemoveFromWhitelist,
		"transfer_freeze_authority": Instruction_TransferFreezeAuthority,
		"freeze_token_account":      Instruction_FreezeTokenAccount,
		"thaw_token_account":        Instruction_ThawTokenAccount,
		"transfer_with_unlock":      Instruction_TransferWithUnlock,
	}
	for name, id := range cases {
		assert.Equal(t, anchorSighash("global", name), id[:], name)
		assert.NotEmpty(t, InstructionIDToName(id), name)
	}
	assert.Equal(t, []byte{175, 175, 109, 31, 13, 152, 155, 237}, Instruction_Initialize[:])
	assert.Equal(t, anchorSighash("account", "GlobalInfo"), GlobalInfoDiscriminator[:])
}

func TestFindGlobalAuthority(t *testing.T) {
	want, wantBump, err := solana.FindProgramAddress([][]byte{[]byte("global-authority")}, ProgramID)
	require.NoError(t, err)

	got, bump, err := FindGlobalAuthority(ProgramID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, wantBump, bump)
}

type accountFlags struct {
	key      solana.PublicKey
	writable bool
	signer   bool
}

func assertAccounts(t *testing.T, want []accountFlags, got []*solana.AccountMeta) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.key, got[i].PublicKey, "account %d", i)
		assert.Equal(t, w.writable, got[i].IsWritable, "account %d writable", i)
		assert.Equal(t, w.signer, got[i].IsSigner, "account %d signer", i)
	}
}

func TestInitializeEncoding(t *testing.T) {
	globalAuthority, bump, err := FindGlobalAuthority(ProgramID)
	require.NoError(t, err)
	admin := solana.NewWallet().PublicKey()

	ix, err := NewInitializeInstruction(bump, globalAuthority, admin).ValidateAndBuild()
	require.NoError(t, err)
	assert.Equal(t, ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, append(anchorSighash("global", "initialize"), bump), data)

	assertAccounts(t, []accountFlags{
		{globalAuthority, true, false},
		{admin, true, true},
		{solana.SystemProgramID, false, false},
		{solana.SysVarRentPubkey, false, false},
	}, ix.Accounts())
}

func TestUpdateGlobalStateEncoding(t *testing.T) {
	globalAuthority := solana.NewWallet().PublicKey()
	admin := solana.NewWallet().PublicKey()
	newAdmin := solana.NewWallet().PublicKey()

	t.Run("both set", func(t *testing.T) {
		active := uint64(1)
		ix, err := NewUpdateGlobalStateInstruction(7, &newAdmin, &active, globalAuthority, admin).ValidateAndBuild()
		require.NoError(t, err)
		data, err := ix.Data()
		require.NoError(t, err)

		want := append(anchorSighash("global", "update_global_state"), 7, 1)
		want = append(want, newAdmin[:]...)
		want = append(want, 1)
		want = binary.LittleEndian.AppendUint64(want, 1)
		assert.Equal(t, want, data)
		assertAccounts(t, []accountFlags{
			{globalAuthority, true, false},
			{admin, true, true},
		}, ix.Accounts())
	})

	t.Run("admin only", func(t *testing.T) {
		ix, err := NewUpdateGlobalStateInstruction(7, &newAdmin, nil, globalAuthority, admin).ValidateAndBuild()
		require.NoError(t, err)
		data, err := ix.Data()
		require.NoError(t, err)

		want := append(anchorSighash("global", "update_global_state"), 7, 1)
		want = append(want, newAdmin[:]...)
		want = append(want, 0)
		assert.Equal(t, want, data)
	})

	t.Run("active only", func(t *testing.T) {
		active := uint64(0)
		ix, err := NewUpdateGlobalStateInstruction(7, nil, &active, globalAuthority, admin).ValidateAndBuild()
		require.NoError(t, err)
		data, err := ix.Data()
		require.NoError(t, err)

		want := append(anchorSighash("global", "update_global_state"), 7, 0, 1)
		want = binary.LittleEndian.AppendUint64(want, 0)
		assert.Equal(t, want, data)
	})
}

func TestWhitelistEncoding(t *testing.T) {
	globalAuthority := solana.NewWallet().PublicKey()
	admin := solana.NewWallet().PublicKey()
	address := solana.NewWallet().PublicKey()

	add, err := NewAddToWhitelistInstruction(254, address, globalAuthority, admin).ValidateAndBuild()
	require.NoError(t, err)
	data, err := add.Data()
	require.NoError(t, err)
	assert.Equal(t, append(append(anchorSighash("global", "add_to_whitelist"), 254), address[:]...), data)

	remove, err := NewRemoveFromWhitelistInstruction(254, address, globalAuthority, admin).ValidateAndBuild()
	require.NoError(t, err)
	data, err = remove.Data()
	require.NoError(t, err)
	assert.Equal(t, append(append(anchorSighash("global", "remove_from_whitelist"), 254), address[:]...), data)

	for _, ix := range []*Instruction{add, remove} {
		assertAccounts(t, []accountFlags{
			{globalAuthority, true, false},
			{admin, true, true},
		}, ix.Accounts())
	}
}

func TestTokenInstructionsAccounts(t *testing.T) {
	globalAuthority := solana.NewWallet().PublicKey()
	admin := solana.NewWallet().PublicKey()
	applicant := solana.NewWallet().PublicKey()
	newAuthority := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	dest := solana.NewWallet().PublicKey()

	authority, err := NewTransferFreezeAuthorityInstruction(3, globalAuthority, admin, VestingMint, newAuthority).ValidateAndBuild()
	require.NoError(t, err)
	assertAccounts(t, []accountFlags{
		{globalAuthority, true, false},
		{admin, true, true},
		{VestingMint, true, false},
		{newAuthority, true, false},
		{solana.TokenProgramID, false, false},
	}, authority.Accounts())

	freeze, err := NewFreezeTokenAccountInstruction(3, globalAuthority, VestingMint, user).ValidateAndBuild()
	require.NoError(t, err)
	assertAccounts(t, []accountFlags{
		{globalAuthority, true, false},
		{VestingMint, true, false},
		{user, true, false},
		{solana.TokenProgramID, false, false},
	}, freeze.Accounts())

	thaw, err := NewThawTokenAccountInstruction(3, applicant, globalAuthority, VestingMint, user).ValidateAndBuild()
	require.NoError(t, err)
	assertAccounts(t, []accountFlags{
		{applicant, true, true},
		{globalAuthority, true, false},
		{VestingMint, true, false},
		{user, true, false},
		{solana.TokenProgramID, false, false},
	}, thaw.Accounts())

	transfer, err := NewTransferWithUnlockInstruction(3, 1_000_000, applicant, globalAuthority, VestingMint, user, dest).ValidateAndBuild()
	require.NoError(t, err)
	assertAccounts(t, []accountFlags{
		{applicant, true, true},
		{globalAuthority, true, false},
		{VestingMint, true, false},
		{user, true, false},
		{dest, true, false},
		{solana.TokenProgramID, false, false},
	}, transfer.Accounts())

	for name, ix := range map[string]*Instruction{
		"transfer_freeze_authority": authority,
		"freeze_token_account":      freeze,
		"thaw_token_account":        thaw,
	} {
		data, err := ix.Data()
		require.NoError(t, err)
		assert.Equal(t, append(anchorSighash("global", name), 3), data, name)
	}

	data, err := transfer.Data()
	require.NoError(t, err)
	want := append(anchorSighash("global", "transfer_with_unlock"), 3)
	want = binary.LittleEndian.AppendUint64(want, 1_000_000)
	assert.Equal(t, want, data)
}

func TestValidateMissingFields(t *testing.T) {
	_, err := NewInitializeInstructionBuilder().ValidateAndBuild()
	assert.EqualError(t, err, "GlobalBump parameter is not set")

	_, err = NewInitializeInstructionBuilder().SetGlobalBump(1).ValidateAndBuild()
	assert.EqualError(t, err, "accounts.globalAuthority is not set")

	_, err = NewUpdateGlobalStateInstructionBuilder().
		SetGlobalBump(1).
		SetGlobalAuthorityAccount(solana.NewWallet().PublicKey()).
		ValidateAndBuild()
	assert.EqualError(t, err, "accounts.admin is not set")

	_, err = NewTransferFreezeAuthorityInstructionBuilder().
		SetGlobalBump(1).
		SetGlobalAuthorityAccount(solana.NewWallet().PublicKey()).
		SetAdminAccount(solana.NewWallet().PublicKey()).
		ValidateAndBuild()
	assert.EqualError(t, err, "accounts.vestingToken is not set")
}

func TestDecodeInstructionRoundTrip(t *testing.T) {
	globalAuthority := solana.NewWallet().PublicKey()
	admin := solana.NewWallet().PublicKey()
	newAdmin := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	dest := solana.NewWallet().PublicKey()
	active := uint64(1)

	cases := []*Instruction{
		NewInitializeInstruction(9, globalAuthority, admin).Build(),
		NewUpdateGlobalStateInstruction(9, &newAdmin, &active, globalAuthority, admin).Build(),
		NewUpdateGlobalStateInstruction(9, nil, nil, globalAuthority, admin).Build(),
		NewAddToWhitelistInstruction(9, newAdmin, globalAuthority, admin).Build(),
		NewRemoveFromWhitelistInstruction(9, newAdmin, globalAuthority, admin).Build(),
		NewTransferFreezeAuthorityInstruction(9, globalAuthority, admin, VestingMint, newAdmin).Build(),
		NewFreezeTokenAccountInstruction(9, globalAuthority, VestingMint, user).Build(),
		NewThawTokenAccountInstruction(9, admin, globalAuthority, VestingMint, user).Build(),
		NewTransferWithUnlockInstruction(9, 42, admin, globalAuthority, VestingMint, user, dest).Build(),
	}
	for _, ix := range cases {
		name := InstructionIDToName(ix.TypeID)
		data, err := ix.Data()
		require.NoError(t, err, name)

		decoded, err := DecodeInstruction(ix.Accounts(), data)
		require.NoError(t, err, name)
		assert.Equal(t, ix.TypeID, decoded.TypeID, name)
		assert.Equal(t, ix.Impl, decoded.Impl, name)

		again, err := decoded.Data()
		require.NoError(t, err, name)
		assert.True(t, bytes.Equal(data, again), name)
	}
}

func TestDecodeInstructionUnknown(t *testing.T) {
	_, err := DecodeInstruction(nil, []byte{1, 2, 3, 4, 5, 6, 7, 8, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown instruction sighash")

	_, err = DecodeInstruction(nil, []byte{1, 2})
	require.Error(t, err)
}

func TestInstructionTree(t *testing.T) {
	globalAuthority := solana.NewWallet().PublicKey()
	applicant := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	dest := solana.NewWallet().PublicKey()

	ix := NewTransferWithUnlockInstruction(1, 500, applicant, globalAuthority, VestingMint, user, dest).Build()
	tree := treeout.New("")
	ix.EncodeToTree(tree)
	rendered := tree.String()

	assert.True(t, strings.Contains(rendered, "TransferWithUnlock"), rendered)
	assert.True(t, strings.Contains(rendered, "destTokenAccount"), rendered)
	assert.True(t, strings.Contains(rendered, "500"), rendered)
}
