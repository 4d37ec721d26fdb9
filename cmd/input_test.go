package cmd

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiko-vesting/internal/types"
)

func TestCheckInput(t *testing.T) {
	key := solana.NewWallet().PublicKey().String()

	assert.NoError(t, checkInput(types.AddressRequest{Address: key}))
	assert.NoError(t, checkInput(types.UpdateStatusRequest{Active: "true"}))
	assert.NoError(t, checkInput(types.UpdateStatusRequest{Admin: key}))
	assert.NoError(t, checkInput(types.TransferRequest{Source: key, Destination: key, Amount: "10"}))
	assert.NoError(t, checkInput(types.PdaRequest{}))

	err := checkInput(types.AddressRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInput))
	assert.Contains(t, err.Error(), "--address")

	err = checkInput(types.AddressRequest{Address: "0OIl"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--address must be a base58 encoded public key")

	err = checkInput(types.UpdateStatusRequest{})
	assert.True(t, errors.Is(err, types.ErrInput))

	err = checkInput(types.UpdateStatusRequest{Active: "maybe"})
	assert.True(t, errors.Is(err, types.ErrInput))

	err = checkInput(types.TransferRequest{Source: key, Destination: key, Amount: "ten"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--amount")
}

func TestPrintResult(t *testing.T) {
	defer viper.Set("output", "json")
	resp := &types.TxResponse{Signature: "sig", Note: "done"}

	viper.Set("output", "json")
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, resp))
	assert.Contains(t, buf.String(), `"signature": "sig"`)
	assert.NotContains(t, buf.String(), "accounts")

	viper.Set("output", "yaml")
	buf.Reset()
	require.NoError(t, printResult(&buf, resp))
	assert.Contains(t, buf.String(), "signature: sig")

	viper.Set("output", "xml")
	err := printResult(&buf, resp)
	assert.True(t, errors.Is(err, types.ErrInput))
}
