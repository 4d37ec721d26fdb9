package vesting

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type txError struct {
	raw interface{}
}

func (e *txError) Error() string               { return "transaction failed" }
func (e *txError) TransactionErr() interface{} { return e.raw }

func TestProgramErrorCodes(t *testing.T) {
	cases := []struct {
		err  *ProgramError
		code uint32
		name string
	}{
		{ErrUninitialized, 300, "Uninitialized"},
		{ErrInvalidSuperOwner, 301, "InvalidSuperOwner"},
		{ErrVestingDeactived, 302, "VestingDeactived"},
		{ErrInvalidWhitelistAddress, 303, "InvalidWhitelistAddress"},
		{ErrNotAllowedApplicant, 304, "NotAllowedApplicant"},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, c.err.Code)
		assert.Equal(t, c.name, c.err.Name)
		got, ok := ProgramErrorFromCode(c.code)
		assert.True(t, ok)
		assert.Same(t, c.err, got)
	}
	_, ok := ProgramErrorFromCode(6000)
	assert.False(t, ok)
}

func TestParseProgramError(t *testing.T) {
	statusErr := map[string]interface{}{
		"InstructionError": []interface{}{float64(0), map[string]interface{}{"Custom": float64(301)}},
	}

	cases := []struct {
		name string
		in   interface{}
		want *ProgramError
	}{
		{"nil", nil, nil},
		{"program error", ErrNotAllowedApplicant, ErrNotAllowedApplicant},
		{"status map", statusErr, ErrInvalidSuperOwner},
		{"status error", &txError{raw: statusErr}, ErrInvalidSuperOwner},
		{"rpc message", errors.New("Transaction simulation failed: Error processing Instruction 0: custom program error: 0x12f"), ErrInvalidWhitelistAddress},
		{"log string", "Program failed: custom program error: 0x12e", ErrVestingDeactived},
		{"wrapped", fmt.Errorf("send: %w", ErrUninitialized), ErrUninitialized},
		{"unknown code", "custom program error: 0x1", nil},
		{"other instruction error", map[string]interface{}{"InstructionError": []interface{}{0, "InvalidAccountData"}}, nil},
		{"unrelated", errors.New("blockhash not found"), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParseProgramError(c.in))
		})
	}
}

func TestWithProgramError(t *testing.T) {
	assert.NoError(t, WithProgramError(nil))

	plain := errors.New("timeout")
	assert.Equal(t, plain, WithProgramError(plain))

	raw := errors.New("custom program error: 0x130")
	err := WithProgramError(raw)
	assert.ErrorIs(t, err, ErrNotAllowedApplicant)
	assert.ErrorIs(t, err, raw)

	already := fmt.Errorf("x: %w", ErrUninitialized)
	assert.Equal(t, already, WithProgramError(already))
}
