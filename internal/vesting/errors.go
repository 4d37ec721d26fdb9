package vesting

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/spf13/cast"
)

// customErrorOffset is where Anchor (0.18) starts numbering #[error] enums.
const customErrorOffset = 300

// ProgramError is an error returned by the vesting program itself.
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

var (
	ErrUninitialized           = &ProgramError{customErrorOffset + 0, "Uninitialized", "Uninitialized account"}
	ErrInvalidSuperOwner       = &ProgramError{customErrorOffset + 1, "InvalidSuperOwner", "Invalid Super Owner"}
	ErrVestingDeactived        = &ProgramError{customErrorOffset + 2, "VestingDeactived", "Vesting is deactived. Allowed for all thaw and transfer action."}
	ErrInvalidWhitelistAddress = &ProgramError{customErrorOffset + 3, "InvalidWhitelistAddress", "Invalid Whitelist Address"}
	ErrNotAllowedApplicant     = &ProgramError{customErrorOffset + 4, "NotAllowedApplicant", "The Applicant Not Allowed In Whitelist"}
)

var programErrors = map[uint32]*ProgramError{
	ErrUninitialized.Code:           ErrUninitialized,
	ErrInvalidSuperOwner.Code:       ErrInvalidSuperOwner,
	ErrVestingDeactived.Code:        ErrVestingDeactived,
	ErrInvalidWhitelistAddress.Code: ErrInvalidWhitelistAddress,
	ErrNotAllowedApplicant.Code:     ErrNotAllowedApplicant,
}

// ProgramErrorFromCode maps a custom program error code to its definition.
func ProgramErrorFromCode(code uint32) (*ProgramError, bool) {
	e, ok := programErrors[code]
	return e, ok
}

var customErrorPattern = regexp.MustCompile(`custom program error: 0x([0-9a-fA-F]+)`)

// TransactionErr is implemented by errors that carry the raw transaction
// error value reported by the cluster.
type TransactionErr interface {
	TransactionErr() interface{}
}

// ParseProgramError extracts a vesting ProgramError from a transaction error
// value (as reported by simulation or signature status), an error carrying
// one, or an RPC error message. It returns nil if none is found.
func ParseProgramError(v interface{}) *ProgramError {
	switch t := v.(type) {
	case nil:
		return nil
	case *ProgramError:
		return t
	case error:
		var pe *ProgramError
		if errors.As(t, &pe) {
			return pe
		}
		var txErr TransactionErr
		if errors.As(t, &txErr) {
			if pe := ParseProgramError(txErr.TransactionErr()); pe != nil {
				return pe
			}
		}
		return parseProgramErrorMessage(t.Error())
	case string:
		return parseProgramErrorMessage(t)
	case map[string]interface{}:
		// {"InstructionError": [index, {"Custom": code}]}
		ixErr, ok := t["InstructionError"].([]interface{})
		if !ok || len(ixErr) != 2 {
			return nil
		}
		detail, ok := ixErr[1].(map[string]interface{})
		if !ok {
			return nil
		}
		code, err := cast.ToUint32E(detail["Custom"])
		if err != nil {
			return nil
		}
		pe, _ := ProgramErrorFromCode(code)
		return pe
	default:
		return nil
	}
}

func parseProgramErrorMessage(msg string) *ProgramError {
	m := customErrorPattern.FindStringSubmatch(msg)
	if m == nil {
		return nil
	}
	code, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return nil
	}
	pe, _ := ProgramErrorFromCode(uint32(code))
	return pe
}

// WithProgramError annotates err with the vesting ProgramError it carries so
// callers can match it with errors.Is.
func WithProgramError(err error) error {
	if err == nil {
		return nil
	}
	pe := ParseProgramError(err)
	if pe == nil || errors.Is(err, pe) {
		return err
	}
	return fmt.Errorf("%w: %w", pe, err)
}
