package types

import (
	"github.com/pkg/errors"

	"aiko-vesting/internal/vesting"
)

// ErrInput marks invalid command input.
var ErrInput = errors.New("Error input")

type UpdateStatusRequest struct {
	Admin  string `flag:"admin" validate:"required_without=Active,omitempty,pubkey"`
	Active string `flag:"active" validate:"required_without=Admin,omitempty,oneof=true false"`
}

type AddressRequest struct {
	Address string `flag:"address" validate:"required,pubkey"`
}

type AccountRequest struct {
	Account string `flag:"account" validate:"required,pubkey"`
}

type TransferRequest struct {
	Source      string `flag:"source" validate:"required,pubkey"`
	Destination string `flag:"destination" validate:"required,pubkey"`
	Amount      string `flag:"amount" validate:"required,numeric"`
}

type PdaRequest struct {
	Owner string `flag:"owner" validate:"omitempty,pubkey"`
}

type StatusResponse struct {
	GlobalAuthority  string   `json:"globalAuthority" yaml:"globalAuthority"`
	Admin            string   `json:"admin" yaml:"admin"`
	WhitelistedCount uint64   `json:"whitelistedCount" yaml:"whitelistedCount"`
	Whitelist        []string `json:"whitelist" yaml:"whitelist"`
	Active           uint64   `json:"active" yaml:"active"`
}

type TxResponse struct {
	Signature string                  `json:"signature,omitempty" yaml:"signature,omitempty"`
	Note      string                  `json:"note,omitempty" yaml:"note,omitempty"`
	Accounts  []*vesting.TokenAccount `json:"accounts,omitempty" yaml:"accounts,omitempty"`
}

type PdaResponse struct {
	ProgramID       string `json:"programId" yaml:"programId"`
	GlobalAuthority string `json:"globalAuthority" yaml:"globalAuthority"`
	Bump            uint8  `json:"bump" yaml:"bump"`
	VestingMint     string `json:"vestingMint" yaml:"vestingMint"`
	Owner           string `json:"owner,omitempty" yaml:"owner,omitempty"`
	TokenAccount    string `json:"tokenAccount,omitempty" yaml:"tokenAccount,omitempty"`
}
