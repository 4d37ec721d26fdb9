package vesting

import (
	"context"
	"errors"
	"fmt"

	"github.com/decert-me/solana-go-sdk/program/token"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

var ErrTokenAccountNotFound = errors.New("token account not found")

// TokenAccount is the printable state of an SPL token account.
type TokenAccount struct {
	Address  string `json:"address" yaml:"address"`
	Mint     string `json:"mint" yaml:"mint"`
	Owner    string `json:"owner" yaml:"owner"`
	Amount   uint64 `json:"amount" yaml:"amount"`
	State    string `json:"state" yaml:"state"`
	Delegate string `json:"delegate,omitempty" yaml:"delegate,omitempty"`
}

func (t *TokenAccount) Frozen() bool {
	return t.State == "frozen"
}

// DecodeTokenAccount parses the 165 byte SPL token account layout.
func DecodeTokenAccount(address solana.PublicKey, data []byte) (*TokenAccount, error) {
	acc, err := token.TokenAccountFromData(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding token account data: %w", err)
	}
	out := &TokenAccount{
		Address: address.String(),
		Mint:    acc.Mint.ToBase58(),
		Owner:   acc.Owner.ToBase58(),
		Amount:  acc.Amount,
	}
	switch acc.State {
	case token.TokenAccountStateUninitialized:
		out.State = "uninitialized"
	case token.TokenAccountStateInitialized:
		out.State = "initialized"
	case token.TokenAccountFrozen:
		out.State = "frozen"
	default:
		out.State = fmt.Sprintf("unknown(%d)", acc.State)
	}
	if acc.Delegate != nil {
		out.Delegate = acc.Delegate.ToBase58()
	}
	return out, nil
}

// TokenAccount fetches and decodes a token account owned by the token program.
func (c *Client) TokenAccount(ctx context.Context, address solana.PublicKey) (*TokenAccount, error) {
	out, err := c.accounts.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (out == nil || out.Value == nil)) {
		return nil, fmt.Errorf("%w: %s", ErrTokenAccountNotFound, address)
	}
	if err != nil {
		return nil, fmt.Errorf("get token account %s: %w", address, err)
	}
	if !out.Value.Owner.Equals(TokenProgramID) {
		return nil, fmt.Errorf("%w: %s owned by %s", ErrInvalidOwner, address, out.Value.Owner)
	}
	if out.Value.Data == nil {
		return nil, fmt.Errorf("%w: %s has no data", ErrTokenAccountNotFound, address)
	}
	return DecodeTokenAccount(address, out.Value.Data.GetBinary())
}
