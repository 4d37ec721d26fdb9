package vesting

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/zeromicro/go-zero/core/logx"

	"aiko-vesting/pkg/ata"
)

var (
	ErrNotInitialized     = errors.New("global info not found, run init first")
	ErrInvalidOwner       = errors.New("account is not owned by the expected program")
	ErrNothingToUpdate    = errors.New("nothing to update: set admin and/or active")
	ErrWhitelistFull      = fmt.Errorf("whitelist is full (%d entries)", MaxWhitelist)
	ErrAlreadyWhitelisted = errors.New("address is already whitelisted")
	ErrNotWhitelisted     = errors.New("address is not whitelisted")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
)

// Sender signs, submits and confirms a transaction made of instructions,
// paid for by the wallet.
type Sender interface {
	Send(ctx context.Context, instructions ...solana.Instruction) (solana.Signature, error)
}

// Client issues the vesting program's instructions on behalf of one wallet.
type Client struct {
	accounts   ata.AccountFetcher
	sender     Sender
	wallet     solana.PublicKey
	mint       solana.PublicKey
	commitment rpc.CommitmentType
}

type Option func(*Client)

// WithMint overrides the vesting token mint.
func WithMint(mint solana.PublicKey) Option {
	return func(c *Client) {
		c.mint = mint
	}
}

// WithCommitment sets the commitment used for account reads.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

func NewClient(accounts ata.AccountFetcher, sender Sender, wallet solana.PublicKey, opts ...Option) *Client {
	c := &Client{
		accounts:   accounts,
		sender:     sender,
		wallet:     wallet,
		mint:       VestingMint,
		commitment: rpc.CommitmentConfirmed,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Wallet() solana.PublicKey { return c.wallet }

func (c *Client) Mint() solana.PublicKey { return c.mint }

// GlobalAuthority derives the program's global PDA and its bump.
func (c *Client) GlobalAuthority() (solana.PublicKey, uint8, error) {
	addr, bump, err := FindGlobalAuthority(ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive global authority: %w", err)
	}
	return addr, bump, nil
}

// Status reads and decodes GlobalInfo.
func (c *Client) Status(ctx context.Context) (*GlobalInfo, error) {
	globalAuthority, _, err := c.GlobalAuthority()
	if err != nil {
		return nil, err
	}
	out, err := c.accounts.GetAccountInfoWithOpts(ctx, globalAuthority, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (out == nil || out.Value == nil)) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("get global info %s: %w", globalAuthority, err)
	}
	if !out.Value.Owner.Equals(ProgramID) {
		return nil, fmt.Errorf("%w: %s owned by %s", ErrInvalidOwner, globalAuthority, out.Value.Owner)
	}
	if out.Value.Data == nil {
		return nil, ErrInvalidAccountDataSize
	}
	return DecodeGlobalInfo(out.Value.Data.GetBinary())
}

// Initialize creates GlobalInfo with the wallet as admin.
func (c *Client) Initialize(ctx context.Context) (solana.Signature, error) {
	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := NewInitializeInstruction(bump, globalAuthority, c.wallet).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// UpdateStatus changes the admin and/or the active flag. At least one of
// newAdmin and active must be set.
func (c *Client) UpdateStatus(ctx context.Context, newAdmin *solana.PublicKey, active *bool) (solana.Signature, error) {
	if newAdmin == nil && active == nil {
		return solana.Signature{}, ErrNothingToUpdate
	}
	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return solana.Signature{}, err
	}
	var activeState *uint64
	if active != nil {
		v := uint64(0)
		if *active {
			v = 1
		}
		activeState = &v
	}
	ix, err := NewUpdateGlobalStateInstruction(bump, newAdmin, activeState, globalAuthority, c.wallet).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// AddToWhitelist whitelists address. No transaction is sent when the
// address is already present or the list is full.
func (c *Client) AddToWhitelist(ctx context.Context, address solana.PublicKey) (solana.Signature, error) {
	info, err := c.Status(ctx)
	if err != nil {
		return solana.Signature{}, err
	}
	if info.Contains(address) {
		return solana.Signature{}, ErrAlreadyWhitelisted
	}
	if info.Full() {
		return solana.Signature{}, ErrWhitelistFull
	}
	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := NewAddToWhitelistInstruction(bump, address, globalAuthority, c.wallet).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// RemoveFromWhitelist removes address from the whitelist.
func (c *Client) RemoveFromWhitelist(ctx context.Context, address solana.PublicKey) (solana.Signature, error) {
	info, err := c.Status(ctx)
	if err != nil {
		return solana.Signature{}, err
	}
	if !info.Contains(address) {
		return solana.Signature{}, ErrNotWhitelisted
	}
	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := NewRemoveFromWhitelistInstruction(bump, address, globalAuthority, c.wallet).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// TransferAuthority moves the mint's freeze authority to newAuthority.
func (c *Client) TransferAuthority(ctx context.Context, newAuthority solana.PublicKey) (solana.Signature, error) {
	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := NewTransferFreezeAuthorityInstruction(bump, globalAuthority, c.wallet, c.mint, newAuthority).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// Freeze freezes tokenAccount.
func (c *Client) Freeze(ctx context.Context, tokenAccount solana.PublicKey) (solana.Signature, error) {
	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := NewFreezeTokenAccountInstruction(bump, globalAuthority, c.mint, tokenAccount).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// Thaw thaws tokenAccount with the wallet as applicant.
func (c *Client) Thaw(ctx context.Context, tokenAccount solana.PublicKey) (solana.Signature, error) {
	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := NewThawTokenAccountInstruction(bump, c.wallet, globalAuthority, c.mint, tokenAccount).ValidateAndBuild()
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// TransferResult describes a submitted transfer_with_unlock.
type TransferResult struct {
	Signature          solana.Signature
	SourceAccount      solana.PublicKey
	DestinationAccount solana.PublicKey
	CreatedAccounts    int
}

// TransferWithUnlock moves amount of the vesting token from source's
// associated account to destination's, creating missing associated
// accounts in the same transaction.
func (c *Client) TransferWithUnlock(ctx context.Context, source, destination solana.PublicKey, amount uint64) (*TransferResult, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	planner := ata.NewPlanner(c.accounts, c.wallet, TokenProgramID).WithCommitment(c.commitment)
	sources, err := planner.Ensure(ctx, source, c.mint)
	if err != nil {
		return nil, err
	}
	destinations, err := planner.Ensure(ctx, destination, c.mint)
	if err != nil {
		return nil, err
	}

	globalAuthority, bump, err := c.GlobalAuthority()
	if err != nil {
		return nil, err
	}
	ix, err := NewTransferWithUnlockInstruction(
		bump,
		amount,
		c.wallet,
		globalAuthority,
		c.mint,
		sources[0],
		destinations[0],
	).ValidateAndBuild()
	if err != nil {
		return nil, err
	}

	instructions := planner.Instructions()
	created := len(instructions)
	if created > 0 {
		logx.Infof("creating %d associated token account(s)", created)
	}
	sig, err := c.send(ctx, append(instructions, ix)...)
	if err != nil {
		return nil, err
	}
	return &TransferResult{
		Signature:          sig,
		SourceAccount:      sources[0],
		DestinationAccount: destinations[0],
		CreatedAccounts:    created,
	}, nil
}

func (c *Client) send(ctx context.Context, instructions ...solana.Instruction) (solana.Signature, error) {
	sig, err := c.sender.Send(ctx, instructions...)
	if err != nil {
		return sig, WithProgramError(err)
	}
	return sig, nil
}
