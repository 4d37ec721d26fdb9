// Copyright 2025 github.com/dwnfan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ata

import (
	"context"
	"errors"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// AccountFetcher is the slice of the RPC client needed to probe accounts.
type AccountFetcher interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
}

// Result holds the create instructions to prepend and, in mint order, the
// associated accounts of the requested owner.
type Result struct {
	Instructions        []solana.Instruction
	DestinationAccounts []solana.PublicKey
}

// Planner collects associated account creations for one transaction. An
// address is probed and created at most once per planner, so several owners
// can be ensured without producing duplicate create instructions.
type Planner struct {
	fetcher      AccountFetcher
	payer        solana.PublicKey
	tokenProgram solana.PublicKey
	commitment   rpc.CommitmentType

	seen         map[solana.PublicKey]struct{}
	instructions []solana.Instruction
}

// NewPlanner creates a planner whose create instructions are funded by payer.
func NewPlanner(fetcher AccountFetcher, payer, tokenProgram solana.PublicKey) *Planner {
	return &Planner{
		fetcher:      fetcher,
		payer:        payer,
		tokenProgram: tokenProgram,
		commitment:   rpc.CommitmentConfirmed,
		seen:         make(map[solana.PublicKey]struct{}),
	}
}

// WithCommitment sets the commitment used when probing accounts.
func (p *Planner) WithCommitment(commitment rpc.CommitmentType) *Planner {
	p.commitment = commitment
	return p
}

// Ensure returns the associated accounts of owner for each mint, queueing a
// create instruction for every one missing on chain. When the payer differs
// from owner the payer's own accounts for the mints are ensured as well.
func (p *Planner) Ensure(ctx context.Context, owner solana.PublicKey, mints ...solana.PublicKey) ([]solana.PublicKey, error) {
	destinations := make([]solana.PublicKey, 0, len(mints))
	for _, mint := range mints {
		destination, err := p.ensureOne(ctx, owner, mint)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, destination)

		if !p.payer.Equals(owner) {
			if _, err := p.ensureOne(ctx, p.payer, mint); err != nil {
				return nil, err
			}
		}
	}
	return destinations, nil
}

// Instructions returns the queued create instructions in the order queued.
func (p *Planner) Instructions() []solana.Instruction {
	out := make([]solana.Instruction, len(p.instructions))
	copy(out, p.instructions)
	return out
}

func (p *Planner) ensureOne(ctx context.Context, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := FindAddress(owner, mint, p.tokenProgram)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive associated account of %s: %w", owner, err)
	}
	if _, ok := p.seen[address]; ok {
		return address, nil
	}

	exists, err := p.exists(ctx, address)
	if err != nil {
		return solana.PublicKey{}, err
	}
	p.seen[address] = struct{}{}
	if !exists {
		ix, err := NewCreateInstruction(p.payer, owner, mint, p.tokenProgram).ValidateAndBuild()
		if err != nil {
			return solana.PublicKey{}, err
		}
		p.instructions = append(p.instructions, ix)
	}
	return address, nil
}

func (p *Planner) exists(ctx context.Context, address solana.PublicKey) (bool, error) {
	out, err := p.fetcher.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: p.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get account %s: %w", address, err)
	}
	return out != nil && out.Value != nil, nil
}

// AccountsNeedCreate derives the associated accounts of owner for mints and
// returns the create instructions for those that do not exist yet.
func AccountsNeedCreate(
	ctx context.Context,
	fetcher AccountFetcher,
	payer solana.PublicKey,
	owner solana.PublicKey,
	tokenProgram solana.PublicKey,
	mints ...solana.PublicKey,
) (*Result, error) {
	planner := NewPlanner(fetcher, payer, tokenProgram)
	destinations, err := planner.Ensure(ctx, owner, mints...)
	if err != nil {
		return nil, err
	}
	return &Result{
		Instructions:        planner.Instructions(),
		DestinationAccounts: destinations,
	}, nil
}
