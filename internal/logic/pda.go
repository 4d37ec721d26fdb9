package logic

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"aiko-vesting/internal/config"
	"aiko-vesting/internal/types"
	"aiko-vesting/internal/vesting"
	"aiko-vesting/pkg/ata"
)

// Pda derives addresses offline; it needs no cluster connection.
type Pda struct {
	logx.Logger
	ctx context.Context
	c   config.Config
}

func NewPda(ctx context.Context, c config.Config) *Pda {
	return &Pda{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		c:      c,
	}
}

func (l *Pda) Pda(req *types.PdaRequest) (*types.PdaResponse, error) {
	programID := vesting.ProgramID
	if l.c.Solana.ProgramID != "" {
		key, err := solana.PublicKeyFromBase58(l.c.Solana.ProgramID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid program id %q", l.c.Solana.ProgramID)
		}
		programID = key
	}
	mint := vesting.VestingMint
	if l.c.Solana.VestingMint != "" {
		key, err := solana.PublicKeyFromBase58(l.c.Solana.VestingMint)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid vesting mint %q", l.c.Solana.VestingMint)
		}
		mint = key
	}

	globalAuthority, bump, err := vesting.FindGlobalAuthority(programID)
	if err != nil {
		return nil, err
	}
	resp := &types.PdaResponse{
		ProgramID:       programID.String(),
		GlobalAuthority: globalAuthority.String(),
		Bump:            bump,
		VestingMint:     mint.String(),
	}
	if req.Owner != "" {
		owner, err := parsePublicKey("owner", req.Owner)
		if err != nil {
			return nil, err
		}
		account, _, err := ata.FindAddress(owner, mint, vesting.TokenProgramID)
		if err != nil {
			return nil, err
		}
		resp.Owner = owner.String()
		resp.TokenAccount = account.String()
	}
	return resp, nil
}
