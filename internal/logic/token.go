package logic

import (
	"context"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"aiko-vesting/internal/svc"
	"aiko-vesting/internal/types"
)

type Token struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewToken(ctx context.Context, svcCtx *svc.ServiceContext) *Token {
	return &Token{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *Token) Freeze(req *types.AccountRequest) (*types.TxResponse, error) {
	account, err := parsePublicKey("account", req.Account)
	if err != nil {
		return nil, err
	}
	l.Infof("freeze %s", account)
	sig, err := l.svcCtx.Vesting.Freeze(l.ctx, account)
	if err != nil {
		return nil, err
	}
	return l.result(sig, account), nil
}

func (l *Token) Thaw(req *types.AccountRequest) (*types.TxResponse, error) {
	account, err := parsePublicKey("account", req.Account)
	if err != nil {
		return nil, err
	}
	l.Infof("thaw %s", account)
	sig, err := l.svcCtx.Vesting.Thaw(l.ctx, account)
	if err != nil {
		return nil, err
	}
	return l.result(sig, account), nil
}

// Transfer moves tokens between the associated accounts of two owners.
func (l *Token) Transfer(req *types.TransferRequest) (*types.TxResponse, error) {
	source, err := parsePublicKey("source", req.Source)
	if err != nil {
		return nil, err
	}
	destination, err := parsePublicKey("destination", req.Destination)
	if err != nil {
		return nil, err
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	l.Infof("transfer %d from %s to %s", amount, source, destination)
	res, err := l.svcCtx.Vesting.TransferWithUnlock(l.ctx, source, destination, amount)
	if err != nil {
		return nil, err
	}
	return l.result(res.Signature, res.SourceAccount, res.DestinationAccount), nil
}

// ParseAmount reads a positive decimal amount in base units, up to the u64
// maximum.
func ParseAmount(value string) (uint64, error) {
	amount, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(types.ErrInput, "--amount: %v", err)
	}
	if amount == 0 {
		return 0, errors.Wrap(types.ErrInput, "--amount must be greater than zero")
	}
	return amount, nil
}

// result attaches the current state of accounts. Dry runs only carry the
// signature.
func (l *Token) result(sig solana.Signature, accounts ...solana.PublicKey) *types.TxResponse {
	resp := &types.TxResponse{Signature: sig.String()}
	if l.svcCtx.Config.Solana.DryRun {
		return resp
	}
	for _, account := range accounts {
		acc, err := l.svcCtx.Vesting.TokenAccount(l.ctx, account)
		if err != nil {
			l.Errorf("fetch token account %s: %v", account, err)
			continue
		}
		resp.Accounts = append(resp.Accounts, acc)
	}
	return resp
}
