package logic

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/zeromicro/go-zero/core/logx"

	"aiko-vesting/internal/svc"
	"aiko-vesting/internal/types"
	"aiko-vesting/internal/vesting"
)

type Admin struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAdmin(ctx context.Context, svcCtx *svc.ServiceContext) *Admin {
	return &Admin{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *Admin) Initialize() (*types.TxResponse, error) {
	l.Infof("initialize global state, admin %s", l.svcCtx.Vesting.Wallet())
	sig, err := l.svcCtx.Vesting.Initialize(l.ctx)
	if err != nil {
		return nil, err
	}
	return &types.TxResponse{Signature: sig.String()}, nil
}

func (l *Admin) UpdateStatus(req *types.UpdateStatusRequest) (*types.TxResponse, error) {
	var admin *solana.PublicKey
	if req.Admin != "" {
		key, err := parsePublicKey("admin", req.Admin)
		if err != nil {
			return nil, err
		}
		admin = &key
	}
	var active *bool
	if req.Active != "" {
		if req.Active != "true" && req.Active != "false" {
			return nil, errors.Wrapf(types.ErrInput, "--active must be true or false, got %q", req.Active)
		}
		v, err := cast.ToBoolE(req.Active)
		if err != nil {
			return nil, errors.Wrap(types.ErrInput, err.Error())
		}
		active = &v
	}

	sig, err := l.svcCtx.Vesting.UpdateStatus(l.ctx, admin, active)
	if errors.Is(err, vesting.ErrNothingToUpdate) {
		return nil, errors.Wrap(types.ErrInput, err.Error())
	}
	if err != nil {
		return nil, err
	}
	return &types.TxResponse{Signature: sig.String()}, nil
}

// AddToWhitelist is a no-op with a note when the address is already listed.
func (l *Admin) AddToWhitelist(req *types.AddressRequest) (*types.TxResponse, error) {
	address, err := parsePublicKey("address", req.Address)
	if err != nil {
		return nil, err
	}
	l.Infof("add %s to whitelist", address)
	sig, err := l.svcCtx.Vesting.AddToWhitelist(l.ctx, address)
	if errors.Is(err, vesting.ErrAlreadyWhitelisted) {
		return &types.TxResponse{Note: address.String() + " is already whitelisted"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &types.TxResponse{Signature: sig.String()}, nil
}

func (l *Admin) RemoveFromWhitelist(req *types.AddressRequest) (*types.TxResponse, error) {
	address, err := parsePublicKey("address", req.Address)
	if err != nil {
		return nil, err
	}
	l.Infof("remove %s from whitelist", address)
	sig, err := l.svcCtx.Vesting.RemoveFromWhitelist(l.ctx, address)
	if err != nil {
		return nil, err
	}
	return &types.TxResponse{Signature: sig.String()}, nil
}

func (l *Admin) TransferAuthority(req *types.AddressRequest) (*types.TxResponse, error) {
	address, err := parsePublicKey("address", req.Address)
	if err != nil {
		return nil, err
	}
	l.Infof("transfer freeze authority of %s to %s", l.svcCtx.Vesting.Mint(), address)
	sig, err := l.svcCtx.Vesting.TransferAuthority(l.ctx, address)
	if err != nil {
		return nil, err
	}
	return &types.TxResponse{Signature: sig.String()}, nil
}

func parsePublicKey(flag, value string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(types.ErrInput, "--%s: %v", flag, err)
	}
	return key, nil
}
