package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"aiko-vesting/internal/svc"
	"aiko-vesting/internal/types"
)

type Status struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStatus(ctx context.Context, svcCtx *svc.ServiceContext) *Status {
	return &Status{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *Status) Status() (resp *types.StatusResponse, err error) {
	globalAuthority, _, err := l.svcCtx.Vesting.GlobalAuthority()
	if err != nil {
		return nil, err
	}
	info, err := l.svcCtx.Vesting.Status(l.ctx)
	if err != nil {
		return nil, err
	}

	whitelisted := info.Whitelisted()
	resp = &types.StatusResponse{
		GlobalAuthority:  globalAuthority.String(),
		Admin:            info.Admin.String(),
		WhitelistedCount: info.WhitelistedCount,
		Whitelist:        make([]string, 0, len(whitelisted)),
		Active:           info.Active,
	}
	for _, key := range whitelisted {
		resp.Whitelist = append(resp.Whitelist, key.String())
	}
	l.Debugf("global info %s: %d whitelisted, active=%d", globalAuthority, info.WhitelistedCount, info.Active)
	return resp, nil
}
