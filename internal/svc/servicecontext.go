package svc

import (
	"context"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"aiko-vesting/internal/client"
	"aiko-vesting/internal/config"
	"aiko-vesting/internal/vesting"
)

type ServiceContext struct {
	Config config.Config

	RPC     *rpc.Client
	WS      *ws.Client
	Wallet  solana.PrivateKey
	Sender  *client.Sender
	Vesting *vesting.Client
}

// NewServiceContext connects to the configured cluster and loads the fee
// payer. Read-only commands pass requireWallet=false and may run without a
// keypair. Output of dry runs goes to out.
func NewServiceContext(ctx context.Context, c config.Config, out io.Writer, requireWallet bool) (*ServiceContext, error) {
	sc := c.Solana

	if sc.ProgramID != "" {
		programID, err := solana.PublicKeyFromBase58(sc.ProgramID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid program id %q", sc.ProgramID)
		}
		if !programID.Equals(vesting.ProgramID) {
			vesting.SetProgramID(programID)
		}
	}
	mint := vesting.VestingMint
	if sc.VestingMint != "" {
		m, err := solana.PublicKeyFromBase58(sc.VestingMint)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid vesting mint %q", sc.VestingMint)
		}
		mint = m
	}

	var payer solana.PublicKey
	wallet, err := client.LoadWallet(client.KeypairPath(sc.Keypair))
	switch {
	case err == nil:
		payer = wallet.PublicKey()
	case requireWallet:
		return nil, err
	default:
		logx.Debugf("no keypair loaded: %v", err)
	}

	rpcURL, wsURL, err := sc.Endpoints()
	if err != nil {
		return nil, err
	}
	logx.Debugf("rpc endpoint %s, payer %s", rpcURL, payer)

	svcCtx := &ServiceContext{
		Config: c,
		RPC:    rpc.New(rpcURL),
		Wallet: wallet,
	}

	var subscriber client.SignatureSubscriber
	if sc.Subscribe && wsURL != "" && !sc.DryRun {
		wsClient, err := ws.Connect(ctx, wsURL)
		if err != nil {
			logx.Errorf("websocket %s unavailable, confirmation will poll: %v", wsURL, err)
		} else {
			svcCtx.WS = wsClient
			subscriber = client.WSSubscriber{Client: wsClient}
		}
	}

	commitment := sc.CommitmentType()
	svcCtx.Sender = client.NewSender(svcCtx.RPC, subscriber, wallet, client.Options{
		Commitment:     commitment,
		SkipPreflight:  sc.SkipPreflight,
		Simulate:       sc.Simulate,
		DryRun:         sc.DryRun,
		ConfirmTimeout: sc.ConfirmTimeout,
		PollInterval:   sc.PollInterval,
		Out:            out,
	})
	svcCtx.Vesting = vesting.NewClient(
		svcCtx.RPC,
		svcCtx.Sender,
		payer,
		vesting.WithMint(mint),
		vesting.WithCommitment(commitment),
	)
	return svcCtx, nil
}

func (s *ServiceContext) Close() {
	if s.WS != nil {
		s.WS.Close()
	}
	if s.RPC != nil {
		if err := s.RPC.Close(); err != nil {
			logx.Errorf("close rpc client: %v", err)
		}
	}
}
