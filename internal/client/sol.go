package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	defaultConfirmTimeout = 60 * time.Second
	defaultPollInterval   = 2 * time.Second
)

var (
	errPending             = errors.New("transaction not yet confirmed")
	ErrConfirmationTimeout = errors.New("transaction was not confirmed in time")
)

// RPC is the subset of *rpc.Client used to submit transactions.
type RPC interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SimulateTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error)
	SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
}

// SignatureSubscription is the subset of *ws.SignatureSubscription used to
// await one notification.
type SignatureSubscription interface {
	Recv(ctx context.Context) (*ws.SignatureResult, error)
	Unsubscribe()
}

// SignatureSubscriber opens signature subscriptions.
type SignatureSubscriber interface {
	SignatureSubscribe(signature solana.Signature, commitment rpc.CommitmentType) (SignatureSubscription, error)
}

// WSSubscriber adapts *ws.Client to SignatureSubscriber.
type WSSubscriber struct {
	*ws.Client
}

func (s WSSubscriber) SignatureSubscribe(signature solana.Signature, commitment rpc.CommitmentType) (SignatureSubscription, error) {
	sub, err := s.Client.SignatureSubscribe(signature, commitment)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// TransactionError is a transaction that reached the cluster and failed,
// either in simulation or on chain.
type TransactionError struct {
	Signature solana.Signature
	Simulated bool
	Err       interface{}
	Logs      []string
}

func (e *TransactionError) Error() string {
	if e.Simulated {
		return fmt.Sprintf("simulation failed: %v", e.Err)
	}
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

// TransactionErr returns the raw error value reported by the cluster.
func (e *TransactionError) TransactionErr() interface{} {
	return e.Err
}

type Options struct {
	Commitment     rpc.CommitmentType
	SkipPreflight  bool
	Simulate       bool
	DryRun         bool
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	Out            io.Writer
}

// Sender signs transactions with one key, submits each exactly once and
// waits for it to reach the configured commitment.
type Sender struct {
	rpc    RPC
	ws     SignatureSubscriber
	signer solana.PrivateKey
	opts   Options
}

// NewSender creates a sender. wsClient may be nil, in which case
// confirmation is polled over RPC.
func NewSender(rpcClient RPC, wsClient SignatureSubscriber, signer solana.PrivateKey, opts Options) *Sender {
	if opts.Commitment == "" {
		opts.Commitment = rpc.CommitmentConfirmed
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = defaultConfirmTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Sender{
		rpc:    rpcClient,
		ws:     wsClient,
		signer: signer,
		opts:   opts,
	}
}

func (s *Sender) Payer() solana.PublicKey {
	return s.signer.PublicKey()
}

// BuildTx fetches a recent blockhash and returns the signed transaction.
func (s *Sender) BuildTx(ctx context.Context, instructions ...solana.Instruction) (*solana.Transaction, error) {
	recent, err := s.rpc.GetLatestBlockhash(ctx, s.opts.Commitment)
	if err != nil {
		return nil, errors.Wrap(err, "get latest blockhash")
	}
	if recent == nil || recent.Value == nil {
		return nil, errors.New("get latest blockhash: empty response")
	}
	builder := NewTxBuilder(s.Payer(), recent.Value.Blockhash)
	builder.AddInstruction(instructions...)
	return builder.BuildTx([]solana.PrivateKey{s.signer})
}

// Send builds, signs and submits a transaction, then waits for
// confirmation. In dry-run mode the signed transaction is printed and
// nothing is submitted.
func (s *Sender) Send(ctx context.Context, instructions ...solana.Instruction) (solana.Signature, error) {
	tx, err := s.BuildTx(ctx, instructions...)
	if err != nil {
		return solana.Signature{}, err
	}

	if s.opts.DryRun {
		fmt.Fprintln(s.opts.Out, tx.String())
		return tx.Signatures[0], nil
	}

	if s.opts.Simulate {
		if err := s.Simulate(ctx, tx); err != nil {
			return solana.Signature{}, err
		}
	}

	sig, err := s.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       s.opts.SkipPreflight,
		PreflightCommitment: s.opts.Commitment,
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "send transaction")
	}
	logx.Infof("transaction sent: %s", sig)

	if err := s.WaitForConfirmation(ctx, sig); err != nil {
		return sig, err
	}
	logx.Infof("transaction %s reached %s", sig, s.opts.Commitment)
	return sig, nil
}

// Simulate runs tx against the cluster and returns a *TransactionError when
// it fails.
func (s *Sender) Simulate(ctx context.Context, tx *solana.Transaction) error {
	out, err := s.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		Commitment: s.opts.Commitment,
	})
	if err != nil {
		return errors.Wrap(err, "simulate transaction")
	}
	if out == nil || out.Value == nil {
		return errors.New("simulate transaction: empty response")
	}
	if out.Value.Err != nil {
		logx.Errorf("simulation logs:\n%s", strings.Join(out.Value.Logs, "\n"))
		return &TransactionError{
			Simulated: true,
			Err:       out.Value.Err,
			Logs:      out.Value.Logs,
		}
	}
	return nil
}

// WaitForConfirmation blocks until sig reaches the commitment, fails or the
// confirm timeout elapses. It never resubmits the transaction.
func (s *Sender) WaitForConfirmation(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ConfirmTimeout)
	defer cancel()

	if s.ws != nil {
		// A stalled subscription leaves polling the other half of the budget.
		subCtx, subCancel := context.WithTimeout(ctx, s.opts.ConfirmTimeout/2)
		err := s.subscribe(subCtx, sig)
		subCancel()
		if err == nil {
			return nil
		}
		var txErr *TransactionError
		if errors.As(err, &txErr) {
			return err
		}
		logx.Errorf("signature subscription for %s failed, polling instead: %v", sig, err)
	}
	return s.poll(ctx, sig)
}

func (s *Sender) subscribe(ctx context.Context, sig solana.Signature) error {
	sub, err := s.ws.SignatureSubscribe(sig, s.opts.Commitment)
	if err != nil {
		return errors.Wrap(err, "subscribe signature")
	}
	defer sub.Unsubscribe()

	got, err := sub.Recv(ctx)
	if err != nil {
		return errors.Wrap(err, "receive signature notification")
	}
	if got.Value.Err != nil {
		return &TransactionError{Signature: sig, Err: got.Value.Err}
	}
	return nil
}

func (s *Sender) poll(ctx context.Context, sig solana.Signature) error {
	attempts := uint(s.opts.ConfirmTimeout/s.opts.PollInterval) + 1
	err := retry.Do(
		func() error {
			return s.checkStatus(ctx, sig)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(s.opts.PollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var txErr *TransactionError
			return !errors.As(err, &txErr)
		}),
	)
	if err == nil {
		return nil
	}
	var txErr *TransactionError
	if errors.As(err, &txErr) {
		return err
	}
	if errors.Is(err, errPending) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(ErrConfirmationTimeout, "%s", sig)
	}
	return errors.Wrapf(err, "confirm %s", sig)
}

func (s *Sender) checkStatus(ctx context.Context, sig solana.Signature) error {
	out, err := s.rpc.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return errors.Wrap(err, "get signature status")
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return errPending
	}
	status := out.Value[0]
	if status.Err != nil {
		return &TransactionError{Signature: sig, Err: status.Err}
	}
	if !reached(status.ConfirmationStatus, s.opts.Commitment) {
		return errPending
	}
	return nil
}

func reached(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	rank := func(v string) int {
		switch v {
		case string(rpc.ConfirmationStatusProcessed):
			return 1
		case string(rpc.ConfirmationStatusConfirmed):
			return 2
		case string(rpc.ConfirmationStatusFinalized):
			return 3
		default:
			return 0
		}
	}
	return rank(string(status)) > 0 && rank(string(status)) >= rank(string(commitment))
}
