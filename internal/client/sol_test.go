package client

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiko-vesting/internal/vesting"
)

type fakeRPC struct {
	mu        sync.Mutex
	simErr    interface{}
	sendErr   error
	statuses  []*rpc.SignatureStatusesResult
	sent      []*solana.Transaction
	simulated int
	polls     int
}

func (f *fakeRPC) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash{9, 9, 9}},
	}, nil
}

func (f *fakeRPC) SimulateTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulated++
	return &rpc.SimulateTransactionResponse{
		Value: &rpc.SimulateTransactionResult{Err: f.simErr, Logs: []string{"Program log: test"}},
	}, nil
}

func (f *fakeRPC) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	f.sent = append(f.sent, tx)
	return tx.Signatures[0], nil
}

func (f *fakeRPC) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var status *rpc.SignatureStatusesResult
	if f.polls < len(f.statuses) {
		status = f.statuses[f.polls]
	} else if len(f.statuses) > 0 {
		status = f.statuses[len(f.statuses)-1]
	}
	f.polls++
	return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{status}}, nil
}

type fakeSubscription struct {
	result       *ws.SignatureResult
	err          error
	stall        bool
	unsubscribed bool
}

func (f *fakeSubscription) Recv(ctx context.Context) (*ws.SignatureResult, error) {
	if f.stall {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.result, f.err
}

func (f *fakeSubscription) Unsubscribe() {
	f.unsubscribed = true
}

type fakeSubscriber struct {
	sub *fakeSubscription
	err error
}

func (f *fakeSubscriber) SignatureSubscribe(signature solana.Signature, commitment rpc.CommitmentType) (SignatureSubscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func testInstruction(from solana.PublicKey) solana.Instruction {
	return system.NewTransferInstruction(1, from, solana.NewWallet().PublicKey()).Build()
}

func testOptions() Options {
	return Options{
		Commitment:     rpc.CommitmentConfirmed,
		ConfirmTimeout: 500 * time.Millisecond,
		PollInterval:   time.Millisecond,
	}
}

func TestSendWaitsForCommitment(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{statuses: []*rpc.SignatureStatusesResult{
		nil,
		{ConfirmationStatus: rpc.ConfirmationStatusProcessed},
		{ConfirmationStatus: rpc.ConfirmationStatusConfirmed},
	}}
	sender := NewSender(fake, nil, signer, testOptions())

	sig, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	require.NoError(t, err)
	require.Len(t, fake.sent, 1)
	assert.Equal(t, fake.sent[0].Signatures[0], sig)
	assert.Equal(t, 3, fake.polls)
	assert.Equal(t, 0, fake.simulated)
	assert.NoError(t, fake.sent[0].VerifySignatures())
}

func TestSendReportsOnChainFailure(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	instructionErr := map[string]interface{}{
		"InstructionError": []interface{}{float64(0), map[string]interface{}{"Custom": float64(304)}},
	}
	fake := &fakeRPC{statuses: []*rpc.SignatureStatusesResult{
		{ConfirmationStatus: rpc.ConfirmationStatusProcessed, Err: instructionErr},
	}}
	sender := NewSender(fake, nil, signer, testOptions())

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.False(t, txErr.Simulated)
	assert.Equal(t, 1, fake.polls)
	assert.Len(t, fake.sent, 1)
	assert.Equal(t, vesting.ErrNotAllowedApplicant, vesting.ParseProgramError(err))
}

func TestSendTimesOutWithoutResubmitting(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{}
	opts := testOptions()
	opts.ConfirmTimeout = 30 * time.Millisecond
	opts.PollInterval = 5 * time.Millisecond
	sender := NewSender(fake, nil, signer, opts)

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	assert.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.Len(t, fake.sent, 1)
	assert.Greater(t, fake.polls, 1)
}

func TestSendSimulationFailure(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{simErr: "AccountNotFound"}
	opts := testOptions()
	opts.Simulate = true
	sender := NewSender(fake, nil, signer, opts)

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.True(t, txErr.Simulated)
	assert.Equal(t, []string{"Program log: test"}, txErr.Logs)
	assert.Equal(t, 1, fake.simulated)
	assert.Empty(t, fake.sent)
}

func TestSendRPCError(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{sendErr: errors.New("Transaction simulation failed: custom program error: 0x12e")}
	sender := NewSender(fake, nil, signer, testOptions())

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	require.Error(t, err)
	assert.Equal(t, vesting.ErrVestingDeactived, vesting.ParseProgramError(err))
	assert.Equal(t, 0, fake.polls)
}

func TestSendDryRun(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{}
	out := new(bytes.Buffer)
	opts := testOptions()
	opts.DryRun = true
	opts.Out = out
	sender := NewSender(fake, nil, signer, opts)

	sig, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	require.NoError(t, err)
	assert.False(t, sig.IsZero())
	assert.Empty(t, fake.sent)
	assert.Equal(t, 0, fake.polls)
	assert.NotEmpty(t, out.String())
}

func TestTxBuilder(t *testing.T) {
	signer := solana.NewWallet().PrivateKey

	_, err := NewTxBuilder(signer.PublicKey(), solana.Hash{1}).BuildTx([]solana.PrivateKey{signer})
	assert.Error(t, err)

	builder := NewTxBuilder(signer.PublicKey(), solana.Hash{1})
	builder.AddInstruction(testInstruction(signer.PublicKey()))
	tx, err := builder.BuildTx([]solana.PrivateKey{signer})
	require.NoError(t, err)
	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, signer.PublicKey(), tx.Message.AccountKeys[0])
	assert.NoError(t, tx.VerifySignatures())

	other := solana.NewWallet().PrivateKey
	builder = NewTxBuilder(signer.PublicKey(), solana.Hash{1})
	builder.AddInstruction(testInstruction(signer.PublicKey()))
	_, err = builder.BuildTx([]solana.PrivateKey{other})
	assert.Error(t, err)
}

func TestReached(t *testing.T) {
	assert.True(t, reached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed))
	assert.True(t, reached(rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed))
	assert.False(t, reached(rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed))
	assert.True(t, reached(rpc.ConfirmationStatusProcessed, rpc.CommitmentProcessed))
	assert.False(t, reached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized))
	assert.False(t, reached("", rpc.CommitmentProcessed))
}

func TestSendConfirmsOverWebsocket(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{}
	sub := &fakeSubscription{result: &ws.SignatureResult{}}
	sender := NewSender(fake, &fakeSubscriber{sub: sub}, signer, testOptions())

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	require.NoError(t, err)
	assert.True(t, sub.unsubscribed)
	assert.Equal(t, 0, fake.polls)
	assert.Len(t, fake.sent, 1)
}

func TestSendWebsocketReportsOnChainFailure(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{}
	result := &ws.SignatureResult{}
	result.Value.Err = map[string]interface{}{
		"InstructionError": []interface{}{float64(0), map[string]interface{}{"Custom": float64(301)}},
	}
	sender := NewSender(fake, &fakeSubscriber{sub: &fakeSubscription{result: result}}, signer, testOptions())

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, vesting.ErrInvalidSuperOwner, vesting.ParseProgramError(err))
	assert.Equal(t, 0, fake.polls)
}

func TestSendFallsBackToPolling(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{statuses: []*rpc.SignatureStatusesResult{
		{ConfirmationStatus: rpc.ConfirmationStatusConfirmed},
	}}
	sender := NewSender(fake, &fakeSubscriber{err: errors.New("websocket closed")}, signer, testOptions())

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	require.NoError(t, err)
	assert.Equal(t, 1, fake.polls)
}

func TestStalledWebsocketLeavesTimeToPoll(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	fake := &fakeRPC{statuses: []*rpc.SignatureStatusesResult{
		{ConfirmationStatus: rpc.ConfirmationStatusFinalized},
	}}
	opts := testOptions()
	opts.ConfirmTimeout = 40 * time.Millisecond
	sub := &fakeSubscription{stall: true}
	sender := NewSender(fake, &fakeSubscriber{sub: sub}, signer, opts)

	_, err := sender.Send(context.Background(), testInstruction(signer.PublicKey()))
	require.NoError(t, err)
	assert.True(t, sub.unsubscribed)
	assert.Equal(t, 1, fake.polls)
	assert.Len(t, fake.sent, 1)
}
