package client

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// TxBuilder accumulates instructions for one legacy transaction.
type TxBuilder struct {
	payer        solana.PublicKey
	blockhash    solana.Hash
	instructions []solana.Instruction
}

func NewTxBuilder(payer solana.PublicKey, blockhash solana.Hash) *TxBuilder {
	return &TxBuilder{
		payer:        payer,
		blockhash:    blockhash,
		instructions: make([]solana.Instruction, 0),
	}
}

func (b *TxBuilder) AddInstruction(instrs ...solana.Instruction) {
	b.instructions = append(b.instructions, instrs...)
}

// BuildTx assembles the transaction and signs it with every signer whose key
// the message requires.
func (b *TxBuilder) BuildTx(signers []solana.PrivateKey) (*solana.Transaction, error) {
	if len(b.instructions) == 0 {
		return nil, errors.New("no instructions to send")
	}
	tx, err := solana.NewTransaction(
		b.instructions,
		b.blockhash,
		solana.TransactionPayer(b.payer),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build transaction")
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "sign transaction")
	}
	return tx, nil
}
