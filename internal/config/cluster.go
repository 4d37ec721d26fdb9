package config

import (
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// Endpoints resolves the RPC and websocket URLs. Explicit URLs win over the
// cluster preset.
func (c SolanaConf) Endpoints() (string, string, error) {
	var cluster rpc.Cluster
	switch c.Env {
	case "mainnet-beta", "mainnet":
		cluster = rpc.MainNetBeta
	case "testnet":
		cluster = rpc.TestNet
	case "devnet", "":
		cluster = rpc.DevNet
	case "localnet":
		cluster = rpc.LocalNet
	default:
		if c.RPC == "" {
			return "", "", errors.Errorf("unknown cluster %q", c.Env)
		}
	}

	rpcURL, wsURL := cluster.RPC, cluster.WS
	if c.RPC != "" {
		rpcURL = c.RPC
		if c.WS == "" {
			wsURL = ""
		}
	}
	if c.WS != "" {
		wsURL = c.WS
	}
	return rpcURL, wsURL, nil
}

func (c SolanaConf) CommitmentType() rpc.CommitmentType {
	switch c.Commitment {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}
