package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

type Config struct {
	Log    LogConf
	Banner BannerConf
	Solana SolanaConf
}

type LogConf struct {
	logx.LogConf
}

type BannerConf struct {
	Enable   bool   `json:",default=true"`
	Text     string `json:",default=VESTING"`
	Color    string `json:",default=green"`
	FontName string `json:",default=standard,options=big|larry3d|starwars|standard"`
}

type SolanaConf struct {
	Env            string        `json:",default=devnet,options=mainnet-beta|mainnet|testnet|devnet|localnet"`
	RPC            string        `json:",optional"`
	WS             string        `json:",optional"`
	Subscribe      bool          `json:",default=false"`
	Commitment     string        `json:",default=confirmed,options=processed|confirmed|finalized"`
	Keypair        string        `json:",optional"`
	ProgramID      string        `json:",optional"`
	VestingMint    string        `json:",optional"`
	SkipPreflight  bool          `json:",default=false"`
	Simulate       bool          `json:",default=false"`
	DryRun         bool          `json:",default=false"`
	ConfirmTimeout time.Duration `json:",default=60s"`
	PollInterval   time.Duration `json:",default=2s"`
}

// Load reads the YAML config at path, expanding ${VAR} references from the
// environment. A missing file yields the defaults.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := conf.Load(path, &c, conf.UseEnv()); err != nil {
				return c, errors.Wrapf(err, "load config %s", path)
			}
			return c, nil
		}
		logx.Debugf("config %s not found, using defaults", path)
	}
	if err := conf.LoadFromYamlBytes([]byte("{}"), &c); err != nil {
		return c, errors.Wrap(err, "load default config")
	}
	return c, nil
}
