package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeromicro/go-zero/core/logx"

	"aiko-vesting/internal/config"
	"aiko-vesting/internal/svc"
	"aiko-vesting/internal/types"
	"aiko-vesting/internal/vesting"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "aiko-vesting",
	Short: "aiko-vesting admin client",
	Long:  `Command line client for the Aiko token vesting program: whitelist management, freeze/thaw and unlock transfers.`,

	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "f", "etc/vesting.yaml", "set config file")
	pf.StringP("env", "e", "", "solana cluster: mainnet-beta|testnet|devnet|localnet (default devnet)")
	pf.StringP("url", "u", "", "custom rpc url, overrides --env")
	pf.String("ws", "", "custom websocket url")
	pf.StringP("keypair", "k", "", "fee payer keypair file or base58 secret (default $ANCHOR_WALLET or ~/.config/solana/id.json)")
	pf.Bool("dry-run", false, "print the signed transaction instead of sending it")
	pf.Bool("simulate", false, "simulate the transaction before sending it")
	pf.StringP("output", "o", "json", "output format: json|yaml")

	for _, key := range []string{"env", "url", "ws", "keypair", "dry-run", "simulate", "output"} {
		if err := viper.BindPFlag(key, pf.Lookup(key)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("VESTING")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("url", "VESTING_URL", "VESTING_RPC")
}

func initConfig(cmd *cobra.Command) error {
	for _, file := range []string{".env", "etc/.env"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(err, "load %s", file)
		}
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if v := viper.GetString("env"); v != "" {
		c.Solana.Env = v
	}
	if v := viper.GetString("url"); v != "" {
		c.Solana.RPC = v
	}
	if v := viper.GetString("ws"); v != "" {
		c.Solana.WS = v
		c.Solana.Subscribe = true
	}
	if v := viper.GetString("keypair"); v != "" {
		c.Solana.Keypair = v
	}
	if viper.GetBool("dry-run") {
		c.Solana.DryRun = true
	}
	if viper.GetBool("simulate") {
		c.Solana.Simulate = true
	}
	if _, _, err := c.Solana.Endpoints(); err != nil {
		return errors.Wrap(types.ErrInput, err.Error())
	}

	logx.MustSetup(c.Log.LogConf)
	if c.Banner.Enable {
		banner := figure.NewColorFigure(c.Banner.Text, c.Banner.FontName, c.Banner.Color, true)
		fmt.Fprintln(cmd.ErrOrStderr(), banner.ColorString())
	}
	cfg = c
	return nil
}

func newServiceContext(cmd *cobra.Command, requireWallet bool) (*svc.ServiceContext, error) {
	return svc.NewServiceContext(commandContext(cmd), cfg, cmd.OutOrStdout(), requireWallet)
}

func reportError(err error) {
	if errors.Is(err, types.ErrInput) {
		fmt.Println(types.ErrInput.Error())
		logx.Error(err)
		return
	}
	if pe := vesting.ParseProgramError(err); pe != nil {
		fmt.Fprintf(os.Stderr, "program error %s (%d): %s\n", pe.Name, pe.Code, pe.Msg)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
