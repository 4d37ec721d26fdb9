package cmd

import (
	"github.com/spf13/cobra"

	"aiko-vesting/internal/logic"
	"aiko-vesting/internal/types"
)

var freezeReq types.AccountRequest

var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Freeze a vesting token account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(freezeReq); err != nil {
			return err
		}
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewToken(commandContext(cmd), svcCtx).Freeze(&freezeReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

var thawReq types.AccountRequest

var thawCmd = &cobra.Command{
	Use:   "thaw",
	Short: "Thaw a vesting token account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(thawReq); err != nil {
			return err
		}
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewToken(commandContext(cmd), svcCtx).Thaw(&thawReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

var transferReq types.TransferRequest

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer vesting tokens between owners, thawing them for the transfer",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(transferReq); err != nil {
			return err
		}
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewToken(commandContext(cmd), svcCtx).Transfer(&transferReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(freezeCmd, thawCmd, transferCmd)

	freezeCmd.Flags().StringVarP(&freezeReq.Account, "account", "a", "", "token account to freeze")
	thawCmd.Flags().StringVarP(&thawReq.Account, "account", "a", "", "token account to thaw")

	transferCmd.Flags().StringVarP(&transferReq.Source, "source", "s", "", "source owner wallet")
	transferCmd.Flags().StringVarP(&transferReq.Destination, "destination", "d", "", "destination owner wallet")
	transferCmd.Flags().StringVarP(&transferReq.Amount, "amount", "a", "", "amount in base units")
}
