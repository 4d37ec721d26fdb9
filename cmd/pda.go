package cmd

import (
	"github.com/spf13/cobra"

	"aiko-vesting/internal/logic"
	"aiko-vesting/internal/types"
)

var pdaReq types.PdaRequest

var pdaCmd = &cobra.Command{
	Use:   "pda",
	Short: "Print the global authority address and an owner's vesting token account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(pdaReq); err != nil {
			return err
		}
		resp, err := logic.NewPda(commandContext(cmd), cfg).Pda(&pdaReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(pdaCmd)
	pdaCmd.Flags().StringVar(&pdaReq.Owner, "owner", "", "owner wallet whose vesting token account to derive")
}
