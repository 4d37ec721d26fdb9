package cmd

import (
	"github.com/spf13/cobra"

	"aiko-vesting/internal/logic"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the vesting global state",
	RunE: func(cmd *cobra.Command, args []string) error {
		svcCtx, err := newServiceContext(cmd, false)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewStatus(commandContext(cmd), svcCtx).Status()
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
