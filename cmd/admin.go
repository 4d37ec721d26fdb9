package cmd

import (
	"github.com/spf13/cobra"

	"aiko-vesting/internal/logic"
	"aiko-vesting/internal/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the global state with the wallet as admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewAdmin(commandContext(cmd), svcCtx).Initialize()
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

var updateStatusReq types.UpdateStatusRequest

var updateStatusCmd = &cobra.Command{
	Use:   "update_status",
	Short: "Change the admin and/or the vesting active flag",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(updateStatusReq); err != nil {
			return err
		}
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewAdmin(commandContext(cmd), svcCtx).UpdateStatus(&updateStatusReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

var addWhitelistReq types.AddressRequest

var addWhitelistCmd = &cobra.Command{
	Use:   "add_whitelist",
	Short: "Add an address to the whitelist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(addWhitelistReq); err != nil {
			return err
		}
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewAdmin(commandContext(cmd), svcCtx).AddToWhitelist(&addWhitelistReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

var removeWhitelistReq types.AddressRequest

var removeWhitelistCmd = &cobra.Command{
	Use:   "remove_whitelist",
	Short: "Remove an address from the whitelist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(removeWhitelistReq); err != nil {
			return err
		}
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewAdmin(commandContext(cmd), svcCtx).RemoveFromWhitelist(&removeWhitelistReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

var transferAuthorityReq types.AddressRequest

var transferAuthorityCmd = &cobra.Command{
	Use:   "transfer_authority",
	Short: "Move the vesting mint's freeze authority to another address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(transferAuthorityReq); err != nil {
			return err
		}
		svcCtx, err := newServiceContext(cmd, true)
		if err != nil {
			return err
		}
		defer svcCtx.Close()

		resp, err := logic.NewAdmin(commandContext(cmd), svcCtx).TransferAuthority(&transferAuthorityReq)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(initCmd, updateStatusCmd, addWhitelistCmd, removeWhitelistCmd, transferAuthorityCmd)

	updateStatusCmd.Flags().StringVarP(&updateStatusReq.Admin, "admin", "a", "", "new admin address")
	updateStatusCmd.Flags().StringVarP(&updateStatusReq.Active, "active", "s", "", "vesting active state: true|false")

	addWhitelistCmd.Flags().StringVarP(&addWhitelistReq.Address, "address", "a", "", "address to whitelist")
	removeWhitelistCmd.Flags().StringVarP(&removeWhitelistReq.Address, "address", "a", "", "address to remove")
	transferAuthorityCmd.Flags().StringVarP(&transferAuthorityReq.Address, "address", "a", "", "new freeze authority")
}
