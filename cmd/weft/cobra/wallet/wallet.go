/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"github.com/spf13/cobra"
)

// Cmd returns the Cobra Command for wallet operations.
func Cmd() *cobra.Command {
	walletCobraCommand.AddCommand(listCmd())
	walletCobraCommand.AddCommand(importCmd())
	walletCobraCommand.AddCommand(exportCmd())

	return walletCobraCommand
}

var walletCobraCommand = &cobra.Command{
	Use:   "wallet",
	Short: "Work with application wallets.",
	Long:  `List, import and export identities held in an application wallet.`,
}
