/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	"github.com/hyperledgendary/weft/cmd/weft/cobra/microfab"
	mspcmd "github.com/hyperledgendary/weft/cmd/weft/cobra/msp"
	"github.com/hyperledgendary/weft/cmd/weft/cobra/version"
	walletcmd "github.com/hyperledgendary/weft/cmd/weft/cobra/wallet"
	"github.com/spf13/cobra"
)

// The main command describes the tool and defaults to printing help.
var mainCmd = &cobra.Command{
	Use:   "weft",
	Short: "Convert Fabric identity material between wallets, MSP directories and identity JSON.",
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			fmt.Print(version.GetInfo())
		} else {
			_ = cmd.Help()
		}
	},
}

var versionFlag bool

func main() {
	mainFlags := mainCmd.PersistentFlags()
	mainFlags.BoolVarP(&versionFlag, "version", "v", false, "display current version of weft")

	mainCmd.AddCommand(version.Cmd())
	mainCmd.AddCommand(walletcmd.Cmd())
	mainCmd.AddCommand(mspcmd.Cmd())
	mainCmd.AddCommand(microfab.Cmd())

	if mainCmd.Execute() != nil {
		os.Exit(1)
	}
}
