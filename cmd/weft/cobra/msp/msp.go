/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package msp

import (
	"github.com/spf13/cobra"
)

// Cmd returns the Cobra Command for MSP directory operations.
func Cmd() *cobra.Command {
	mspCobraCommand.AddCommand(importCmd())
	mspCobraCommand.AddCommand(exportCmd())

	return mspCobraCommand
}

var mspCobraCommand = &cobra.Command{
	Use:   "msp",
	Short: "Work with MSP credential directories.",
	Long:  `Convert identities between application wallets and the MSP directory layout read by peer and orderer processes.`,
}
