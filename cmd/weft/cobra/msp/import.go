/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package msp

import (
	"fmt"

	"github.com/hyperledgendary/weft/weft/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type importArgs struct {
	walletPath string
	mspPath    string
	mspID      string
	force      bool
}

func importCmd() *cobra.Command {
	args := &importArgs{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an MSP credential directory into a wallet.",
		Long:  `Read the signing material stored in an MSP directory tree and store it as a wallet entry. The MSP id must be supplied: the directory layout does not encode one.`,
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			cmd.SilenceUsage = true

			store := wallet.NewStore(args.walletPath)
			if err := store.ImportFromMSP(args.mspPath, args.mspID, args.force); err != nil {
				return errors.WithMessagef(err, "failed to import MSP directory %s", args.mspPath)
			}
			cmd.Printf("imported MSP directory [%s] into wallet [%s]\n", args.mspPath, args.walletPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.walletPath, "wallet", "w", "", "path to the wallet directory")
	flags.StringVarP(&args.mspPath, "msp", "p", "", "root of the MSP credential directory")
	flags.StringVarP(&args.mspID, "mspid", "m", "", "MSP id to tag the identity with")
	flags.BoolVarP(&args.force, "force", "f", false, "overwrite an existing identity of the same name")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("msp")
	_ = cmd.MarkFlagRequired("mspid")
	return cmd
}
