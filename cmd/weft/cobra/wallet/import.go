/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"fmt"
	"os"

	"github.com/hyperledgendary/weft/weft/identity"
	"github.com/hyperledgendary/weft/weft/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type importArgs struct {
	walletPath string
	inputFile  string
	mspID      string
	force      bool
	compat     bool
}

func importCmd() *cobra.Command {
	args := &importArgs{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an identity JSON file into a wallet.",
		Long:  `Parse an identity-provisioning JSON blob and store it as a wallet entry.`,
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			cmd.SilenceUsage = true

			raw, err := os.ReadFile(args.inputFile)
			if err != nil {
				return errors.Wrapf(err, "failed to read identity file %s", args.inputFile)
			}
			id, err := identity.ParseJSON(raw)
			if err != nil {
				return err
			}
			if len(args.mspID) != 0 {
				id.MSPID = args.mspID
			}

			format := wallet.FormatCurrent
			if args.compat {
				format = wallet.FormatCompat
			}
			store := wallet.NewStore(args.walletPath)
			if err := store.Import(wallet.FromIdentity(id, format), args.force); err != nil {
				return errors.WithMessagef(err, "failed to import %s", args.inputFile)
			}
			cmd.Printf("imported identity [%s] into wallet [%s]\n", id.ID, args.walletPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.walletPath, "wallet", "w", "", "path to the wallet directory")
	flags.StringVarP(&args.inputFile, "input", "i", "", "identity JSON file to import")
	flags.StringVarP(&args.mspID, "mspid", "m", "", "MSP id to tag the identity with, overriding the file")
	flags.BoolVarP(&args.force, "force", "f", false, "overwrite an existing identity of the same name")
	flags.BoolVar(&args.compat, "compat", false, "write the earlier SDK wallet schema")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
