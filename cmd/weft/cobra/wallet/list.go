/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"fmt"

	"github.com/hyperledgendary/weft/weft/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type listArgs struct {
	walletPath string
}

func listCmd() *cobra.Command {
	args := &listArgs{}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List identities in a wallet.",
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			cmd.SilenceUsage = true

			names, err := wallet.NewStore(args.walletPath).List()
			if err != nil {
				return errors.WithMessagef(err, "failed to list wallet %s", args.walletPath)
			}
			for _, name := range names {
				cmd.Println(name)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.walletPath, "wallet", "w", "", "path to the wallet directory")
	_ = cmd.MarkFlagRequired("wallet")
	return cmd
}
