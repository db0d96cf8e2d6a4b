/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package msp

import (
	"fmt"

	"github.com/hyperledgendary/weft/weft/msp"
	"github.com/hyperledgendary/weft/weft/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type exportArgs struct {
	walletPath string
	name       string
	mspPath    string
	withConfig bool
}

func exportCmd() *cobra.Command {
	args := &exportArgs{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a wallet identity as an MSP credential directory.",
		Long:  `Materialize a wallet entry into the MSP directory layout read by peer and orderer processes.`,
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			cmd.SilenceUsage = true

			entry, err := wallet.NewStore(args.walletPath).Export(args.name)
			if err != nil {
				return errors.WithMessagef(err, "failed to export [%s]", args.name)
			}
			if err := msp.WriteIdentity(args.mspPath, entry.Identity()); err != nil {
				return errors.WithMessagef(err, "failed to write MSP directory %s", args.mspPath)
			}
			if args.withConfig {
				raw, err := msp.DefaultConfigDescriptor("")
				if err != nil {
					return err
				}
				if err := msp.WriteConfigDescriptor(args.mspPath, raw); err != nil {
					return errors.WithMessagef(err, "failed to write config descriptor under %s", args.mspPath)
				}
			}
			cmd.Printf("exported identity [%s] to MSP directory [%s]\n", args.name, args.mspPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.walletPath, "wallet", "w", "", "path to the wallet directory")
	flags.StringVarP(&args.name, "name", "n", "", "name of the identity to export")
	flags.StringVarP(&args.mspPath, "msp", "p", "", "root of the MSP credential directory to create")
	flags.BoolVar(&args.withConfig, "with-config", false, "also write a default NodeOUs config.yaml")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("msp")
	return cmd
}
