/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperledgendary/weft/weft/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type exportArgs struct {
	walletPath string
	name       string
	outputFile string
}

// exportedIdentity is the identity JSON blob written on export; the same
// shape the import command accepts.
type exportedIdentity struct {
	ID         string `json:"id"`
	MSPID      string `json:"msp_id,omitempty"`
	Cert       string `json:"cert"`
	PrivateKey string `json:"private_key,omitempty"`
}

func exportCmd() *cobra.Command {
	args := &exportArgs{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an identity from a wallet as JSON.",
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			cmd.SilenceUsage = true

			entry, err := wallet.NewStore(args.walletPath).Export(args.name)
			if err != nil {
				return errors.WithMessagef(err, "failed to export [%s]", args.name)
			}

			id := entry.Identity()
			raw, err := json.MarshalIndent(&exportedIdentity{
				ID:         id.ID,
				MSPID:      id.MSPID,
				Cert:       string(id.Certificate),
				PrivateKey: string(id.PrivateKey),
			}, "", "    ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal identity")
			}

			if len(args.outputFile) == 0 || args.outputFile == "-" {
				cmd.Println(string(raw))
				return nil
			}
			if err := os.WriteFile(args.outputFile, raw, 0o600); err != nil {
				return errors.Wrapf(err, "failed to write %s", args.outputFile)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.walletPath, "wallet", "w", "", "path to the wallet directory")
	flags.StringVarP(&args.name, "name", "n", "", "name of the identity to export")
	flags.StringVarP(&args.outputFile, "output", "o", "-", "output file, or - for stdout")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
