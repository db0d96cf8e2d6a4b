/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package microfab

import (
	"fmt"
	"io"
	"os"

	"github.com/hyperledgendary/weft/weft/services/config"
	"github.com/hyperledgendary/weft/weft/services/report"
	"github.com/hyperledgendary/weft/weft/services/runner"
	"github.com/hyperledgendary/weft/weft/topology"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Cmd returns the Cobra Command for processing topology configs.
func Cmd() *cobra.Command {
	microfabCobraCommand.AddCommand(processCmd())

	return microfabCobraCommand
}

var microfabCobraCommand = &cobra.Command{
	Use:   "microfab",
	Short: "Work with network topology configs.",
	Long:  `Fan a network topology config out into connection profiles, wallets, MSP directories and shell environments.`,
}

type processArgs struct {
	inputFile  string
	configFile string
	profileDir string
	walletDir  string
	mspDir     string
	container  string
	noExec     bool
}

func processCmd() *cobra.Command {
	args := &processArgs{}

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process a topology config document.",
		Long:  `Read a topology config (gateways and identities) and materialize connection profiles, wallets and MSP directories, then fetch the remaining artifacts from the runtime container.`,
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			cmd.SilenceUsage = true
			return process(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.inputFile, "input", "i", "-", "topology config file, or - for stdin")
	flags.StringVarP(&args.configFile, "config", "c", "", "optional weft config file")
	flags.StringVar(&args.profileDir, "profile-dir", "", "directory for gateway connection profiles")
	flags.StringVar(&args.walletDir, "wallet-dir", "", "root directory for per-organization wallets")
	flags.StringVar(&args.mspDir, "msp-dir", "", "root directory for MSP credential trees")
	flags.StringVar(&args.container, "container", "", "runtime container the fetch commands target")
	flags.BoolVar(&args.noExec, "no-exec", false, "print the queued fetch commands instead of executing them")
	return cmd
}

func process(cmd *cobra.Command, args *processArgs) error {
	cfg, err := config.Load(args.configFile)
	if err != nil {
		return err
	}
	if len(args.profileDir) == 0 {
		args.profileDir = cfg.Profiles
	}
	if len(args.walletDir) == 0 {
		args.walletDir = cfg.Wallets
	}
	if len(args.mspDir) == 0 {
		args.mspDir = cfg.MSP
	}
	if len(args.container) == 0 {
		args.container = cfg.Fetch.Container
	}

	var raw []byte
	if args.inputFile == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args.inputFile)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read topology config %s", args.inputFile)
	}

	doc, err := topology.Parse(raw)
	if err != nil {
		return err
	}

	var r runner.Runner = runner.NewShellRunner(cfg.Fetch.Shell)
	if args.noExec {
		r = runner.DryRunner{W: cmd.OutOrStdout()}
	}

	processor := topology.NewProcessor(
		args.profileDir, args.walletDir, args.mspDir,
		r, report.NewJSONReporter(cmd.OutOrStdout()),
		topology.WithContainer(args.container),
	)
	_, err = processor.Process(cmd.Context(), doc)
	return err
}
