/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package topology

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperledgendary/weft/weft/identity"
	"github.com/hyperledgendary/weft/weft/msp"
	"github.com/hyperledgendary/weft/weft/sanitize"
	"github.com/hyperledgendary/weft/weft/services/logging"
	"github.com/hyperledgendary/weft/weft/services/report"
	"github.com/hyperledgendary/weft/weft/services/runner"
	"github.com/hyperledgendary/weft/weft/wallet"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("weft.topology")

// ErrInvalidGatewayEntry signals a gateway whose client organization does
// not resolve, or whose peer endpoint list is empty.
var ErrInvalidGatewayEntry = errors.New("invalid gateway entry")

// reservedOrdererLabel marks identities that need no fetched artifacts.
const reservedOrdererLabel = "orderer"

// Processor materializes one topology document. Each Process call owns its
// own environment accumulator and command queue; nothing is shared across
// invocations. Entries are processed strictly sequentially so environment
// lines append in document order.
type Processor struct {
	profileDir string
	walletDir  string
	mspDir     string
	container  string
	runner     runner.Runner
	reporter   report.Reporter
}

// Option tweaks a Processor.
type Option func(*Processor)

// WithContainer names the runtime container fetch commands target.
func WithContainer(name string) Option {
	return func(p *Processor) {
		p.container = name
	}
}

func NewProcessor(profileDir, walletDir, mspDir string, r runner.Runner, rep report.Reporter, opts ...Option) *Processor {
	p := &Processor{
		profileDir: profileDir,
		walletDir:  walletDir,
		mspDir:     mspDir,
		container:  "microfab",
		runner:     r,
		reporter:   rep,
	}
	if p.reporter == nil {
		p.reporter = report.Discard
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one Process call.
type Result struct {
	// Environments maps each organization label to its derived shell
	// variable assignments, in derivation order.
	Environments map[string][]string
	// CommandOutput is the combined output of the batched fetch commands,
	// including partial output when the batch failed.
	CommandOutput *runner.Output
}

// Process drives the whole conversion: gateway entries first, then identity
// entries, each group in document order, then the queued fetch commands as
// one batch. The first per-entry error aborts the run.
func (p *Processor) Process(ctx context.Context, cfg *Config) (*Result, error) {
	result := &Result{Environments: map[string][]string{}}

	// mspIDs lets identity entries inherit the MSP id their organization
	// advertises through its gateway.
	mspIDs := map[string]string{}

	for _, gw := range cfg.Gateways() {
		if err := p.processGateway(gw, result.Environments, mspIDs); err != nil {
			return nil, err
		}
	}

	// labels whose environment already carries an MSPCONFIGPATH line;
	// only the first identity per organization contributes one
	pathed := map[string]bool{}

	var queue []runner.Command
	for _, id := range cfg.Identities() {
		cmds, err := p.processIdentity(id, result.Environments, mspIDs, pathed)
		if err != nil {
			return nil, err
		}
		queue = append(queue, cmds...)
	}

	p.reporter.Report(report.Value("environment variables", result.Environments))

	if len(queue) != 0 && p.runner != nil {
		out, err := p.runner.Run(ctx, queue)
		result.CommandOutput = out
		if err != nil {
			p.reporter.Report(report.Err("artifact fetch failed", err))
			return result, errors.WithMessage(err, "artifact fetch batch failed")
		}
		p.reporter.Report(report.Value("artifact fetch complete", out.Combined))
	}
	return result, nil
}

func (p *Processor) processGateway(gw *Gateway, env map[string][]string, mspIDs map[string]string) error {
	id, err := sanitize.Segment(gw.ID)
	if err != nil {
		return errors.WithMessagef(err, "gateway [%s]", gw.ID)
	}

	if err := os.MkdirAll(p.profileDir, 0o755); err != nil {
		return errors.Wrapf(err, "could not create profile directory %s", p.profileDir)
	}
	file := filepath.Join(p.profileDir, id+".json")
	// the profile is the gateway entry verbatim
	if err := os.WriteFile(file, gw.Raw, 0o644); err != nil {
		return errors.Wrapf(err, "could not write gateway profile %s", file)
	}
	logger.Debugf("wrote gateway profile [%s]", file)

	orgName := gw.Client.Organization
	org, ok := gw.Organizations[orgName]
	if !ok {
		return errors.Wrapf(ErrInvalidGatewayEntry, "gateway [%s]: client organization [%s] not present in organizations", gw.ID, orgName)
	}
	if len(org.Peers) == 0 {
		return errors.Wrapf(ErrInvalidGatewayEntry, "gateway [%s]: organization [%s] has no peers", gw.ID, orgName)
	}

	env[orgName] = append(env[orgName],
		fmt.Sprintf("CORE_PEER_LOCALMSPID=%s", org.MSPID),
		fmt.Sprintf("CORE_PEER_ADDRESS=%s", org.Peers[0]),
	)
	mspIDs[orgName] = org.MSPID

	p.reporter.Report(report.Msg(fmt.Sprintf("written gateway profile %s", file)))
	return nil
}

func (p *Processor) processIdentity(entry *Identity, env map[string][]string, mspIDs map[string]string, pathed map[string]bool) ([]runner.Command, error) {
	label, err := sanitize.Segment(entry.Wallet)
	if err != nil {
		return nil, errors.WithMessagef(err, "identity [%s]", entry.EffectiveID())
	}
	name, err := sanitize.Segment(entry.EffectiveID())
	if err != nil {
		return nil, errors.WithMessagef(err, "identity in wallet [%s]", entry.Wallet)
	}

	cert, err := identity.DecodeBase64PEM(entry.Cert)
	if err != nil {
		return nil, errors.WithMessagef(err, "certificate of [%s]", name)
	}
	key, err := identity.DecodeBase64PEM(entry.PrivateKey)
	if err != nil {
		return nil, errors.WithMessagef(err, "private key of [%s]", name)
	}

	id := &identity.Identity{
		ID:          name,
		MSPID:       mspIDs[entry.Wallet],
		Certificate: cert,
		PrivateKey:  key,
	}

	// later entries for the same (wallet, id) pair overwrite earlier
	// artifacts, keeping re-runs idempotent
	store := wallet.NewStore(filepath.Join(p.walletDir, label))
	if err := store.Import(wallet.FromIdentity(id, wallet.FormatCurrent), true); err != nil {
		return nil, errors.WithMessagef(err, "identity [%s]", name)
	}

	mspRoot := filepath.Join(p.mspDir, label, name)
	if err := msp.WriteIdentity(mspRoot, id); err != nil {
		return nil, errors.WithMessagef(err, "identity [%s]", name)
	}
	p.reporter.Report(report.Msg(fmt.Sprintf("written identity %s to wallet %s and msp %s", name, store.Path(), mspRoot)))

	// identities whose organization never had a gateway get no
	// MSPCONFIGPATH line; documented gap, not an error. The line comes
	// from whichever identity entry processed first for the label.
	if _, ok := env[entry.Wallet]; ok && !pathed[entry.Wallet] {
		env[entry.Wallet] = append(env[entry.Wallet],
			fmt.Sprintf("CORE_PEER_MSPCONFIGPATH=%s", msp.Dir(mspRoot)),
		)
		pathed[entry.Wallet] = true
	}

	// CA material carried on the entry itself is local; write it whether
	// or not fetches are queued for this identity
	if len(entry.CA) != 0 {
		ca, err := identity.DecodeBase64PEM(entry.CA)
		if err != nil {
			return nil, errors.WithMessagef(err, "CA certificate of [%s]", name)
		}
		if err := msp.WriteCACertificate(mspRoot, ca); err != nil {
			return nil, errors.WithMessagef(err, "identity [%s]", name)
		}
	}

	// orderer identities need no artifacts fetched
	if strings.EqualFold(label, reservedOrdererLabel) {
		return nil, nil
	}

	var cmds []runner.Command
	if len(entry.CA) == 0 {
		cmds = append(cmds, CACertFetch{
			Container:    p.container,
			Organization: label,
			Identity:     name,
			OutputFile:   msp.CACertPath(mspRoot),
		})
	}
	cmds = append(cmds, ConfigFetch{
		Container:    p.container,
		Organization: label,
		Identity:     name,
		OutputFile:   msp.ConfigPath(mspRoot),
	})
	return cmds, nil
}
