/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package topology

import (
	"fmt"
	"strings"
)

// The CA certificate and config descriptor of an identity's MSP tree only
// exist inside the running network container, so they are fetched with
// queued shell commands rather than derived from the topology document.

// CACertFetch copies an organization's CA certificate out of the runtime
// container into an MSP tree.
type CACertFetch struct {
	Container    string
	Organization string
	Identity     string
	OutputFile   string
}

func (c CACertFetch) SessionName() string {
	return fmt.Sprintf("cacert-%s-%s", strings.ToLower(c.Organization), c.Identity)
}

func (c CACertFetch) Shell() string {
	return fmt.Sprintf(
		"docker exec %s cat /opt/microfab/data/peer-%s/msp/cacerts/ca.pem > %s",
		c.Container, strings.ToLower(c.Organization), c.OutputFile,
	)
}

// ConfigFetch copies an organization's msp config.yaml out of the runtime
// container into an MSP tree.
type ConfigFetch struct {
	Container    string
	Organization string
	Identity     string
	OutputFile   string
}

func (c ConfigFetch) SessionName() string {
	return fmt.Sprintf("config-%s-%s", strings.ToLower(c.Organization), c.Identity)
}

func (c ConfigFetch) Shell() string {
	return fmt.Sprintf(
		"docker exec %s cat /opt/microfab/data/peer-%s/msp/config.yaml > %s",
		c.Container, strings.ToLower(c.Organization), c.OutputFile,
	)
}
