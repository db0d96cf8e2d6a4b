/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCACertFetch(t *testing.T) {
	c := CACertFetch{
		Container:    "microfab",
		Organization: "Org1",
		Identity:     "admin",
		OutputFile:   "/tmp/msp/cacerts/ca.pem",
	}
	assert.Equal(t, "cacert-org1-admin", c.SessionName())
	assert.Equal(t,
		"docker exec microfab cat /opt/microfab/data/peer-org1/msp/cacerts/ca.pem > /tmp/msp/cacerts/ca.pem",
		c.Shell(),
	)
}

func TestConfigFetch(t *testing.T) {
	c := ConfigFetch{
		Container:    "mynet",
		Organization: "Org2",
		Identity:     "user1",
		OutputFile:   "/tmp/msp/config.yaml",
	}
	assert.Equal(t, "config-org2-user1", c.SessionName())
	assert.Equal(t,
		"docker exec mynet cat /opt/microfab/data/peer-org2/msp/config.yaml > /tmp/msp/config.yaml",
		c.Shell(),
	)
}
