/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	raw := []byte(`[
		{"type":"gateway","id":"org1gw","client":{"organization":"Org1"},"organizations":{"Org1":{"mspid":"Org1MSP","peers":["peer0.org1:7051"]}}},
		{"type":"identity","id":"admin","wallet":"Org1","cert":"YQ==","private_key":"Yg=="},
		{"type":"something-new","id":"ignored"}
	]`)

	cfg, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, cfg.Entries, 3)

	gateways := cfg.Gateways()
	require.Len(t, gateways, 1)
	assert.Equal(t, "org1gw", gateways[0].ID)
	assert.Equal(t, "Org1", gateways[0].Client.Organization)
	assert.Equal(t, "Org1MSP", gateways[0].Organizations["Org1"].MSPID)
	assert.JSONEq(t, `{"type":"gateway","id":"org1gw","client":{"organization":"Org1"},"organizations":{"Org1":{"mspid":"Org1MSP","peers":["peer0.org1:7051"]}}}`, string(gateways[0].Raw))

	identities := cfg.Identities()
	require.Len(t, identities, 1)
	assert.Equal(t, "admin", identities[0].EffectiveID())
	assert.Equal(t, "Org1", identities[0].Wallet)

	// forward compatibility: unknown types parse but are ignored
	assert.Equal(t, KindUnknown, cfg.Entries[2].Kind)
}

func TestParseNameAlias(t *testing.T) {
	cfg, err := Parse([]byte(`[{"type":"identity","name":"user1","wallet":"Org1"}]`))
	require.NoError(t, err)
	require.Len(t, cfg.Identities(), 1)
	assert.Equal(t, "user1", cfg.Identities()[0].EffectiveID())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"type":"gateway"}`))
	require.Error(t, err)

	_, err = Parse([]byte(`["not an object"]`))
	require.Error(t, err)
}
