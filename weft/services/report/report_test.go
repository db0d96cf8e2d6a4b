/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	r.Report(Msg("starting"))
	r.Report(Err("fetch failed", errors.New("no such container")))
	r.Report(Value("environment", map[string][]string{"Org1": {"CORE_PEER_LOCALMSPID=Org1MSP"}}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)

	var first Message
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "starting", first.Msg)
	assert.Empty(t, first.Error)

	var second Message
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "fetch failed", second.Msg)
	assert.Equal(t, "no such container", second.Error)

	assert.Contains(t, string(lines[2]), "CORE_PEER_LOCALMSPID=Org1MSP")
}

func TestErrWithNilError(t *testing.T) {
	m := Err("done", nil)
	assert.Empty(t, m.Error)
}

func TestDiscard(t *testing.T) {
	// must not panic
	Discard.Report(Msg("ignored"))
}
