/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package identity holds the canonical in-memory form of one cryptographic
// principal and the codecs that move it between the wire encodings used by
// provisioning services. The package never inspects cryptographic validity;
// certificate and key bytes are moved around opaque.
package identity

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrMalformedCredential signals unparseable or incomplete certificate or
// key material.
var ErrMalformedCredential = errors.New("malformed credential")

// Identity is the canonical form of one principal. Certificate must be
// present for the identity to be usable; PrivateKey is required only when
// the identity will sign.
type Identity struct {
	ID          string
	MSPID       string
	Certificate []byte
	PrivateKey  []byte
}

const pemBoundary = "-----BEGIN"

// DecodeBase64PEM decodes a base64-wrapped PEM blob. Input already carrying
// a PEM boundary is passed through untouched; provisioning services emit
// both encodings.
func DecodeBase64PEM(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, errors.Wrap(ErrMalformedCredential, "empty input")
	}
	if strings.HasPrefix(strings.TrimSpace(s), pemBoundary) {
		return []byte(s), nil
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedCredential, "invalid base64: %s", err)
	}
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrMalformedCredential, "decoded content is empty")
	}
	if !utf8.Valid(raw) {
		return nil, errors.Wrap(ErrMalformedCredential, "decoded content is not text")
	}
	return raw, nil
}

// jsonIdentity is the flat JSON blob emitted by the identity-provisioning
// service. "name" is accepted as an alias of "id".
type jsonIdentity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MSPID      string `json:"msp_id"`
	Cert       string `json:"cert"`
	PrivateKey string `json:"private_key"`
	CA         string `json:"ca"`
}

// ParseJSON decodes one provisioning-service identity blob into the
// canonical form. The cert field is required, the key is optional.
func ParseJSON(raw []byte) (*Identity, error) {
	var j jsonIdentity
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, errors.Wrapf(ErrMalformedCredential, "invalid identity json: %s", err)
	}

	id := j.ID
	if len(id) == 0 {
		id = j.Name
	}
	if len(id) == 0 {
		return nil, errors.Wrap(ErrMalformedCredential, "identity has neither id nor name")
	}
	if len(j.Cert) == 0 {
		return nil, errors.Wrapf(ErrMalformedCredential, "identity [%s] has no certificate", id)
	}

	cert, err := DecodeBase64PEM(j.Cert)
	if err != nil {
		return nil, errors.WithMessagef(err, "certificate of [%s]", id)
	}
	out := &Identity{ID: id, MSPID: j.MSPID, Certificate: cert}
	if len(j.PrivateKey) != 0 {
		key, err := DecodeBase64PEM(j.PrivateKey)
		if err != nil {
			return nil, errors.WithMessagef(err, "private key of [%s]", id)
		}
		out.PrivateKey = key
	}
	return out, nil
}
