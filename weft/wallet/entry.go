/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"encoding/json"

	"github.com/hyperledgendary/weft/weft/identity"
	"github.com/pkg/errors"
)

// Format selects the on-disk wallet entry schema.
type Format string

const (
	// FormatCurrent is the schema written by the current gateway SDKs.
	FormatCurrent Format = "X.509"
	// FormatCompat is the single-file schema used by the earlier SDK major
	// version. Readable and writable for interoperability.
	FormatCompat Format = "X-509"
)

// Entry is one named identity persisted in a wallet.
type Entry struct {
	Name        string
	MSPID       string
	Certificate []byte
	PrivateKey  []byte
	Format      Format
}

// currentEntry is the versioned schema of the current SDK generation.
type currentEntry struct {
	Version     int    `json:"version"`
	MSPID       string `json:"mspId"`
	Type        string `json:"type"`
	Credentials struct {
		Certificate string `json:"certificate"`
		PrivateKey  string `json:"privateKey,omitempty"`
	} `json:"credentials"`
}

// compatEntry is the flat schema of the earlier SDK major version,
// distinguished by its "X-509" type marker and lowercase mspid field.
type compatEntry struct {
	Name        string `json:"name"`
	MSPID       string `json:"mspid"`
	Type        string `json:"type"`
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"privateKey,omitempty"`
}

// FromIdentity wraps the canonical identity into a wallet entry.
func FromIdentity(id *identity.Identity, format Format) *Entry {
	return &Entry{
		Name:        id.ID,
		MSPID:       id.MSPID,
		Certificate: id.Certificate,
		PrivateKey:  id.PrivateKey,
		Format:      format,
	}
}

// Identity unwraps the entry into the canonical form. The round trip through
// FromIdentity/Identity is lossless for certificate, key and MSP id.
func (e *Entry) Identity() *identity.Identity {
	return &identity.Identity{
		ID:          e.Name,
		MSPID:       e.MSPID,
		Certificate: e.Certificate,
		PrivateKey:  e.PrivateKey,
	}
}

// Encode renders the entry in its selected schema.
func (e *Entry) Encode() ([]byte, error) {
	if len(e.Certificate) == 0 {
		return nil, errors.Wrapf(identity.ErrMalformedCredential, "entry [%s] has no certificate", e.Name)
	}
	switch e.Format {
	case FormatCompat:
		c := compatEntry{
			Name:        e.Name,
			MSPID:       e.MSPID,
			Type:        string(FormatCompat),
			Certificate: string(e.Certificate),
			PrivateKey:  string(e.PrivateKey),
		}
		return json.MarshalIndent(c, "", "    ")
	default:
		c := currentEntry{
			Version: 1,
			MSPID:   e.MSPID,
			Type:    string(FormatCurrent),
		}
		c.Credentials.Certificate = string(e.Certificate)
		c.Credentials.PrivateKey = string(e.PrivateKey)
		return json.MarshalIndent(c, "", "    ")
	}
}

// formatMarker is the minimal probe needed to pick a decoder; shape
// sniffing stops here.
type formatMarker struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	MSPID   string `json:"mspid"`
}

// DecodeEntry parses a wallet entry in either schema, detecting the format
// from its marker fields. The stored name is authoritative only in the
// compat schema; name carries the caller-known identity name otherwise.
func DecodeEntry(name string, raw []byte) (*Entry, error) {
	var m formatMarker
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrapf(identity.ErrMalformedCredential, "wallet entry [%s]: %s", name, err)
	}

	if m.Type == string(FormatCompat) || (m.Version == 0 && len(m.MSPID) != 0) {
		var c compatEntry
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.Wrapf(identity.ErrMalformedCredential, "compat wallet entry [%s]: %s", name, err)
		}
		if len(c.Certificate) == 0 {
			return nil, errors.Wrapf(identity.ErrMalformedCredential, "compat wallet entry [%s] has no certificate", name)
		}
		if len(c.Name) != 0 {
			name = c.Name
		}
		e := &Entry{
			Name:        name,
			MSPID:       c.MSPID,
			Certificate: []byte(c.Certificate),
			Format:      FormatCompat,
		}
		if len(c.PrivateKey) != 0 {
			e.PrivateKey = []byte(c.PrivateKey)
		}
		return e, nil
	}

	var c currentEntry
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrapf(identity.ErrMalformedCredential, "wallet entry [%s]: %s", name, err)
	}
	if len(c.Credentials.Certificate) == 0 {
		return nil, errors.Wrapf(identity.ErrMalformedCredential, "wallet entry [%s] has no certificate", name)
	}
	e := &Entry{
		Name:        name,
		MSPID:       c.MSPID,
		Certificate: []byte(c.Credentials.Certificate),
		Format:      FormatCurrent,
	}
	if len(c.Credentials.PrivateKey) != 0 {
		e.PrivateKey = []byte(c.Credentials.PrivateKey)
	}
	return e, nil
}
