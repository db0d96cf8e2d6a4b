/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package topology consumes a network topology-config document (gateways
// plus identities) and materializes it into gateway connection profiles,
// wallet entries, MSP directory trees and derived shell environment sets.
package topology

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Kind discriminates the entry variants of a topology document.
type Kind string

const (
	KindGateway  Kind = "gateway"
	KindIdentity Kind = "identity"
	// KindUnknown covers entry types this engine does not understand;
	// they are carried through parsing and ignored by processing.
	KindUnknown Kind = ""
)

// Organization describes one organization inside a gateway entry.
type Organization struct {
	MSPID string   `json:"mspid"`
	Peers []string `json:"peers"`
}

// Client names the organization a gateway profile connects on behalf of.
type Client struct {
	Organization string `json:"organization"`
}

// Gateway is a connection-profile entry. Raw retains the original document
// bytes so the profile can be written out verbatim.
type Gateway struct {
	ID            string                  `json:"id"`
	Client        Client                  `json:"client"`
	Organizations map[string]Organization `json:"organizations"`

	Raw json.RawMessage `json:"-"`
}

// Identity is a credential entry. Cert and PrivateKey carry base64-wrapped
// PEM; CA is optional. Name is an alias of ID.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Wallet     string `json:"wallet"`
	Cert       string `json:"cert"`
	PrivateKey string `json:"private_key"`
	CA         string `json:"ca"`
}

// EffectiveID resolves the id/name alias.
func (i *Identity) EffectiveID() string {
	if len(i.ID) != 0 {
		return i.ID
	}
	return i.Name
}

// Entry is one tagged variant of the document.
type Entry struct {
	Kind     Kind
	Gateway  *Gateway
	Identity *Identity
}

// Config is a parsed topology document.
type Config struct {
	Entries []Entry
}

// Gateways returns the gateway entries in document order.
func (c *Config) Gateways() []*Gateway {
	var out []*Gateway
	for _, e := range c.Entries {
		if e.Kind == KindGateway {
			out = append(out, e.Gateway)
		}
	}
	return out
}

// Identities returns the identity entries in document order.
func (c *Config) Identities() []*Identity {
	var out []*Identity
	for _, e := range c.Entries {
		if e.Kind == KindIdentity {
			out = append(out, e.Identity)
		}
	}
	return out
}

// Parse decodes a topology document: a JSON array of entries discriminated
// by their "type" field. Unrecognized types parse to KindUnknown for
// forward compatibility.
func Parse(raw []byte) (*Config, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, errors.Wrap(err, "topology config is not a JSON array")
	}

	cfg := &Config{}
	for i, element := range elements {
		var discriminator struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(element, &discriminator); err != nil {
			return nil, errors.Wrapf(err, "topology entry %d is not an object", i)
		}

		switch Kind(discriminator.Type) {
		case KindGateway:
			var g Gateway
			if err := json.Unmarshal(element, &g); err != nil {
				return nil, errors.Wrapf(err, "invalid gateway entry %d", i)
			}
			g.Raw = element
			cfg.Entries = append(cfg.Entries, Entry{Kind: KindGateway, Gateway: &g})
		case KindIdentity:
			var id Identity
			if err := json.Unmarshal(element, &id); err != nil {
				return nil, errors.Wrapf(err, "invalid identity entry %d", i)
			}
			cfg.Entries = append(cfg.Entries, Entry{Kind: KindIdentity, Identity: &id})
		default:
			cfg.Entries = append(cfg.Entries, Entry{Kind: KindUnknown})
		}
	}
	return cfg, nil
}
