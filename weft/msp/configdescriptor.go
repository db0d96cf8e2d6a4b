/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package msp

import (
	"path"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type ouIdentifier struct {
	Certificate                  string `yaml:"Certificate"`
	OrganizationalUnitIdentifier string `yaml:"OrganizationalUnitIdentifier"`
}

type nodeOUs struct {
	Enable              bool         `yaml:"Enable"`
	ClientOUIdentifier  ouIdentifier `yaml:"ClientOUIdentifier"`
	PeerOUIdentifier    ouIdentifier `yaml:"PeerOUIdentifier"`
	AdminOUIdentifier   ouIdentifier `yaml:"AdminOUIdentifier"`
	OrdererOUIdentifier ouIdentifier `yaml:"OrdererOUIdentifier"`
}

type configDescriptor struct {
	NodeOUs nodeOUs `yaml:"NodeOUs"`
}

// DefaultConfigDescriptor renders a NodeOUs config.yaml referencing the
// given CA certificate file, for use when the descriptor cannot be fetched
// from a running network component.
func DefaultConfigDescriptor(caFile string) ([]byte, error) {
	if len(caFile) == 0 {
		caFile = path.Join(caCertsDirName, CACertFileName)
	}
	raw, err := yaml.Marshal(&configDescriptor{
		NodeOUs: nodeOUs{
			Enable:              true,
			ClientOUIdentifier:  ouIdentifier{Certificate: caFile, OrganizationalUnitIdentifier: "client"},
			PeerOUIdentifier:    ouIdentifier{Certificate: caFile, OrganizationalUnitIdentifier: "peer"},
			AdminOUIdentifier:   ouIdentifier{Certificate: caFile, OrganizationalUnitIdentifier: "admin"},
			OrdererOUIdentifier: ouIdentifier{Certificate: caFile, OrganizationalUnitIdentifier: "orderer"},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal config descriptor")
	}
	return raw, nil
}
