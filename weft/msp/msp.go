/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package msp materializes and reads the standard membership service
// provider directory layout expected by peer and orderer processes:
//
//	<root>/msp/cacerts/ca.pem
//	<root>/msp/keystore/cert_sk
//	<root>/msp/signcerts/<id>.pem
//	<root>/msp/config.yaml
//
// One MSP directory holds exactly one identity's signing material at a
// time, hence the fixed keystore filename.
package msp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperledgendary/weft/weft/identity"
	"github.com/hyperledgendary/weft/weft/sanitize"
	"github.com/hyperledgendary/weft/weft/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("weft.msp")

const (
	mspDirName       = "msp"
	caCertsDirName   = "cacerts"
	keystoreDirName  = "keystore"
	signCertsDirName = "signcerts"

	// KeystoreFileName is fixed: the keystore of a single-identity MSP
	// directory holds one key.
	KeystoreFileName = "cert_sk"
	CACertFileName   = "ca.pem"
	ConfigFileName   = "config.yaml"
)

// Dir returns the msp directory under the given root.
func Dir(root string) string {
	return filepath.Join(root, mspDirName)
}

// EnsureLayout creates the msp directory tree under root. It is idempotent
// and never truncates existing content.
func EnsureLayout(root string) error {
	for _, dir := range []string{
		Dir(root),
		filepath.Join(Dir(root), caCertsDirName),
		filepath.Join(Dir(root), keystoreDirName),
		filepath.Join(Dir(root), signCertsDirName),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "could not create directory %s", dir)
		}
	}
	return nil
}

// WriteIdentity materializes the identity's signing material under root,
// creating the layout first.
func WriteIdentity(root string, id *identity.Identity) error {
	if len(id.Certificate) == 0 {
		return errors.Wrapf(identity.ErrMalformedCredential, "identity [%s] has no certificate", id.ID)
	}
	name, err := sanitize.Segment(id.ID)
	if err != nil {
		return err
	}
	if err := EnsureLayout(root); err != nil {
		return err
	}

	certFile := filepath.Join(Dir(root), signCertsDirName, name+".pem")
	if err := os.WriteFile(certFile, id.Certificate, 0o644); err != nil {
		return errors.Wrapf(err, "could not write signing certificate %s", certFile)
	}
	logger.Debugf("wrote signing certificate [%s]", certFile)

	if len(id.PrivateKey) != 0 {
		keyFile := filepath.Join(Dir(root), keystoreDirName, KeystoreFileName)
		if err := os.WriteFile(keyFile, id.PrivateKey, 0o600); err != nil {
			return errors.Wrapf(err, "could not write private key %s", keyFile)
		}
		logger.Debugf("wrote private key [%s]", keyFile)
	}
	return nil
}

// ReadIdentity loads the signing material stored under root. The directory
// layout does not encode an MSP id, so the caller supplies it. The identity
// id is recovered from the signing certificate's filename.
func ReadIdentity(root, mspID string) (*identity.Identity, error) {
	signcertsDir := filepath.Join(Dir(root), signCertsDirName)
	entries, err := os.ReadDir(signcertsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read directory %s", signcertsDir)
	}

	var certFile string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		certFile = filepath.Join(signcertsDir, e.Name())
		break
	}
	if len(certFile) == 0 {
		return nil, errors.Wrapf(identity.ErrMalformedCredential, "no signing certificate in %s", signcertsDir)
	}

	cert, err := os.ReadFile(certFile)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read signing certificate %s", certFile)
	}

	id := &identity.Identity{
		ID:          strings.TrimSuffix(filepath.Base(certFile), filepath.Ext(certFile)),
		MSPID:       mspID,
		Certificate: cert,
	}

	keyFile := filepath.Join(Dir(root), keystoreDirName, KeystoreFileName)
	if key, err := os.ReadFile(keyFile); err == nil {
		id.PrivateKey = key
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "could not read private key %s", keyFile)
	}
	return id, nil
}

// WriteCACertificate stores the organization CA certificate. The bytes are
// typically fetched from a running network component by the caller.
func WriteCACertificate(root string, pem []byte) error {
	if err := EnsureLayout(root); err != nil {
		return err
	}
	file := filepath.Join(Dir(root), caCertsDirName, CACertFileName)
	if err := os.WriteFile(file, pem, 0o644); err != nil {
		return errors.Wrapf(err, "could not write CA certificate %s", file)
	}
	return nil
}

// WriteConfigDescriptor stores the msp config.yaml bytes verbatim.
func WriteConfigDescriptor(root string, raw []byte) error {
	if err := EnsureLayout(root); err != nil {
		return err
	}
	file := filepath.Join(Dir(root), ConfigFileName)
	if err := os.WriteFile(file, raw, 0o644); err != nil {
		return errors.Wrapf(err, "could not write config descriptor %s", file)
	}
	return nil
}

// CACertPath returns where the organization CA certificate lives under root.
func CACertPath(root string) string {
	return filepath.Join(Dir(root), caCertsDirName, CACertFileName)
}

// ConfigPath returns where the config descriptor lives under root.
func ConfigPath(root string) string {
	return filepath.Join(Dir(root), ConfigFileName)
}
