/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package msp

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperledgendary/weft/weft/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

// testSigningMaterial generates a self-signed certificate and key in PEM
// form; the engine never validates them but real bytes keep the tests
// honest.
func testSigningMaterial(t *testing.T) ([]byte, []byte) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "admin"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	require.NoError(t, err)
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	keyDER, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})

	return certPEM, keyPEM
}

func TestEnsureLayoutIdempotent(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, EnsureLayout(root))
	require.NoError(t, EnsureLayout(root))

	for _, dir := range []string{
		filepath.Join(root, "msp"),
		filepath.Join(root, "msp", "cacerts"),
		filepath.Join(root, "msp", "keystore"),
		filepath.Join(root, "msp", "signcerts"),
	} {
		assert.DirExists(t, dir)
	}
}

func TestEnsureLayoutKeepsContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureLayout(root))

	file := filepath.Join(Dir(root), "signcerts", "existing.pem")
	require.NoError(t, os.WriteFile(file, []byte("keep me"), 0o644))

	require.NoError(t, EnsureLayout(root))
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep me"), raw)
}

func TestWriteReadIdentityRoundTrip(t *testing.T) {
	certPEM, keyPEM := testSigningMaterial(t)
	root := t.TempDir()

	id := &identity.Identity{ID: "admin", Certificate: certPEM, PrivateKey: keyPEM}
	require.NoError(t, WriteIdentity(root, id))

	assert.FileExists(t, filepath.Join(Dir(root), "signcerts", "admin.pem"))
	assert.FileExists(t, filepath.Join(Dir(root), "keystore", KeystoreFileName))

	loaded, err := ReadIdentity(root, "Org1MSP")
	require.NoError(t, err)
	assert.Equal(t, "admin", loaded.ID)
	assert.Equal(t, "Org1MSP", loaded.MSPID)
	assert.Equal(t, certPEM, loaded.Certificate)
	assert.Equal(t, keyPEM, loaded.PrivateKey)
}

func TestWriteIdentityRequiresCertificate(t *testing.T) {
	err := WriteIdentity(t.TempDir(), &identity.Identity{ID: "admin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrMalformedCredential)
}

func TestReadIdentityWithoutKey(t *testing.T) {
	certPEM, _ := testSigningMaterial(t)
	root := t.TempDir()
	require.NoError(t, WriteIdentity(root, &identity.Identity{ID: "reader", Certificate: certPEM}))

	loaded, err := ReadIdentity(root, "Org1MSP")
	require.NoError(t, err)
	assert.Equal(t, certPEM, loaded.Certificate)
	assert.Nil(t, loaded.PrivateKey)
}

func TestReadIdentityEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureLayout(root))

	_, err := ReadIdentity(root, "Org1MSP")
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrMalformedCredential)
}

func TestWriteCACertificateAndConfig(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteCACertificate(root, []byte("ca bytes")))
	raw, err := os.ReadFile(CACertPath(root))
	require.NoError(t, err)
	assert.Equal(t, []byte("ca bytes"), raw)

	require.NoError(t, WriteConfigDescriptor(root, []byte("NodeOUs:\n")))
	raw, err = os.ReadFile(ConfigPath(root))
	require.NoError(t, err)
	assert.Equal(t, []byte("NodeOUs:\n"), raw)
}

func TestDefaultConfigDescriptor(t *testing.T) {
	raw, err := DefaultConfigDescriptor("")
	require.NoError(t, err)

	var decoded struct {
		NodeOUs struct {
			Enable             bool `yaml:"Enable"`
			ClientOUIdentifier struct {
				Certificate string `yaml:"Certificate"`
			} `yaml:"ClientOUIdentifier"`
		} `yaml:"NodeOUs"`
	}
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.True(t, decoded.NodeOUs.Enable)
	assert.Equal(t, "cacerts/ca.pem", decoded.NodeOUs.ClientOUIdentifier.Certificate)
}
