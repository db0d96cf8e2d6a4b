/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package wallet provides file-backed access to an application credential
// store: one JSON entry file per identity, named after the sanitized
// identity name with an ".id" extension. Writes assume a single writer;
// concurrent imports of the same name are last-write-wins.
package wallet

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hyperledgendary/weft/weft/identity"
	"github.com/hyperledgendary/weft/weft/msp"
	"github.com/hyperledgendary/weft/weft/sanitize"
	"github.com/hyperledgendary/weft/weft/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("weft.wallet")

var (
	// ErrAlreadyExists signals an import conflict without the overwrite flag.
	ErrAlreadyExists = errors.New("wallet entry already exists")
	// ErrNotFound signals an export of an absent entry.
	ErrNotFound = errors.New("wallet entry not found")
)

const entryExtension = ".id"

// Store is a wallet rooted at one directory.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the wallet root directory.
func (s *Store) Path() string {
	return s.path
}

// List enumerates the identity names currently stored. Each call re-reads
// the directory, so repeated enumeration reflects the current state. A
// missing wallet directory is an empty wallet.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read wallet directory %s", s.path)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), entryExtension))
	}
	sort.Strings(names)
	return names, nil
}

// Import writes the entry into the wallet. An existing entry of the same
// name fails with ErrAlreadyExists unless overwrite is set, in which case
// the new content silently replaces it.
func (s *Store) Import(e *Entry, overwrite bool) error {
	name, err := sanitize.Segment(e.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.path, 0o755); err != nil {
		return errors.Wrapf(err, "could not create wallet directory %s", s.path)
	}

	file := filepath.Join(s.path, name+entryExtension)
	if !overwrite {
		if _, err := os.Stat(file); err == nil {
			return errors.Wrapf(ErrAlreadyExists, "identity [%s] in wallet %s", e.Name, s.path)
		}
	}

	raw, err := e.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, raw, 0o644); err != nil {
		return errors.Wrapf(err, "could not write wallet entry %s", file)
	}
	logger.Debugf("imported identity [%s] into wallet [%s]", name, s.path)
	return nil
}

// ImportJSON parses one provisioning-service identity blob and imports it
// in the given format. An empty MSP id in the blob is tolerated; the wallet
// entry then carries none.
func (s *Store) ImportJSON(raw []byte, overwrite bool, format Format) error {
	id, err := identity.ParseJSON(raw)
	if err != nil {
		return err
	}
	return s.Import(FromIdentity(id, format), overwrite)
}

// Export reads and decodes one entry.
func (s *Store) Export(name string) (*Entry, error) {
	safe, err := sanitize.Segment(name)
	if err != nil {
		return nil, err
	}
	file := filepath.Join(s.path, safe+entryExtension)
	raw, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "identity [%s] in wallet %s", name, s.path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read wallet entry %s", file)
	}
	return DecodeEntry(safe, raw)
}

// ImportFromMSP reads an MSP credential directory and stores it as a wallet
// entry. The directory layout does not encode an MSP id, so the caller
// supplies it.
func (s *Store) ImportFromMSP(mspRoot, mspID string, overwrite bool) error {
	id, err := msp.ReadIdentity(mspRoot, mspID)
	if err != nil {
		return err
	}
	return s.Import(FromIdentity(id, FormatCurrent), overwrite)
}
