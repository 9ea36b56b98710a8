// Package keystore implements the key custodian: lazy creation and retrieval
// of the symmetric phone-encryption key from a local file.
//
// The store is an injected dependency; the composition root constructs one
// per process. Key material never leaves the local file and is never sent to
// the server or included in backups.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/cryptox"
)

const (
	// File format: one version byte followed by the payload.
	versionPlain  = 0x01 // payload = raw 32-byte key
	versionSealed = 0x02 // payload = 16-byte salt || GCM-sealed key

	saltSize = 16
)

// FileStore keeps the symmetric key in a single file with 0600 permissions.
// When a passphrase is supplied the key is sealed under an argon2id-derived
// KEK; otherwise it is stored raw.
type FileStore struct {
	path       string
	passphrase []byte

	mu  sync.Mutex
	key []byte
}

// NewFileStore returns a store backed by path. passphrase may be nil.
func NewFileStore(path string, passphrase []byte) *FileStore {
	return &FileStore{path: path, passphrase: passphrase}
}

// GetOrCreate returns the stored key, generating and persisting a fresh
// 256-bit key on first use. The mutex makes first-call generation
// single-flight: concurrent callers and all subsequent callers observe the
// same key.
//
// Any storage failure (unreadable file, bad permissions, wrong passphrase)
// returns common.ErrKeyUnavailable. Callers must propagate it; substituting
// a default key would silently produce undecryptable data.
func (s *FileStore) GetOrCreate(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := s.load()
	if err == nil {
		s.key = key
		return s.key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	key, err = s.generate()
	if err != nil {
		return nil, err
	}
	s.key = key
	return s.key, nil
}

func (s *FileStore) load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}

	if len(data) < 1 {
		return nil, fmt.Errorf("%w: empty key file", common.ErrKeyUnavailable)
	}

	switch data[0] {
	case versionPlain:
		key := data[1:]
		if len(key) != cryptox.KeySize {
			return nil, fmt.Errorf("%w: bad key length %d", common.ErrKeyUnavailable, len(key))
		}
		return key, nil
	case versionSealed:
		return s.unseal(data[1:])
	default:
		return nil, fmt.Errorf("%w: unknown key file version %d", common.ErrKeyUnavailable, data[0])
	}
}

func (s *FileStore) unseal(payload []byte) ([]byte, error) {
	if len(s.passphrase) == 0 {
		return nil, fmt.Errorf("%w: key file is passphrase-protected", common.ErrKeyUnavailable)
	}
	if len(payload) <= saltSize {
		return nil, fmt.Errorf("%w: truncated key file", common.ErrKeyUnavailable)
	}

	salt, blob := payload[:saltSize], payload[saltSize:]
	kek := cryptox.DeriveKEK(s.passphrase, salt)
	defer common.WipeByteArray(kek)

	key, err := cryptox.Open(blob, kek)
	if err != nil {
		// Wrong passphrase and corrupted files are indistinguishable here;
		// either way the store is inaccessible.
		return nil, fmt.Errorf("%w: cannot unseal key file", common.ErrKeyUnavailable)
	}
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("%w: bad sealed key length", common.ErrKeyUnavailable)
	}
	return key, nil
}

func (s *FileStore) generate() ([]byte, error) {
	key := common.GenerateRandByteArray(cryptox.KeySize)

	var data []byte
	if len(s.passphrase) == 0 {
		data = append([]byte{versionPlain}, key...)
	} else {
		salt := common.GenerateRandByteArray(saltSize)
		kek := cryptox.DeriveKEK(s.passphrase, salt)
		blob, err := cryptox.Seal(key, kek)
		common.WipeByteArray(kek)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
		}
		data = append([]byte{versionSealed}, salt...)
		data = append(data, blob...)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}
	return key, nil
}
