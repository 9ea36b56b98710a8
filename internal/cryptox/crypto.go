// Package cryptox implements the field-level cipher for phone numbers and
// the key-derivation helpers used to seal the key file.
//
// Ciphertexts are self-contained: base64(nonce || ciphertext+tag), so only
// the symmetric key is needed to decrypt. Any failure to recover the exact
// plaintext surfaces as common.ErrDecryptionFailed; a partially decrypted or
// unauthenticated result is never returned.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/phonesaver/phonesaver/internal/common"
)

const nonceSize = 12

// KeySize is the symmetric key length: AES-256.
const KeySize = 32

// DeriveKEK derives a key-encryption key from a passphrase and salt using
// argon2id. The parameters match common interactive-login settings.
func DeriveKEK(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier returns a fingerprint of the key, safe to store next to the
// sealed key file for fast wrong-passphrase detection.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// EncryptString encrypts plaintext under key using AES-GCM with a fresh
// random 12-byte nonce and returns a base64 blob of nonce || ciphertext.
// The key must be KeySize bytes.
func EncryptString(plaintext string, key []byte) (string, error) {
	blob, err := Seal([]byte(plaintext), key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptString reverses EncryptString. Malformed base64, truncated blobs,
// and authentication failures (wrong key, corrupted data) all return
// common.ErrDecryptionFailed.
func DecryptString(blob string, key []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64", common.ErrDecryptionFailed)
	}
	plaintext, err := Open(raw, key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Seal encrypts plaintext and returns the raw nonce || ciphertext blob.
func Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a raw nonce || ciphertext blob produced by Seal.
func Open(blob, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: blob too short", common.ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
