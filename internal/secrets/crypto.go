package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// SealPrefix marks a sealed payload.
const SealPrefix = "vm1:"

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	argonTime    = 3
	argonMemory  = 32 * 1024
	argonThreads = 4
)

// DeriveKey stretches a passphrase into a secretbox key.
func DeriveKey(passphrase string, salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keySize))
	return &key
}

// Seal encrypts and authenticates plaintext under passphrase.
func Seal(plaintext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", fmt.Errorf("%w: empty passphrase", verrors.ErrSealFailed)
	}

	header := make([]byte, saltSize+nonceSize)
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return "", fmt.Errorf("%w: reading random bytes: %v", verrors.ErrSealFailed, err)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], header[saltSize:])
	key := DeriveKey(passphrase, header[:saltSize])

	sealed := secretbox.Seal(header, []byte(plaintext), &nonce, key)
	return SealPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
//
// Returns ErrInvalidSealedPayload when the armor is malformed and
// ErrOpenFailed when authentication fails.
func Open(sealed, passphrase string) (string, error) {
	if !IsSealed(sealed) {
		return "", fmt.Errorf("%w: missing %q prefix", verrors.ErrInvalidSealedPayload, SealPrefix)
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, SealPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", verrors.ErrInvalidSealedPayload, err)
	}
	if len(raw) < saltSize+nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: payload too short", verrors.ErrInvalidSealedPayload)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[saltSize:saltSize+nonceSize])
	key := DeriveKey(passphrase, raw[:saltSize])

	plaintext, ok := secretbox.Open(nil, raw[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return "", verrors.ErrOpenFailed
	}
	return string(plaintext), nil
}

// SealedLen returns the length of Seal's output for plaintext. The armor is
// ASCII, so this is also its length in UTF-16 code units.
func SealedLen(plaintext string) int {
	return len(SealPrefix) + base64.RawURLEncoding.EncodedLen(saltSize+nonceSize+secretbox.Overhead+len(plaintext))
}

// IsSealed reports whether text carries the sealed payload prefix.
func IsSealed(text string) bool {
	return strings.HasPrefix(text, SealPrefix)
}
