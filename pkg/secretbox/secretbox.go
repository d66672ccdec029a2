// Package secretbox seals small payloads with AES-256-GCM. The key is derived
// from the configured encryption passphrase, so any process sharing the
// passphrase can open what another sealed.
package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
)

var ErrMalformed = errors.New("secretbox: malformed sealed payload")

// Box seals and opens payloads with a single derived key.
type Box struct {
	aead cipher.AEAD
}

// New derives a 32-byte key from the passphrase and prepares the cipher.
func New(passphrase string) (*Box, error) {
	if len(passphrase) < 32 {
		return nil, errors.New("secretbox: passphrase must be at least 32 characters")
	}
	key := sha256.Sum256([]byte(passphrase))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Box{aead: aead}, nil
}

// Seal encrypts plaintext. The random nonce is prepended to the ciphertext.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return b.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a payload produced by Seal.
func (b *Box) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < b.aead.NonceSize() {
		return nil, ErrMalformed
	}
	nonce, ciphertext := sealed[:b.aead.NonceSize()], sealed[b.aead.NonceSize():]
	plaintext, err := b.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrMalformed
	}
	return plaintext, nil
}
