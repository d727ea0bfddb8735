package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// SecretBoxService implements ports.SecretBox using NaCl secretbox.
type SecretBoxService struct {
	key [32]byte
}

// NewSecretBoxService creates the sealer from a 64-character hex key.
func NewSecretBoxService(hexKey string) (*SecretBoxService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding secretbox key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("secretbox key must be 32 bytes, got %d", len(key))
	}
	s := &SecretBoxService{}
	copy(s.key[:], key)
	return s, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (s *SecretBoxService) Seal(plaintext []byte) ([]byte, []byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, nil, fmt.Errorf("generating nonce: %w", err)
	}
	return secretbox.Seal(nil, plaintext, &nonce, &s.key), nonce[:], nil
}

// Open authenticates and decrypts ciphertext.
func (s *SecretBoxService) Open(ciphertext, nonce []byte) ([]byte, error) {
	if len(nonce) != nonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", nonceSize, len(nonce))
	}
	var n [nonceSize]byte
	copy(n[:], nonce)

	plaintext, ok := secretbox.Open(nil, ciphertext, &n, &s.key)
	if !ok {
		return nil, fmt.Errorf("secretbox: message authentication failed")
	}
	return plaintext, nil
}
