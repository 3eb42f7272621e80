package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"io"

	"pufsim/internal/domain"
)

const (
	// KeySize is the AES-256 key size.
	KeySize = 32

	// IVSize is the GCM nonce size (96 bits).
	IVSize = 12

	// TagSize is the GCM authentication tag size (128 bits).
	TagSize = 16
)

// Sealed is one AEAD output, hex encoded for transport.
type Sealed struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Tag        string `json:"tag"`
}

// Encrypt seals plaintext under key with AES-256-GCM. A fresh 96-bit IV
// is drawn from rng on every call, so an IV is never reused for a key.
func Encrypt(rng io.Reader, key, plaintext []byte) (Sealed, error) {
	aead, err := newGCM(key)
	if err != nil {
		return Sealed{}, err
	}
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rng, iv); err != nil {
		return Sealed{}, fmt.Errorf("generating iv: %w", err)
	}
	out := aead.Seal(nil, iv, plaintext, nil)
	// Seal appends the tag to the ciphertext; split for transport.
	ct, tag := out[:len(out)-TagSize], out[len(out)-TagSize:]
	return Sealed{
		Ciphertext: hex.EncodeToString(ct),
		IV:         hex.EncodeToString(iv),
		Tag:        hex.EncodeToString(tag),
	}, nil
}

// Decrypt opens a sealed message. A tag that does not verify, whether
// from tampering or a wrong key, fails with domain.ErrAuthentication.
func Decrypt(key []byte, sealed Sealed) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	ct, err := hex.DecodeString(sealed.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}
	iv, err := hex.DecodeString(sealed.IV)
	if err != nil {
		return nil, fmt.Errorf("decoding iv: %w", err)
	}
	tag, err := hex.DecodeString(sealed.Tag)
	if err != nil {
		return nil, fmt.Errorf("decoding tag: %w", err)
	}
	if len(iv) != IVSize || len(tag) != TagSize {
		return nil, fmt.Errorf("%w: bad iv or tag size", domain.ErrAuthentication)
	}
	plaintext, err := aead.Open(nil, iv, append(ct, tag...), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aead key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
