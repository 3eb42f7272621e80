package dhx

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Group sizes in bytes.
const (
	// ModulusSize is the size of a group element (2048-bit modulus).
	ModulusSize = 256

	// exponentSize is the size of an ephemeral private exponent.
	exponentSize = 32

	// SessionKeySize is the size of the derived session key.
	SessionKeySize = sha256.Size
)

// Exchange errors.
var (
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// prime2048 is the RFC 3526 group 14 modulus.
var prime2048 = mustHexBigInt(
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
		"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
		"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
		"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
		"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
		"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
		"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718" +
		"3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF")

// generator for the group.
var generator = big.NewInt(2)

// mustHexBigInt parses a hex string to big.Int or panics.
func mustHexBigInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex string: " + s)
	}
	return n
}

// KeyPair is one party's ephemeral key material over the fixed group.
type KeyPair struct {
	Private *big.Int
	Public  *big.Int
}

// GenerateKeyPair draws a fresh private exponent from rng and computes
// the matching public value g^x mod p.
func GenerateKeyPair(rng io.Reader) (KeyPair, error) {
	raw := make([]byte, exponentSize)
	if _, err := io.ReadFull(rng, raw); err != nil {
		return KeyPair{}, fmt.Errorf("generating private exponent: %w", err)
	}
	priv := new(big.Int).SetBytes(raw)
	// Keep the exponent in [2, p-2].
	if priv.Cmp(big.NewInt(2)) < 0 {
		priv.Add(priv, big.NewInt(2))
	}
	pub := new(big.Int).Exp(generator, priv, prime2048)
	return KeyPair{Private: priv, Public: pub}, nil
}

// SharedSecret computes peerPub^priv mod p, encoded big-endian and
// left-padded to the modulus size so both parties hash identical bytes.
func SharedSecret(priv, peerPub *big.Int) ([]byte, error) {
	if err := checkPublicKey(peerPub); err != nil {
		return nil, err
	}
	secret := new(big.Int).Exp(peerPub, priv, prime2048)
	return secret.FillBytes(make([]byte, ModulusSize)), nil
}

// DeriveSessionKey hashes the shared secret down to a 256-bit session key.
func DeriveSessionKey(sharedSecret []byte) []byte {
	key := sha256.Sum256(sharedSecret)
	return key[:]
}

// checkPublicKey rejects group elements outside (1, p-1).
func checkPublicKey(pub *big.Int) error {
	if pub == nil || pub.Cmp(big.NewInt(1)) <= 0 {
		return ErrInvalidPublicKey
	}
	pMinus1 := new(big.Int).Sub(prime2048, big.NewInt(1))
	if pub.Cmp(pMinus1) >= 0 {
		return ErrInvalidPublicKey
	}
	return nil
}
