package puf

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"pufsim/internal/domain"
)

// Evaluate maps (challenge, seed, pufType) to a single response bit.
//
// The input block is the 4-byte big-endian seed, the PUF type name, and
// the challenge packed MSB-first. All 32 bytes of its SHA-256 digest are
// XOR-folded into one accumulator byte, which is then reduced to one bit
// by the cumulative fold below. The fold is intentionally not a textbook
// parity: stored CRPs depend on it bit-for-bit, so it must not change.
func Evaluate(challenge domain.Challenge, seed uint32, pufType domain.PUFType) byte {
	packed := challenge.Pack()

	block := make([]byte, 0, 4+len(pufType)+len(packed))
	block = binary.BigEndian.AppendUint32(block, seed)
	block = append(block, []byte(pufType)...)
	block = append(block, packed...)

	digest := sha256.Sum256(block)

	var acc byte
	for _, b := range digest {
		acc ^= b
	}
	for i := 0; i < 8; i++ {
		acc ^= (acc >> uint(i)) & 1
	}
	return acc & 1
}

// NewChallenge draws a fresh random challenge of the given bit width
// from rng.
func NewChallenge(rng io.Reader, bits int) (domain.Challenge, error) {
	raw := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rng, raw); err != nil {
		return nil, fmt.Errorf("generating challenge: %w", err)
	}
	out := make(domain.Challenge, bits)
	for i := range out {
		out[i] = (raw[i/8] >> (7 - uint(i)%8)) & 1
	}
	return out, nil
}
