package domain

import (
	"fmt"
	"strings"
	"time"
)

// PUFType identifies the simulated PUF construction a session uses.
// The string value is part of the evaluator input block, so it is fixed
// to the canonical lowercase spelling.
type PUFType string

const (
	Arbiter  PUFType = "arbiter"
	SRAM     PUFType = "sram"
	Fallback PUFType = "fallback"
)

// ParsePUFType validates and canonicalises a user-supplied PUF type name.
func ParsePUFType(s string) (PUFType, error) {
	switch PUFType(strings.ToLower(strings.TrimSpace(s))) {
	case Arbiter:
		return Arbiter, nil
	case SRAM:
		return SRAM, nil
	case Fallback:
		return Fallback, nil
	}
	return "", fmt.Errorf("%w: unknown puf type %q", ErrValidation, s)
}

// ChallengeBits is the challenge width used throughout the protocol.
const ChallengeBits = 64

// Challenge is an ordered sequence of bits, one byte per bit (0 or 1).
type Challenge []byte

// Pack packs the bits into the minimum number of bytes, most significant
// bit first within each byte. Bits beyond the last full byte are zero.
func (c Challenge) Pack() []byte {
	out := make([]byte, (len(c)+7)/8)
	for i, bit := range c {
		if bit&1 == 1 {
			out[i/8] |= 1 << (7 - uint(i)%8)
		}
	}
	return out
}

// Preview renders the first n bits as a "0"/"1" string, with an ellipsis
// when the challenge is longer than n.
func (c Challenge) Preview(n int) string {
	var b strings.Builder
	for i, bit := range c {
		if i == n {
			b.WriteString("...")
			break
		}
		b.WriteByte('0' + bit&1)
	}
	return b.String()
}

// Clone returns an independent copy of the challenge.
func (c Challenge) Clone() Challenge {
	return append(Challenge(nil), c...)
}

// CRP is one challenge-response pair recorded at enrollment. It is
// immutable after creation and read again by authentication.
type CRP struct {
	Challenge Challenge
	Response  byte
}

// DHMaterial holds the ephemeral Diffie-Hellman key pairs of the two
// simulated parties. Keys are big-endian byte encodings of the group
// elements; both pairs share the same domain parameters.
type DHMaterial struct {
	DevicePrivate []byte
	DevicePublic  []byte
	ServerPrivate []byte
	ServerPublic  []byte
}

// Credentials is the decrypted credential snapshot a device holds after
// a successful provisioning pass.
type Credentials struct {
	DeviceID    string `json:"device_id"`
	Certificate string `json:"certificate"`
	Token       string `json:"token"`
	IssuedAt    string `json:"issued_at"`
	ExpiresAt   string `json:"expires_at"`
}

// Session tracks one simulated device's progress through the protocol.
//
// PUFSeed and PUFType are fixed at creation and never change. CRPs holds
// at most NumCRPs entries. SessionKey is present only after a successful
// key exchange, and Provisioned is true only after a successful
// provisioning pass with a present key. Log is append-only and only ever
// cleared by a reset.
type Session struct {
	ID       string
	DeviceID string
	PUFType  PUFType
	PUFSeed  uint32
	NumCRPs  int

	CRPs        []CRP
	DH          *DHMaterial
	SessionKey  []byte
	Provisioned bool
	Credentials *Credentials

	Log       []string
	CreatedAt time.Time
}

// AppendLog records a timestamped entry on the session log.
func (s *Session) AppendLog(format string, args ...any) {
	entry := fmt.Sprintf("[%s] %s", time.Now().UTC().Format("15:04:05.000"), fmt.Sprintf(format, args...))
	s.Log = append(s.Log, entry)
}

// LogSnapshot returns an independent copy of the session log, oldest first.
func (s *Session) LogSnapshot() []string {
	return append([]string(nil), s.Log...)
}

// Clone deep-copies the session so callers never hold live aliases into
// store-owned state.
func (s *Session) Clone() Session {
	out := *s
	out.Log = append([]string(nil), s.Log...)
	out.SessionKey = append([]byte(nil), s.SessionKey...)
	if s.CRPs != nil {
		out.CRPs = make([]CRP, len(s.CRPs))
		for i, crp := range s.CRPs {
			out.CRPs[i] = CRP{Challenge: crp.Challenge.Clone(), Response: crp.Response}
		}
	}
	if s.DH != nil {
		dh := DHMaterial{
			DevicePrivate: append([]byte(nil), s.DH.DevicePrivate...),
			DevicePublic:  append([]byte(nil), s.DH.DevicePublic...),
			ServerPrivate: append([]byte(nil), s.DH.ServerPrivate...),
			ServerPublic:  append([]byte(nil), s.DH.ServerPublic...),
		}
		out.DH = &dh
	}
	if s.Credentials != nil {
		creds := *s.Credentials
		out.Credentials = &creds
	}
	return out
}

// Reset clears all protocol progress while preserving the session's
// identity: id, device id, PUF type, seed and CRP capacity survive.
func (s *Session) Reset() {
	s.CRPs = nil
	s.DH = nil
	s.SessionKey = nil
	s.Provisioned = false
	s.Credentials = nil
	s.Log = nil
}

// Summary is the externally visible view of a session. It never carries
// the PUF seed, private keys, or the session key.
type Summary struct {
	ID            string  `json:"id"`
	DeviceID      string  `json:"device_id"`
	PUFType       PUFType `json:"puf_type"`
	NumCRPs       int     `json:"num_crps"`
	CRPCount      int     `json:"crp_count"`
	HasSessionKey bool    `json:"has_session_key"`
	Provisioned   bool    `json:"provisioned"`
	LogCount      int     `json:"log_count"`
}

// Summarize builds the external view of the session.
func (s *Session) Summarize() Summary {
	return Summary{
		ID:            s.ID,
		DeviceID:      s.DeviceID,
		PUFType:       s.PUFType,
		NumCRPs:       s.NumCRPs,
		CRPCount:      len(s.CRPs),
		HasSessionKey: len(s.SessionKey) > 0,
		Provisioned:   s.Provisioned,
		LogCount:      len(s.Log),
	}
}
