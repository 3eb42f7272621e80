// Package handshake runs the Diffie-Hellman exchange between the two
// simulated parties and derives the session key.
package handshake

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"pufsim/internal/domain"
	"pufsim/internal/protocol/dhx"
)

// Service performs the key-exchange phase.
//
// The exchange may be re-run on any valid session: a new run replaces
// any prior DH material and session key. Private keys and the full
// session key are never written to the log.
type Service struct {
	store domain.SessionStore
	rng   io.Reader
}

// New returns a handshake service drawing key material from rng.
func New(store domain.SessionStore, rng io.Reader) *Service {
	return &Service{store: store, rng: rng}
}

// ExchangeKeys generates ephemeral key pairs for both parties over the
// fixed group, has each compute the shared secret from the other's
// public key, verifies the secrets agree and derives the session key.
// A secret mismatch is fatal: the phase fails IntegrityError and the
// old session key, if any, stays untouched.
func (s *Service) ExchangeKeys(id string) (domain.KeyExchangeResult, error) {
	var result domain.KeyExchangeResult
	err := s.store.Update(id, func(sess *domain.Session) error {
		sess.AppendLog("Key exchange started: 2048-bit MODP group, generator 2")

		device, err := dhx.GenerateKeyPair(s.rng)
		if err != nil {
			return fmt.Errorf("generating device key pair: %w", err)
		}
		server, err := dhx.GenerateKeyPair(s.rng)
		if err != nil {
			return fmt.Errorf("generating server key pair: %w", err)
		}
		sess.AppendLog("Ephemeral key pairs generated for device and server")

		deviceSecret, err := dhx.SharedSecret(device.Private, server.Public)
		if err != nil {
			return fmt.Errorf("device shared secret: %w", err)
		}
		serverSecret, err := dhx.SharedSecret(server.Private, device.Public)
		if err != nil {
			return fmt.Errorf("server shared secret: %w", err)
		}
		if !bytes.Equal(deviceSecret, serverSecret) {
			sess.AppendLog("Key exchange ABORTED: shared secrets differ")
			return fmt.Errorf("%w: shared secrets differ", domain.ErrIntegrity)
		}
		sess.AppendLog("Shared secret agreed by both parties")

		key := dhx.DeriveSessionKey(deviceSecret)

		devicePub := hex.EncodeToString(device.Public.FillBytes(make([]byte, dhx.ModulusSize)))
		serverPub := hex.EncodeToString(server.Public.FillBytes(make([]byte, dhx.ModulusSize)))
		sess.DH = &domain.DHMaterial{
			DevicePrivate: device.Private.Bytes(),
			DevicePublic:  device.Public.Bytes(),
			ServerPrivate: server.Private.Bytes(),
			ServerPublic:  server.Public.Bytes(),
		}
		sess.SessionKey = key
		sess.AppendLog("Session key derived (SHA-256 of shared secret, preview %s...)", hex.EncodeToString(key[:4]))

		result = domain.KeyExchangeResult{
			DevicePublicKey:   devicePub,
			ServerPublicKey:   serverPub,
			SessionKeyPreview: hex.EncodeToString(key[:4]) + "...",
			Log:               sess.LogSnapshot(),
		}
		return nil
	})
	if err != nil {
		return domain.KeyExchangeResult{}, err
	}
	return result, nil
}

// Compile-time assertion that Service implements domain.HandshakeService.
var _ domain.HandshakeService = (*Service)(nil)
