// Package session implements the session manager: lifecycle, summaries
// and the guard-free operations (reset, delete).
package session

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"pufsim/internal/domain"
)

// CRP capacity bounds for a session.
const (
	MinCRPs = 1
	MaxCRPs = 1000
)

// Service creates and administers sessions in the backing store.
//
// A session's identity (id, device id, PUF type, seed, CRP capacity) is
// fixed here at creation and survives resets; only protocol progress is
// mutable afterwards, and only by the phase services.
type Service struct {
	store domain.SessionStore
	rng   io.Reader
}

// New returns a session service backed by the given store, drawing ids
// and seeds from rng.
func New(store domain.SessionStore, rng io.Reader) *Service {
	return &Service{store: store, rng: rng}
}

// Create validates the parameters, fixes the session's identity and
// registers it. Validation happens before any state is touched.
func (s *Service) Create(deviceID, pufType string, numCRPs int) (string, error) {
	if deviceID == "" {
		return "", fmt.Errorf("%w: device id must not be empty", domain.ErrValidation)
	}
	typ, err := domain.ParsePUFType(pufType)
	if err != nil {
		return "", err
	}
	if numCRPs < MinCRPs || numCRPs > MaxCRPs {
		return "", fmt.Errorf("%w: num crps must be in [%d,%d], got %d",
			domain.ErrValidation, MinCRPs, MaxCRPs, numCRPs)
	}

	id, err := s.newSessionID()
	if err != nil {
		return "", err
	}
	var seedRaw [4]byte
	if _, err := io.ReadFull(s.rng, seedRaw[:]); err != nil {
		return "", fmt.Errorf("generating puf seed: %w", err)
	}

	sess := domain.Session{
		ID:        id,
		DeviceID:  deviceID,
		PUFType:   typ,
		PUFSeed:   binary.BigEndian.Uint32(seedRaw[:]),
		NumCRPs:   numCRPs,
		CreatedAt: time.Now().UTC(),
	}
	sess.AppendLog("Session created for device %s (puf=%s, crps=%d)", deviceID, typ, numCRPs)

	if err := s.store.Create(&sess); err != nil {
		return "", err
	}
	return id, nil
}

// Summary returns the external view of a session. It never exposes the
// seed, private keys, or the session key.
func (s *Service) Summary(id string) (domain.Summary, error) {
	sess, err := s.store.Snapshot(id)
	if err != nil {
		return domain.Summary{}, err
	}
	return sess.Summarize(), nil
}

// List returns summaries of every live session, oldest first.
func (s *Service) List() []domain.Summary {
	return s.store.List()
}

// Reset clears all protocol progress but keeps the session's identity.
func (s *Service) Reset(id string) error {
	return s.store.Update(id, func(sess *domain.Session) error {
		sess.Reset()
		return nil
	})
}

// Delete removes the session entirely.
func (s *Service) Delete(id string) error {
	return s.store.Delete(id)
}

// newSessionID draws a 128-bit random id, hex encoded.
func (s *Service) newSessionID() (string, error) {
	var raw [16]byte
	if _, err := io.ReadFull(s.rng, raw[:]); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(raw[:]), nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
