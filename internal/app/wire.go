package app

import (
	"crypto/rand"

	"pufsim/internal/domain"
	authsvc "pufsim/internal/services/authentication"
	enrollsvc "pufsim/internal/services/enrollment"
	handshakesvc "pufsim/internal/services/handshake"
	provisionsvc "pufsim/internal/services/provisioning"
	sessionsvc "pufsim/internal/services/session"
	"pufsim/internal/store"
)

// Wire bundles the store and phase services for collaborators.
type Wire struct {
	Store        domain.SessionStore
	Sessions     domain.SessionService
	Enrollment   domain.EnrollmentService
	Auth         domain.AuthenticationService
	Handshake    domain.HandshakeService
	Provisioning domain.ProvisioningService
	Credentials  *store.CredentialFileStore
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) *Wire {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.Reader
	}

	sessionStore := store.NewMemoryStore()

	return &Wire{
		Store:        sessionStore,
		Sessions:     sessionsvc.New(sessionStore, rng),
		Enrollment:   enrollsvc.New(sessionStore, rng),
		Auth:         authsvc.New(sessionStore, rng),
		Handshake:    handshakesvc.New(sessionStore, rng),
		Provisioning: provisionsvc.New(sessionStore, rng),
		Credentials:  store.NewCredentialFileStore(),
	}
}
