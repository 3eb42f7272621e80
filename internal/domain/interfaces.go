package domain

// SessionStore owns all session state. Snapshots are deep copies;
// mutation happens only inside Update, which runs fn under the
// session's lock so phase operations against one id never race.
type SessionStore interface {
	Create(s *Session) error
	Snapshot(id string) (Session, error)
	Update(id string, fn func(*Session) error) error
	Delete(id string) error
	List() []Summary
}

// SessionService owns session lifecycle: creation, summaries, reset and
// deletion.
type SessionService interface {
	Create(deviceID, pufType string, numCRPs int) (string, error)
	Summary(id string) (Summary, error)
	List() []Summary
	Reset(id string) error
	Delete(id string) error
}

// EnrollmentService fills a session's CRP store from the simulated PUF.
type EnrollmentService interface {
	Enroll(id string) (EnrollResult, error)
}

// AuthenticationService replays a stored CRP against the PUF.
type AuthenticationService interface {
	Authenticate(id string) (AuthResult, error)
}

// HandshakeService runs the Diffie-Hellman exchange and derives the
// session key.
type HandshakeService interface {
	ExchangeKeys(id string) (KeyExchangeResult, error)
}

// ProvisioningService performs the encrypted provisioning and
// operational phases, plus read access to the provisioned credential
// snapshot.
type ProvisioningService interface {
	Provision(id string) (ProvisionResult, error)
	Operate(id string) (OperateResult, error)
	Credentials(id string) (Credentials, error)
}
