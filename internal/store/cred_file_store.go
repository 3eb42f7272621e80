package store

import (
	"encoding/json"
	"os"

	"pufsim/internal/crypto"
	"pufsim/internal/domain"
)

// CredentialFileStore writes provisioned credential snapshots to disk
// as passphrase-encrypted envelopes.
type CredentialFileStore struct{}

// NewCredentialFileStore returns a credential export store.
func NewCredentialFileStore() *CredentialFileStore { return &CredentialFileStore{} }

// Export seals creds under passphrase and writes the envelope to path.
func (c *CredentialFileStore) Export(path, passphrase string, creds domain.Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	blob, err := crypto.SealEnvelope(passphrase, raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o600)
}

// Import reads and decrypts a credential envelope from path.
func (c *CredentialFileStore) Import(path, passphrase string) (domain.Credentials, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return domain.Credentials{}, err
	}
	raw, err := crypto.OpenEnvelope(passphrase, blob)
	if err != nil {
		return domain.Credentials{}, err
	}
	var creds domain.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return domain.Credentials{}, err
	}
	return creds, nil
}
