package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pufsim/internal/domain"
	"pufsim/internal/store"
)

func TestCredentialFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.enc")
	creds := domain.Credentials{
		DeviceID:    "DEV-1",
		Certificate: "-----BEGIN CERTIFICATE-----\nAAAA\n-----END CERTIFICATE-----",
		Token:       "tok-123",
		IssuedAt:    "2026-01-01T00:00:00Z",
		ExpiresAt:   "2027-01-01T00:00:00Z",
	}

	cs := store.NewCredentialFileStore()
	require.NoError(t, cs.Export(path, "pass", creds))

	got, err := cs.Import(path, "pass")
	require.NoError(t, err)
	assert.Equal(t, creds, got)
}

func TestCredentialFileStore_WrongPassphraseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.enc")
	cs := store.NewCredentialFileStore()
	require.NoError(t, cs.Export(path, "correct", domain.Credentials{DeviceID: "DEV-1"}))

	_, err := cs.Import(path, "wrong")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}
