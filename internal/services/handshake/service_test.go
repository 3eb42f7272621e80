package handshake_test

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pufsim/internal/domain"
	"pufsim/internal/protocol/dhx"
	"pufsim/internal/services/handshake"
	sessionsvc "pufsim/internal/services/session"
	"pufsim/internal/store"
)

func setup(t *testing.T) (string, *handshake.Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	id, err := sessionsvc.New(st, rand.Reader).Create("DEV-1", "arbiter", 10)
	require.NoError(t, err)
	return id, handshake.New(st, rand.Reader), st
}

func TestExchangeKeys_DerivesSessionKey(t *testing.T) {
	id, svc, st := setup(t)

	result, err := svc.ExchangeKeys(id)
	require.NoError(t, err)

	// Hex-encoded 2048-bit group elements.
	assert.Len(t, result.DevicePublicKey, dhx.ModulusSize*2)
	assert.Len(t, result.ServerPublicKey, dhx.ModulusSize*2)
	assert.NotEqual(t, result.DevicePublicKey, result.ServerPublicKey)
	assert.True(t, strings.HasSuffix(result.SessionKeyPreview, "..."))

	sess, err := st.Snapshot(id)
	require.NoError(t, err)
	assert.Len(t, sess.SessionKey, dhx.SessionKeySize)
	require.NotNil(t, sess.DH)
	assert.NotEmpty(t, sess.DH.DevicePublic)
	assert.NotEmpty(t, sess.DH.ServerPublic)
}

func TestExchangeKeys_NeverLogsSecrets(t *testing.T) {
	id, svc, st := setup(t)

	_, err := svc.ExchangeKeys(id)
	require.NoError(t, err)

	sess, err := st.Snapshot(id)
	require.NoError(t, err)
	fullKey := hex.EncodeToString(sess.SessionKey)
	devicePriv := hex.EncodeToString(sess.DH.DevicePrivate)
	for _, line := range sess.Log {
		assert.NotContains(t, line, fullKey)
		assert.NotContains(t, line, devicePriv)
	}
}

func TestExchangeKeys_RerunReplacesKey(t *testing.T) {
	id, svc, st := setup(t)

	_, err := svc.ExchangeKeys(id)
	require.NoError(t, err)
	first, err := st.Snapshot(id)
	require.NoError(t, err)

	_, err = svc.ExchangeKeys(id)
	require.NoError(t, err)
	second, err := st.Snapshot(id)
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionKey, second.SessionKey)
	assert.NotEqual(t, first.DH.DevicePublic, second.DH.DevicePublic)
}

func TestExchangeKeys_UnknownSession(t *testing.T) {
	_, svc, _ := setup(t)

	_, err := svc.ExchangeKeys("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
