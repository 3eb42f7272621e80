package dhx_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pufsim/internal/protocol/dhx"
)

func TestSharedSecret_Agreement(t *testing.T) {
	device, err := dhx.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	server, err := dhx.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	deviceSecret, err := dhx.SharedSecret(device.Private, server.Public)
	require.NoError(t, err)
	serverSecret, err := dhx.SharedSecret(server.Private, device.Public)
	require.NoError(t, err)

	assert.Equal(t, deviceSecret, serverSecret)
	assert.Len(t, deviceSecret, dhx.ModulusSize)
}

func TestGenerateKeyPair_Distinct(t *testing.T) {
	a, err := dhx.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	b, err := dhx.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	assert.NotZero(t, a.Public.Cmp(b.Public), "independent key pairs share a public key")
	assert.NotZero(t, a.Private.Cmp(b.Private), "independent key pairs share a private key")
}

func TestDeriveSessionKey(t *testing.T) {
	device, err := dhx.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	server, err := dhx.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	secret, err := dhx.SharedSecret(device.Private, server.Public)
	require.NoError(t, err)

	key := dhx.DeriveSessionKey(secret)
	assert.Len(t, key, dhx.SessionKeySize)
	// Same secret, same key.
	assert.Equal(t, key, dhx.DeriveSessionKey(secret))
}

func TestSharedSecret_RejectsBadPublicKey(t *testing.T) {
	pair, err := dhx.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	for _, pub := range []*big.Int{nil, big.NewInt(0), big.NewInt(1)} {
		_, err := dhx.SharedSecret(pair.Private, pub)
		assert.ErrorIs(t, err, dhx.ErrInvalidPublicKey)
	}
}
