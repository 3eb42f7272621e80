package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pufsim/internal/app"
	"pufsim/internal/protocol/dhx"
)

// TestFullProtocol drives the canonical scenario: create, enroll,
// authenticate, exchange keys, provision, operate, then reset.
func TestFullProtocol(t *testing.T) {
	wire := app.NewWire(app.Config{})

	id, err := wire.Sessions.Create("DEV-1", "arbiter", 10)
	require.NoError(t, err)

	enrolled, err := wire.Enrollment.Enroll(id)
	require.NoError(t, err)
	assert.Equal(t, 10, enrolled.CRPCount)

	auth, err := wire.Auth.Authenticate(id)
	require.NoError(t, err)
	assert.True(t, auth.Success)

	exchanged, err := wire.Handshake.ExchangeKeys(id)
	require.NoError(t, err)
	assert.Len(t, exchanged.DevicePublicKey, dhx.ModulusSize*2)
	assert.Len(t, exchanged.ServerPublicKey, dhx.ModulusSize*2)
	assert.NotEqual(t, exchanged.DevicePublicKey, exchanged.ServerPublicKey)

	provisioned, err := wire.Provisioning.Provision(id)
	require.NoError(t, err)
	assert.True(t, provisioned.Provisioned)

	operated, err := wire.Provisioning.Operate(id)
	require.NoError(t, err)
	assert.NotEmpty(t, operated.ServerMessage)
	assert.NotEmpty(t, operated.DeviceMessage)

	summary, err := wire.Sessions.Summary(id)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.CRPCount)
	assert.True(t, summary.HasSessionKey)
	assert.True(t, summary.Provisioned)

	// The log accumulates across phases until reset.
	assert.Greater(t, summary.LogCount, 10)

	require.NoError(t, wire.Sessions.Reset(id))
	summary, err = wire.Sessions.Summary(id)
	require.NoError(t, err)
	assert.Zero(t, summary.CRPCount)
	assert.False(t, summary.HasSessionKey)
	assert.False(t, summary.Provisioned)
	assert.Zero(t, summary.LogCount)
	assert.Equal(t, "DEV-1", summary.DeviceID)
	assert.Equal(t, 10, summary.NumCRPs)
}

// TestStoresAreIndependent checks that separate wires never share
// session state.
func TestStoresAreIndependent(t *testing.T) {
	a := app.NewWire(app.Config{})
	b := app.NewWire(app.Config{})

	id, err := a.Sessions.Create("DEV-1", "arbiter", 5)
	require.NoError(t, err)

	_, err = b.Sessions.Summary(id)
	assert.Error(t, err)
}
