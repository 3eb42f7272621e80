package enrollment_test

import (
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pufsim/internal/domain"
	"pufsim/internal/puf"
	"pufsim/internal/services/enrollment"
	sessionsvc "pufsim/internal/services/session"
	"pufsim/internal/store"
)

func setup(t *testing.T, numCRPs int) (string, *enrollment.Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	id, err := sessionsvc.New(st, rand.Reader).Create("DEV-1", "arbiter", numCRPs)
	require.NoError(t, err)
	return id, enrollment.New(st, rand.Reader), st
}

func TestEnroll_ProducesExactlyNumCRPs(t *testing.T) {
	for _, n := range []int{1, 3, 10, 100} {
		id, svc, st := setup(t, n)

		result, err := svc.Enroll(id)
		require.NoError(t, err)
		assert.Equal(t, n, result.CRPCount)

		sess, err := st.Snapshot(id)
		require.NoError(t, err)
		require.Len(t, sess.CRPs, n)
		for _, crp := range sess.CRPs {
			assert.Len(t, crp.Challenge, domain.ChallengeBits)
			assert.LessOrEqual(t, crp.Response, byte(1))
			// Stored response must match a fresh evaluation.
			assert.Equal(t, puf.Evaluate(crp.Challenge, sess.PUFSeed, sess.PUFType), crp.Response)
		}
	}
}

func TestEnroll_ReplacesPriorCRPs(t *testing.T) {
	id, svc, st := setup(t, 10)

	_, err := svc.Enroll(id)
	require.NoError(t, err)
	first, err := st.Snapshot(id)
	require.NoError(t, err)

	_, err = svc.Enroll(id)
	require.NoError(t, err)
	second, err := st.Snapshot(id)
	require.NoError(t, err)

	require.Len(t, second.CRPs, 10)
	// 64-bit random challenges: a repeat between runs means the set was
	// not regenerated.
	assert.NotEqual(t, first.CRPs[0].Challenge, second.CRPs[0].Challenge)
}

func TestEnroll_LogBoundsVerbosity(t *testing.T) {
	id, svc, _ := setup(t, 100)

	result, err := svc.Enroll(id)
	require.NoError(t, err)

	var previews, summaries int
	for _, line := range result.Log {
		if strings.Contains(line, "challenge=") {
			previews++
		}
		if strings.Contains(line, "... enrolling CRPs") {
			summaries++
		}
	}
	// First three and the last get full previews; the middle collapses
	// to a single summary line.
	assert.Equal(t, 4, previews)
	assert.Equal(t, 1, summaries)
}

func TestEnroll_FailedPassLeavesSessionUntouched(t *testing.T) {
	id, svc, st := setup(t, 10)
	_, err := svc.Enroll(id)
	require.NoError(t, err)
	before, err := st.Snapshot(id)
	require.NoError(t, err)

	// Enough randomness for three challenges, then the source dries up
	// mid-pass.
	starved := enrollment.New(st, io.LimitReader(rand.Reader, 3*domain.ChallengeBits/8))
	_, err = starved.Enroll(id)
	require.Error(t, err)

	after, err := st.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, before.CRPs, after.CRPs, "failed enrollment must not replace CRPs")
	assert.Equal(t, before.Log, after.Log, "failed enrollment must not append log entries")
}

func TestEnroll_UnknownSession(t *testing.T) {
	st := store.NewMemoryStore()
	svc := enrollment.New(st, rand.Reader)

	_, err := svc.Enroll("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
