// Package authentication replays stored CRPs against the simulated PUF.
package authentication

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"pufsim/internal/domain"
	"pufsim/internal/puf"
)

// Service performs the authentication phase.
//
// It picks one enrolled CRP uniformly at random, re-runs the evaluator
// on its challenge and compares against the stored response. Since the
// evaluator is a pure function of (challenge, seed, type), a mismatch
// can only mean an evaluator bug or a corrupted CRP; it is reported,
// never retried.
type Service struct {
	store domain.SessionStore
	rng   io.Reader
}

// New returns an authentication service picking CRP indices from rng.
func New(store domain.SessionStore, rng io.Reader) *Service {
	return &Service{store: store, rng: rng}
}

// Authenticate runs one challenge-response round. It fails InvalidState
// when the session has no enrolled CRPs.
func (s *Service) Authenticate(id string) (domain.AuthResult, error) {
	var result domain.AuthResult
	err := s.store.Update(id, func(sess *domain.Session) error {
		if len(sess.CRPs) == 0 {
			return fmt.Errorf("%w: no CRPs enrolled, run enrollment first", domain.ErrInvalidState)
		}

		idx, err := rand.Int(s.rng, big.NewInt(int64(len(sess.CRPs))))
		if err != nil {
			return fmt.Errorf("picking CRP: %w", err)
		}
		crp := sess.CRPs[idx.Int64()]

		deviceResponse := puf.Evaluate(crp.Challenge, sess.PUFSeed, sess.PUFType)
		success := deviceResponse == crp.Response

		sess.AppendLog("Authentication: CRP %d challenged (challenge=%s)", idx.Int64()+1, crp.Challenge.Preview(8))
		if success {
			sess.AppendLog("Authentication succeeded: response %d matches stored response", deviceResponse)
		} else {
			sess.AppendLog("Authentication FAILED: device response %d, expected %d", deviceResponse, crp.Response)
		}

		result = domain.AuthResult{
			Success:          success,
			ChallengePreview: crp.Challenge.Preview(8),
			DeviceResponse:   deviceResponse,
			ExpectedResponse: crp.Response,
			Log:              sess.LogSnapshot(),
		}
		return nil
	})
	if err != nil {
		return domain.AuthResult{}, err
	}
	return result, nil
}

// Compile-time assertion that Service implements domain.AuthenticationService.
var _ domain.AuthenticationService = (*Service)(nil)
