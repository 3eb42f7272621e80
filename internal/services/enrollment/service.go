// Package enrollment fills a session's CRP store from the simulated PUF.
package enrollment

import (
	"fmt"
	"io"

	"pufsim/internal/domain"
	"pufsim/internal/puf"
)

// previewEntries is how many leading CRPs get a full log preview; the
// rest are summarized so the log stays bounded for large enrollments.
const previewEntries = 3

// Service performs the enrollment phase.
//
// Each call fully replaces the session's CRP set: it clears any prior
// pairs, then draws NumCRPs fresh random challenges and records each
// with its evaluator response.
type Service struct {
	store domain.SessionStore
	rng   io.Reader
}

// New returns an enrollment service drawing challenges from rng.
func New(store domain.SessionStore, rng io.Reader) *Service {
	return &Service{store: store, rng: rng}
}

// Enroll runs one enrollment pass and returns the CRP count with the
// session's log snapshot.
func (s *Service) Enroll(id string) (domain.EnrollResult, error) {
	var result domain.EnrollResult
	err := s.store.Update(id, func(sess *domain.Session) error {
		// Generate the full replacement set before touching the session,
		// so a failed pass leaves CRPs and log exactly as they were.
		crps := make([]domain.CRP, 0, sess.NumCRPs)
		lines := make([]string, 0, previewEntries+2)
		for i := 0; i < sess.NumCRPs; i++ {
			challenge, err := puf.NewChallenge(s.rng, domain.ChallengeBits)
			if err != nil {
				return err
			}
			response := puf.Evaluate(challenge, sess.PUFSeed, sess.PUFType)
			crps = append(crps, domain.CRP{Challenge: challenge, Response: response})

			switch {
			case i < previewEntries || i == sess.NumCRPs-1:
				lines = append(lines, fmt.Sprintf("CRP %d/%d: challenge=%s response=%d",
					i+1, sess.NumCRPs, challenge.Preview(16), response))
			case i == previewEntries:
				lines = append(lines, fmt.Sprintf("... enrolling CRPs %d-%d ...", previewEntries+1, sess.NumCRPs-1))
			}
		}

		sess.CRPs = crps
		sess.AppendLog("Enrollment started: generating %d CRPs", sess.NumCRPs)
		for _, line := range lines {
			sess.AppendLog("%s", line)
		}
		sess.AppendLog("Enrollment complete: %d CRPs stored", len(sess.CRPs))
		result = domain.EnrollResult{
			CRPCount: len(sess.CRPs),
			Log:      sess.LogSnapshot(),
		}
		return nil
	})
	if err != nil {
		return domain.EnrollResult{}, err
	}
	return result, nil
}

// Compile-time assertion that Service implements domain.EnrollmentService.
var _ domain.EnrollmentService = (*Service)(nil)
