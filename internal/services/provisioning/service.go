// Package provisioning performs the encrypted provisioning and
// operational phases over the derived session key.
package provisioning

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"pufsim/internal/crypto"
	"pufsim/internal/domain"
)

// credentialLifetime is how long a synthetic certificate claims to be valid.
const credentialLifetime = 365 * 24 * time.Hour

// Service performs credential provisioning and the operational exchange.
//
// Provisioning encrypts a synthetic credential payload server-side,
// decrypts it device-side and stores the decrypted snapshot on the
// session. Operation runs two further AEAD round trips: a
// server-to-device message and the device's acknowledgement carrying a
// synthetic uptime.
type Service struct {
	store domain.SessionStore
	rng   io.Reader
}

// New returns a provisioning service drawing IVs and synthetic values
// from rng.
func New(store domain.SessionStore, rng io.Reader) *Service {
	return &Service{store: store, rng: rng}
}

// Provision runs one credential round trip. It fails InvalidState
// without a session key.
func (s *Service) Provision(id string) (domain.ProvisionResult, error) {
	var result domain.ProvisionResult
	err := s.store.Update(id, func(sess *domain.Session) error {
		if len(sess.SessionKey) == 0 {
			return fmt.Errorf("%w: no session key, run key exchange first", domain.ErrInvalidState)
		}

		creds, err := s.newCredentials(sess.DeviceID)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(creds)
		if err != nil {
			return err
		}

		sess.AppendLog("Provisioning: server encrypting credential payload (%d bytes)", len(payload))
		sealed, err := crypto.Encrypt(s.rng, sess.SessionKey, payload)
		if err != nil {
			return fmt.Errorf("encrypting credentials: %w", err)
		}
		sess.AppendLog("Provisioning: ciphertext=%s... iv=%s", sealed.Ciphertext[:16], sealed.IV)

		plaintext, err := crypto.Decrypt(sess.SessionKey, sealed)
		if err != nil {
			return fmt.Errorf("device decrypting credentials: %w", err)
		}
		var recovered domain.Credentials
		if err := json.Unmarshal(plaintext, &recovered); err != nil {
			return fmt.Errorf("decoding credentials: %w", err)
		}

		sess.Credentials = &recovered
		sess.Provisioned = true
		sess.AppendLog("Provisioning complete: device holds certificate and token %s...", recovered.Token[:8])

		result = domain.ProvisionResult{
			Provisioned:        true,
			CredentialsPreview: fmt.Sprintf("token=%s... cert=%d bytes", recovered.Token[:8], len(recovered.Certificate)),
			Log:                sess.LogSnapshot(),
		}
		return nil
	})
	if err != nil {
		return domain.ProvisionResult{}, err
	}
	return result, nil
}

// Operate runs the two operational round trips. It fails InvalidState
// unless the session holds a key and has been provisioned.
func (s *Service) Operate(id string) (domain.OperateResult, error) {
	var result domain.OperateResult
	err := s.store.Update(id, func(sess *domain.Session) error {
		if len(sess.SessionKey) == 0 {
			return fmt.Errorf("%w: no session key, run key exchange first", domain.ErrInvalidState)
		}
		if !sess.Provisioned {
			return fmt.Errorf("%w: not provisioned, run provisioning first", domain.ErrInvalidState)
		}

		serverMsg := fmt.Sprintf("server->device: status report requested for %s", sess.DeviceID)
		recoveredServerMsg, err := s.roundTrip(sess, "server message", serverMsg)
		if err != nil {
			return err
		}

		uptime, err := s.syntheticUptime()
		if err != nil {
			return err
		}
		deviceMsg := fmt.Sprintf("device->server: ack from %s, uptime=%ds", sess.DeviceID, uptime)
		recoveredDeviceMsg, err := s.roundTrip(sess, "device acknowledgement", deviceMsg)
		if err != nil {
			return err
		}

		sess.AppendLog("Operation complete: both messages authenticated and recovered")
		result = domain.OperateResult{
			ServerMessage: recoveredServerMsg,
			DeviceMessage: recoveredDeviceMsg,
			Log:           sess.LogSnapshot(),
		}
		return nil
	})
	if err != nil {
		return domain.OperateResult{}, err
	}
	return result, nil
}

// Credentials returns the provisioned credential snapshot. It fails
// InvalidState before a successful provisioning pass.
func (s *Service) Credentials(id string) (domain.Credentials, error) {
	sess, err := s.store.Snapshot(id)
	if err != nil {
		return domain.Credentials{}, err
	}
	if sess.Credentials == nil {
		return domain.Credentials{}, fmt.Errorf("%w: not provisioned", domain.ErrInvalidState)
	}
	return *sess.Credentials, nil
}

// roundTrip encrypts and immediately decrypts one message under the
// session key, logging the ciphertext preview.
func (s *Service) roundTrip(sess *domain.Session, label, plaintext string) (string, error) {
	sealed, err := crypto.Encrypt(s.rng, sess.SessionKey, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("encrypting %s: %w", label, err)
	}
	sess.AppendLog("Operation: %s encrypted (ciphertext=%s...)", label, sealed.Ciphertext[:16])
	recovered, err := crypto.Decrypt(sess.SessionKey, sealed)
	if err != nil {
		return "", fmt.Errorf("decrypting %s: %w", label, err)
	}
	sess.AppendLog("Operation: %s decrypted and verified", label)
	return string(recovered), nil
}

// newCredentials builds the synthetic certificate and token payload.
func (s *Service) newCredentials(deviceID string) (domain.Credentials, error) {
	serial := uuid.New()
	token := uuid.New()

	now := time.Now().UTC()
	certBody := fmt.Sprintf("subject=CN=%s\nissuer=CN=pufsim-ca\nserial=%s\nnot-after=%s",
		deviceID, serial, now.Add(credentialLifetime).Format(time.RFC3339))
	cert := "-----BEGIN CERTIFICATE-----\n" +
		base64.StdEncoding.EncodeToString([]byte(certBody)) +
		"\n-----END CERTIFICATE-----"

	return domain.Credentials{
		DeviceID:    deviceID,
		Certificate: cert,
		Token:       token.String(),
		IssuedAt:    now.Format(time.RFC3339),
		ExpiresAt:   now.Add(credentialLifetime).Format(time.RFC3339),
	}, nil
}

// syntheticUptime draws a random uptime between 0 and ~30 days.
func (s *Service) syntheticUptime() (uint32, error) {
	var raw [4]byte
	if _, err := io.ReadFull(s.rng, raw[:]); err != nil {
		return 0, fmt.Errorf("generating uptime: %w", err)
	}
	const maxUptime = 30 * 24 * 60 * 60
	return binary.BigEndian.Uint32(raw[:]) % maxUptime, nil
}

// Compile-time assertion that Service implements domain.ProvisioningService.
var _ domain.ProvisioningService = (*Service)(nil)
