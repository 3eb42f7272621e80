// Package crypto exposes the symmetric primitives used by pufsim.
//
// Contents
//
//   - AES-256-GCM sealing/opening with hex transport encoding (Encrypt,
//     Decrypt), used by the provisioning and operation phases
//   - A passphrase envelope (scrypt + ChaCha20-Poly1305) for exporting
//     provisioned credentials to disk (SealEnvelope, OpenEnvelope)
//
// Tag verification failures surface as domain.ErrAuthentication and are
// never ignored.
package crypto
