// Package dhx implements the Diffie-Hellman key exchange between the
// two simulated parties.
//
// Both parties share fixed domain parameters: the 2048-bit MODP group
// from RFC 3526 (group 14) with generator 2. Each side generates an
// ephemeral key pair, computes the shared secret from its own private
// key and the peer's public key, and the session key is the SHA-256
// digest of that secret.
package dhx
