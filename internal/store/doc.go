// Package store provides session and credential persistence for pufsim.
//
// Session state is deliberately ephemeral: MemoryStore keeps the
// process-wide session map in memory and everything is lost on exit.
// The store exclusively owns session state; readers get deep-copy
// snapshots and all mutation runs under a per-session lock, so
// concurrent phase operations against the same id cannot race.
//
// CredentialFileStore is the one on-disk piece: it writes provisioned
// credential snapshots as passphrase-encrypted envelopes.
package store
