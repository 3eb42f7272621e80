// Package commands defines the pufsim CLI and wires dependencies for subcommands.
//
// Commands
//
//   - create        Create a session on a pufsimd instance
//   - enroll        Fill the session's CRP store from the simulated PUF
//   - auth          Run one challenge-response authentication round
//   - exchange      Run the Diffie-Hellman exchange and derive the session key
//   - provision     Deliver encrypted credentials to the device
//   - operate       Run the encrypted operational exchange
//   - reset         Clear a session's protocol progress
//   - delete        Remove a session
//   - status        Show session summaries
//   - run           Drive the whole protocol in-process, end to end
//   - export-creds  Write a session's provisioned credentials to an encrypted file
//   - import-creds  Decrypt an exported credential file
//
// # Implementation
//
// Phase commands talk to a running pufsimd over HTTP, since session
// state lives only inside that process. run builds the full dependency
// graph locally instead and can export the provisioned credentials to
// an encrypted file.
package commands
