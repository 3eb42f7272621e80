// Package app wires application dependencies for the CLI and server.
//
// It builds the concrete store and phase services from Config, exposing
// them via the Wire struct so collaborators drive the protocol through
// one dependency graph.
package app
