// Package puf simulates a Physical Unclonable Function.
//
// A real PUF derives a device-unique response bit from silicon process
// variation. The simulator replaces that with a deterministic hash of
// (seed, puf type, challenge): the same inputs always yield the same
// bit, across processes and reruns, which is what the rest of the
// protocol relies on. There is no noise or fuzzy-extraction modeling.
package puf
