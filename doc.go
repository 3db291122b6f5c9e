// Package statevector implements the core of a dense state-vector simulator
// for quantum circuits: an amplitude buffer of length 2^N and the kernels
// that apply unitary gates to it, compute measurement probabilities, sample
// measurement outcomes, and evaluate expectation values.
//
// The package is a library boundary only. Circuit parsing, simulator
// drivers, gate libraries, noise channels, and classical-register handling
// are external collaborators; nothing here parses a circuit description or
// runs a CLI.
package statevector
