// Package backend holds the prover's runtime configuration: the knobs that
// are not part of the protocol itself (circuit, setup, witness) but change
// how Prove behaves. The shape follows gnark's own backend.ProverConfig /
// backend.ProverOption pattern.
package backend

import (
	"hash"

	"golang.org/x/crypto/sha3"
)

// ProverConfig gathers the options Prove accepts. NewProverConfig with no
// options gives the production default: no forcing, Keccak-256 transcript
// hash. The zero value has a nil HashFactory and is not usable as is.
type ProverConfig struct {
	// Force makes round 1 skip checkGateSatisfaction and continue past an
	// unsatisfied witness instead of returning
	// ErrWitnessDoesNotSatisfyCircuit. Only the round 1 check is skipped:
	// for an unsatisfied witness the quotient degree check in round 3 still
	// fails with ErrQuotientDegreeOverflow, so Prove returns no proof.
	Force bool

	// HashFactory builds the hash.Hash instance seeding the Fiat-Shamir
	// transcript. Defaults to Keccak-256 (golang.org/x/crypto/sha3).
	HashFactory func() hash.Hash
}

// ProverOption mutates a ProverConfig.
type ProverOption func(*ProverConfig) error

// NewProverConfig applies opts over the default configuration.
func NewProverConfig(opts ...ProverOption) (ProverConfig, error) {
	cfg := ProverConfig{
		HashFactory: sha3.NewLegacyKeccak256,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return ProverConfig{}, err
		}
	}
	return cfg, nil
}

// WithForce enables ProverConfig.Force.
func WithForce() ProverOption {
	return func(cfg *ProverConfig) error {
		cfg.Force = true
		return nil
	}
}

// WithHashFactory overrides the transcript's hash function. The verifier
// must be configured with the same one.
func WithHashFactory(f func() hash.Hash) ProverOption {
	return func(cfg *ProverConfig) error {
		cfg.HashFactory = f
		return nil
	}
}
