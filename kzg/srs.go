// Package kzg implements the KZG polynomial commitment scheme over BN254:
// committing to a polynomial via a multiscalar multiplication against the
// trusted setup, and the supporting setup-file loader. The prover treats
// Setup and Commit as its only two external collaborators (see the poly
// package for everything internal to the polynomial engine).
package kzg

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
)

// Setup holds the result of the (out of scope) trusted setup ceremony:
// powers_of_x in G1 and the single G2 point needed for pairing checks.
type Setup struct {
	// PowersOfX = ([1]_1, [x]_1, ..., [x^(d-1)]_1).
	PowersOfX []bn254.G1Affine
	// X2 = [x]_2.
	X2 bn254.G2Affine
}

// Size returns d, the number of available powers of x in G1 (the largest
// polynomial degree+1 this Setup can commit to).
func (s *Setup) Size() int {
	return len(s.PowersOfX)
}

// Commit commits to a polynomial given in monomial basis via a G1
// multiscalar multiplication against the setup's powers of x. len(values)
// must be at least 1 and must not exceed s.Size(); otherwise
// ErrSetupTooSmall is returned.
func (s *Setup) Commit(values []fr.Element) (bn254.G1Affine, error) {
	if len(values) == 0 || len(values) > s.Size() {
		return bn254.G1Affine{}, fmt.Errorf("%w: polynomial size %d, srs size %d", plonkerr.ErrSetupTooSmall, len(values), s.Size())
	}

	var commitment bn254.G1Affine
	if _, err := commitment.MultiExp(s.PowersOfX[:len(values)], values, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, fmt.Errorf("kzg: multiexp failed: %w", err)
	}
	return commitment, nil
}
