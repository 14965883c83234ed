package kzg

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

// CommitPolynomial commits to a polynomial in Monomial basis. Lagrange or
// CosetExtendedLagrange polynomials must be converted to Monomial (via
// poly.IFFT / poly.CosetExtendedLagrangeToCoeffs) before calling this; the
// prover never commits directly to an evaluation-basis polynomial.
func (s *Setup) CommitPolynomial(p *poly.Polynomial) (bn254.G1Affine, error) {
	if p.Basis != poly.Monomial {
		return bn254.G1Affine{}, fmt.Errorf("%w: commit expects Monomial, got %s", plonkerr.ErrPolynomialBasisMismatch, p.Basis)
	}
	return s.Commit(p.Values)
}

// CommitLagrange commits to a Lagrange-basis polynomial by first converting
// it to Monomial via an inverse FFT over domain. This is the prover's most
// common commitment path: every polynomial it builds (wire assignments,
// selectors, the permutation accumulator) starts out in Lagrange basis.
func (s *Setup) CommitLagrange(p *poly.Polynomial, domain *poly.Domain) (bn254.G1Affine, error) {
	m, err := poly.IFFT(p, domain)
	if err != nil {
		return bn254.G1Affine{}, err
	}
	return s.CommitPolynomial(m)
}
