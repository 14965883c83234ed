package poly

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
)

// ToCosetExtendedLagrange lifts a size-n Lagrange polynomial p to a size-4n
// CosetExtendedLagrange polynomial whose i-th value is p(shift·μ^i), μ a
// primitive 4n-th root of unity. domain is p's (size-n) evaluation domain;
// extended is the size-4n domain (domain.ExtendedDomain()).
//
// Moving off the roots-of-unity subgroup by shift is what makes pointwise
// division by the vanishing polynomial Z_H(X)=X^n-1 well-defined: since
// μ^(in) is a fourth root of unity, Z_H is never zero on the coset as long
// as shift^n isn't a fourth root of unity (shift isn't a 4n-th root of
// unity), which holds with overwhelming probability for a Fiat-Shamir
// challenge.
func ToCosetExtendedLagrange(p *Polynomial, shift fr.Element, domain, extended *Domain) (*Polynomial, error) {
	if p.Basis != Lagrange {
		return nil, fmt.Errorf("%w: coset extension expects Lagrange, got %s", plonkerr.ErrPolynomialBasisMismatch, p.Basis)
	}
	if uint64(p.Size()) != domain.Size {
		return nil, fmt.Errorf("%w: polynomial size %d, domain size %d", plonkerr.ErrPolynomialSizeMismatch, p.Size(), domain.Size)
	}

	m, err := IFFT(p, domain)
	if err != nil {
		return nil, err
	}

	padded := make([]fr.Element, extended.Size)
	copy(padded, m.Values)
	scaleByPowers(padded, shift)

	out, err := FFT(&Polynomial{Basis: Monomial, Values: padded}, extended)
	if err != nil {
		return nil, err
	}
	out.Basis = CosetExtendedLagrange
	return out, nil
}

// CosetExtendedLagrangeToCoeffs is the inverse of ToCosetExtendedLagrange: it
// recovers the size-4n monomial coefficients of the unique degree-<4n
// polynomial whose values on the shift-coset match q.
func CosetExtendedLagrangeToCoeffs(q *Polynomial, shift fr.Element, extended *Domain) (*Polynomial, error) {
	if q.Basis != CosetExtendedLagrange {
		return nil, fmt.Errorf("%w: expects CosetExtendedLagrange, got %s", plonkerr.ErrPolynomialBasisMismatch, q.Basis)
	}
	if uint64(q.Size()) != extended.Size {
		return nil, fmt.Errorf("%w: polynomial size %d, domain size %d", plonkerr.ErrPolynomialSizeMismatch, q.Size(), extended.Size)
	}

	lag := &Polynomial{Basis: Lagrange, Values: q.Values}
	d, err := IFFT(lag, extended)
	if err != nil {
		return nil, err
	}

	var shiftInv fr.Element
	shiftInv.Inverse(&shift)
	scaleByPowers(d.Values, shiftInv)
	d.Basis = Monomial
	return d, nil
}

// scaleByPowers multiplies values[j] by base^j in place.
func scaleByPowers(values []fr.Element, base fr.Element) {
	var acc fr.Element
	acc.SetOne()
	for j := range values {
		values[j].Mul(&values[j], &acc)
		acc.Mul(&acc, &base)
	}
}
