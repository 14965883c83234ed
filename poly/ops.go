package poly

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
)

// Add returns p+q pointwise. p and q must share basis and size.
func Add(p, q *Polynomial) (*Polynomial, error) {
	if err := requireSameShape(p, q); err != nil {
		return nil, err
	}
	out := Zero(p.Basis, p.Size())
	for i := range out.Values {
		out.Values[i].Add(&p.Values[i], &q.Values[i])
	}
	return out, nil
}

// Sub returns p-q pointwise.
func Sub(p, q *Polynomial) (*Polynomial, error) {
	if err := requireSameShape(p, q); err != nil {
		return nil, err
	}
	out := Zero(p.Basis, p.Size())
	for i := range out.Values {
		out.Values[i].Sub(&p.Values[i], &q.Values[i])
	}
	return out, nil
}

// Mul returns p*q pointwise.
func Mul(p, q *Polynomial) (*Polynomial, error) {
	if err := requireSameShape(p, q); err != nil {
		return nil, err
	}
	out := Zero(p.Basis, p.Size())
	for i := range out.Values {
		out.Values[i].Mul(&p.Values[i], &q.Values[i])
	}
	return out, nil
}

// Div returns p/q pointwise. Every evaluation of q must be non-zero;
// otherwise ErrDivisionByZeroOnCoset is returned (the caller's ζ or ζ_cos
// choice was degenerate, vanishingly unlikely for honestly sampled
// challenges).
func Div(p, q *Polynomial) (*Polynomial, error) {
	if err := requireSameShape(p, q); err != nil {
		return nil, err
	}
	out := Zero(p.Basis, p.Size())
	var inv fr.Element
	for i := range out.Values {
		if q.Values[i].IsZero() {
			return nil, fmt.Errorf("%w: index %d", plonkerr.ErrDivisionByZeroOnCoset, i)
		}
		inv.Inverse(&q.Values[i])
		out.Values[i].Mul(&p.Values[i], &inv)
	}
	return out, nil
}

// AddScalar returns p+c, c broadcast to every entry.
func AddScalar(p *Polynomial, c fr.Element) *Polynomial {
	out := p.Clone()
	for i := range out.Values {
		out.Values[i].Add(&out.Values[i], &c)
	}
	return out
}

// SubScalar returns p-c.
func SubScalar(p *Polynomial, c fr.Element) *Polynomial {
	out := p.Clone()
	for i := range out.Values {
		out.Values[i].Sub(&out.Values[i], &c)
	}
	return out
}

// MulScalar returns c*p.
func MulScalar(p *Polynomial, c fr.Element) *Polynomial {
	out := p.Clone()
	for i := range out.Values {
		out.Values[i].Mul(&out.Values[i], &c)
	}
	return out
}

// Shift returns the Lagrange-basis polynomial representing p(ω^k·X):
// values_new[i] = values[(i+k) mod n].
func Shift(p *Polynomial, k int) (*Polynomial, error) {
	if p.Basis != Lagrange {
		return nil, fmt.Errorf("%w: shift expects Lagrange, got %s", plonkerr.ErrPolynomialBasisMismatch, p.Basis)
	}
	n := p.Size()
	out := Zero(Lagrange, n)
	for i := 0; i < n; i++ {
		out.Values[i] = p.Values[(i+k)%n]
	}
	return out, nil
}

// BarycentricEval evaluates a Lagrange-basis polynomial at an arbitrary
// field point z in O(n) field operations using the standard barycentric
// formula over the roots of unity of domain:
//
//	p(z) = (z^n - 1)/n * Σ_i values[i]·ω^i / (z - ω^i)
//
// When z coincides with a root of unity ω^j, the formula above divides by
// zero; BarycentricEval special-cases that and returns values[j] directly.
func BarycentricEval(p *Polynomial, z fr.Element, domain *Domain) (fr.Element, error) {
	if p.Basis != Lagrange {
		var zero fr.Element
		return zero, fmt.Errorf("%w: barycentric_eval expects Lagrange, got %s", plonkerr.ErrPolynomialBasisMismatch, p.Basis)
	}
	n := uint64(p.Size())
	if n != domain.Size {
		var zero fr.Element
		return zero, fmt.Errorf("%w: polynomial size %d, domain size %d", plonkerr.ErrPolynomialSizeMismatch, p.Size(), domain.Size)
	}

	var omegaI fr.Element
	omegaI.SetOne()
	for i := uint64(0); i < n; i++ {
		if z.Equal(&omegaI) {
			return p.Values[i], nil
		}
		omegaI.Mul(&omegaI, &domain.Generator)
	}

	// z^n - 1
	var zPowN fr.Element
	zPowN.Exp(z, new(big.Int).SetUint64(n))
	var one, zHAtZ fr.Element
	one.SetOne()
	zHAtZ.Sub(&zPowN, &one)

	var scale fr.Element
	scale.Mul(&zHAtZ, &domain.SizeInv)

	var sum fr.Element
	var term, denom, diff fr.Element
	omegaI.SetOne()
	for i := uint64(0); i < n; i++ {
		diff.Sub(&z, &omegaI)
		denom.Inverse(&diff)
		term.Mul(&p.Values[i], &omegaI)
		term.Mul(&term, &denom)
		sum.Add(&sum, &term)
		omegaI.Mul(&omegaI, &domain.Generator)
	}
	sum.Mul(&sum, &scale)
	return sum, nil
}
