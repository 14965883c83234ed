// Package poly implements the dual Lagrange/monomial polynomial
// representation the prover operates on: plain Lagrange-basis evaluations on
// the roots of unity, monomial coefficients, and the 4x coset-extended
// Lagrange basis used to make division by the vanishing polynomial
// well-defined. Scalar arithmetic is delegated entirely to
// github.com/consensys/gnark-crypto/ecc/bn254/fr; this package owns only the
// basis bookkeeping, FFTs, and pointwise operators.
package poly

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
)

// Basis tags which representation a Polynomial's Values are in.
type Basis int

const (
	// Lagrange: Values[i] is the evaluation at ω^i, ω a primitive n-th
	// root of unity, n = len(Values).
	Lagrange Basis = iota
	// Monomial: Values[i] is the coefficient of x^i.
	Monomial
	// CosetExtendedLagrange: Values[i] is the evaluation at ζ_cos·μ^i, μ a
	// primitive 4n-th root of unity, n the size of the domain the
	// polynomial was extended from (so len(Values) == 4n).
	CosetExtendedLagrange
)

func (b Basis) String() string {
	switch b {
	case Lagrange:
		return "Lagrange"
	case Monomial:
		return "Monomial"
	case CosetExtendedLagrange:
		return "CosetExtendedLagrange"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// Polynomial is a fixed-size, fixed-basis sequence of scalars. Its size never
// changes over its lifetime; arithmetic requires operands to share both
// basis and size.
type Polynomial struct {
	Basis  Basis
	Values []fr.Element
}

// New builds a Polynomial from values, copying the slice so later mutation
// of the caller's slice can't alias prover state.
func New(basis Basis, values []fr.Element) *Polynomial {
	v := make([]fr.Element, len(values))
	copy(v, values)
	return &Polynomial{Basis: basis, Values: v}
}

// Zero returns the size-n zero polynomial in the given basis.
func Zero(basis Basis, n int) *Polynomial {
	return &Polynomial{Basis: basis, Values: make([]fr.Element, n)}
}

// Size returns the number of scalars backing p.
func (p *Polynomial) Size() int {
	return len(p.Values)
}

// Clone returns a deep copy of p.
func (p *Polynomial) Clone() *Polynomial {
	v := make([]fr.Element, len(p.Values))
	copy(v, p.Values)
	return &Polynomial{Basis: p.Basis, Values: v}
}

// Equal reports whether p and q have identical basis, size and values.
func (p *Polynomial) Equal(q *Polynomial) bool {
	if p.Basis != q.Basis || len(p.Values) != len(q.Values) {
		return false
	}
	for i := range p.Values {
		if !p.Values[i].Equal(&q.Values[i]) {
			return false
		}
	}
	return true
}

// IsZero reports whether every coefficient/evaluation of p is zero.
func (p *Polynomial) IsZero() bool {
	for i := range p.Values {
		if !p.Values[i].IsZero() {
			return false
		}
	}
	return true
}

func requireSameShape(a, b *Polynomial) error {
	if a.Basis != b.Basis {
		return fmt.Errorf("%w: %s vs %s", plonkerr.ErrPolynomialBasisMismatch, a.Basis, b.Basis)
	}
	if len(a.Values) != len(b.Values) {
		return fmt.Errorf("%w: %d vs %d", plonkerr.ErrPolynomialSizeMismatch, len(a.Values), len(b.Values))
	}
	return nil
}
