package poly

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
)

// FFT converts p from Monomial to Lagrange basis: Values[i] becomes p(ω^i).
// p.Size() must equal d.Size.
func FFT(p *Polynomial, d *Domain) (*Polynomial, error) {
	if p.Basis != Monomial {
		return nil, fmt.Errorf("%w: fft expects Monomial, got %s", plonkerr.ErrPolynomialBasisMismatch, p.Basis)
	}
	if uint64(p.Size()) != d.Size {
		return nil, fmt.Errorf("%w: polynomial size %d, domain size %d", plonkerr.ErrPolynomialSizeMismatch, p.Size(), d.Size)
	}
	values := make([]fr.Element, p.Size())
	copy(values, p.Values)
	ntt(values, d.Generator)
	return &Polynomial{Basis: Lagrange, Values: values}, nil
}

// IFFT converts p from Lagrange to Monomial basis: the unique degree-<n
// polynomial whose evaluations at ω^i match p.Values[i].
func IFFT(p *Polynomial, d *Domain) (*Polynomial, error) {
	if p.Basis != Lagrange {
		return nil, fmt.Errorf("%w: ifft expects Lagrange, got %s", plonkerr.ErrPolynomialBasisMismatch, p.Basis)
	}
	if uint64(p.Size()) != d.Size {
		return nil, fmt.Errorf("%w: polynomial size %d, domain size %d", plonkerr.ErrPolynomialSizeMismatch, p.Size(), d.Size)
	}
	values := make([]fr.Element, p.Size())
	copy(values, p.Values)
	ntt(values, d.GeneratorInv)
	for i := range values {
		values[i].Mul(&values[i], &d.SizeInv)
	}
	return &Polynomial{Basis: Monomial, Values: values}, nil
}

// ntt runs an in-place iterative radix-2 Cooley-Tukey NTT over a, using
// omega as the primitive len(a)-th root of unity. Forward (coeffs->evals)
// and inverse (evals->coeffs, up to the 1/n scaling IFFT applies after) are
// the same butterfly network with omega swapped for omega^-1.
func ntt(a []fr.Element, omega fr.Element) {
	n := len(a)
	bitReverse(a)

	for length := 2; length <= n; length <<= 1 {
		var wlen fr.Element
		wlen.Exp(omega, big.NewInt(int64(n/length)))
		half := length / 2
		for i := 0; i < n; i += length {
			var w fr.Element
			w.SetOne()
			for j := 0; j < half; j++ {
				var u, v fr.Element
				u.Set(&a[i+j])
				v.Mul(&a[i+j+half], &w)
				a[i+j].Add(&u, &v)
				a[i+j+half].Sub(&u, &v)
				w.Mul(&w, &wlen)
			}
		}
	}
}

// bitReverse permutes a into bit-reversed index order, a precondition for
// the iterative NTT above.
func bitReverse(a []fr.Element) {
	n := len(a)
	if n <= 1 {
		return
	}
	logN := bits.TrailingZeros(uint(n))
	for i := 0; i < n; i++ {
		j := int(bits.Reverse(uint(i)) >> (bits.UintSize - logN))
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
}
