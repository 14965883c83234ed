package poly

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
)

// twoAdicity is the largest s such that 2^s divides r-1, for BN254's scalar
// field Fr. The field has a subgroup of roots of unity of every order
// 2^0 .. 2^28.
const twoAdicity = 28

// frGenerator is a generator of the full multiplicative group Fr*, the
// conventional choice (5) used across the BN254 SNARK tooling ecosystem
// (snarkjs, circom, gnark-crypto) to derive every 2^k-th root of unity.
var frGenerator = big.NewInt(5)

// Domain holds the roots-of-unity bookkeeping the polynomial engine needs:
// the primitive n-th root ω, its inverse, and 1/n, all precomputed once so
// FFTs and shifts don't redo modular exponentiation per call.
type Domain struct {
	Size         uint64
	Generator    fr.Element // ω, primitive Size-th root of unity
	GeneratorInv fr.Element // ω^-1
	SizeInv      fr.Element // 1/Size
}

// NewDomain builds the evaluation domain of the given size, which must be a
// power of two no greater than 2^28.
func NewDomain(size uint64) (*Domain, error) {
	if size == 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: size %d is not a power of two", plonkerr.ErrInvalidGroupOrder, size)
	}
	logSize := bits.TrailingZeros64(size)
	if logSize > twoAdicity {
		return nil, fmt.Errorf("%w: size %d exceeds 2^%d", plonkerr.ErrInvalidGroupOrder, size, twoAdicity)
	}

	r := fr.Modulus()
	exponent := new(big.Int).Sub(r, big.NewInt(1))
	exponent.Div(exponent, new(big.Int).Lsh(big.NewInt(1), uint(logSize)))

	var g, gen fr.Element
	g.SetBigInt(frGenerator)
	gen.Exp(g, exponent)

	var genInv, sizeInv fr.Element
	genInv.Inverse(&gen)
	sizeInv.SetUint64(size).Inverse(&sizeInv)

	return &Domain{
		Size:         size,
		Generator:    gen,
		GeneratorInv: genInv,
		SizeInv:      sizeInv,
	}, nil
}

// RootsOfUnity returns [ω^0, ω^1, ..., ω^(Size-1)].
func (d *Domain) RootsOfUnity() []fr.Element {
	roots := make([]fr.Element, d.Size)
	roots[0].SetOne()
	for i := uint64(1); i < d.Size; i++ {
		roots[i].Mul(&roots[i-1], &d.Generator)
	}
	return roots
}

// ExtendedDomain returns the 4n-sized domain used for coset-extended
// Lagrange arithmetic (n = d.Size).
func (d *Domain) ExtendedDomain() (*Domain, error) {
	return NewDomain(4 * d.Size)
}
