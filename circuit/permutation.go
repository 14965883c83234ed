package circuit

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

// K1 and K2 are the coset separators used both here (to build the
// permutation's support) and in the prover's round 2/3 grand-product
// construction. H, K1*H and K2*H (H the group-order-n roots of unity) must
// be pairwise disjoint for the permutation argument to be sound; 2 and 3
// are the standard choice.
const (
	K1 = 2
	K2 = 3
)

// BuildPermutationPolynomials builds S1, S2, S3 (Lagrange basis, size
// domain.Size) from a Program's wire topology: wires sharing a label are
// tied into one cycle of the permutation so the grand-product argument
// can assert they all carry the same witness value. Gates beyond
// len(program.Wires()) and the Unused label are left as self-loops
// (identity), matching how an all-zero padding row never needs aliasing.
//
// Grounded on the same max-length-cycle construction gnark's PLONK
// backend uses to turn a sparse R1CS wiring into S1/S2/S3, generalized
// from numeric variable IDs to WireLabel.
func BuildPermutationPolynomials(program Program, domain *poly.Domain) (s1, s2, s3 *poly.Polynomial, err error) {
	n := int(domain.Size)
	wires := program.Wires()
	if len(wires) > n {
		return nil, nil, nil, fmt.Errorf("%w: %d gates exceed group order %d", plonkerr.ErrInvalidGroupOrder, len(wires), n)
	}

	lro := make([]WireLabel, 3*n)
	for i, w := range wires {
		lro[i] = w.L
		lro[n+i] = w.R
		lro[2*n+i] = w.O
	}
	for i := len(wires); i < n; i++ {
		lro[i], lro[n+i], lro[2*n+i] = Unused, Unused, Unused
	}

	lastPos := make(map[WireLabel]int64, 3*n)
	permutation := make([]int64, 3*n)
	for i := range permutation {
		permutation[i] = -1
	}

	for i, label := range lro {
		if label == Unused {
			permutation[i] = int64(i)
			continue
		}
		if prev, ok := lastPos[label]; ok {
			permutation[i] = prev
		}
		lastPos[label] = int64(i)
	}
	// Close each cycle: the first occurrence of a label still points
	// nowhere (-1); send it to the label's last occurrence.
	for i, label := range lro {
		if permutation[i] == -1 {
			permutation[i] = lastPos[label]
		}
	}

	support := permutationSupport(domain, n)

	build := func(offset int) *poly.Polynomial {
		out := poly.Zero(poly.Lagrange, n)
		for i := 0; i < n; i++ {
			out.Values[i] = support[permutation[offset+i]]
		}
		return out
	}
	s1 = build(0)
	s2 = build(n)
	s3 = build(2 * n)

	return s1, s2, s3, nil
}

// permutationSupport returns the support the permutation acts on:
// <omega> || k1*<omega> || k2*<omega>, the roots of unity and their two
// coset shifts, concatenated.
func permutationSupport(domain *poly.Domain, n int) []fr.Element {
	roots := domain.RootsOfUnity()
	support := make([]fr.Element, 3*n)
	var k1, k2 fr.Element
	k1.SetUint64(K1)
	k2.SetUint64(K2)
	for i := 0; i < n; i++ {
		support[i] = roots[i]
		support[n+i].Mul(&roots[i], &k1)
		support[2*n+i].Mul(&roots[i], &k2)
	}
	return support
}
