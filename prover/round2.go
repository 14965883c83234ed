package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

// round2 builds the permutation grand-product accumulator Z from A, B, C
// and pk.S1/S2/S3, checks it wraps back around to 1, and commits. Returns
// [Z]_1.
func (p *Prover) round2() (z1 bn254.G1Affine, err error) {
	n := int(p.domain.Size)
	roots := p.domain.RootsOfUnity()
	pk := p.pk

	var k1, k2 fr.Element
	k1.SetUint64(circuit.K1)
	k2.SetUint64(circuit.K2)

	zValues := make([]fr.Element, n+1)
	zValues[0].SetOne()
	for i := 1; i <= n; i++ {
		idx := i - 1

		var w1, w2 fr.Element
		w1.Mul(&k1, &roots[idx])
		w2.Mul(&k2, &roots[idx])

		numer := rlc(p.a.Values[idx], roots[idx], p.beta, p.gamma)
		t := rlc(p.b.Values[idx], w1, p.beta, p.gamma)
		numer.Mul(&numer, &t)
		t = rlc(p.c.Values[idx], w2, p.beta, p.gamma)
		numer.Mul(&numer, &t)

		denom := rlc(p.a.Values[idx], pk.S1.Values[idx], p.beta, p.gamma)
		t = rlc(p.b.Values[idx], pk.S2.Values[idx], p.beta, p.gamma)
		denom.Mul(&denom, &t)
		t = rlc(p.c.Values[idx], pk.S3.Values[idx], p.beta, p.gamma)
		denom.Mul(&denom, &t)

		var denomInv fr.Element
		denomInv.Inverse(&denom)

		zValues[i].Mul(&zValues[idx], &numer)
		zValues[i].Mul(&zValues[i], &denomInv)
	}

	var one fr.Element
	one.SetOne()
	if !zValues[n].Equal(&one) {
		return bn254.G1Affine{}, plonkerr.ErrPermutationProductDidNotClose
	}

	p.z = &poly.Polynomial{Basis: poly.Lagrange, Values: zValues[:n]}

	return p.setup.CommitLagrange(p.z, p.domain)
}
