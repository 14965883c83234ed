package prover

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/sync/errgroup"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

// round1 builds the wire assignment polynomials A, B, C from witness,
// checks the witness actually satisfies the gate equation, and commits to
// all three. Returns their commitments [A]_1, [B]_1, [C]_1.
func (p *Prover) round1(witness circuit.Witness) (a1, b1, c1 bn254.G1Affine, err error) {
	n := int(p.domain.Size)
	wires := p.program.Wires()
	if len(wires) > n {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, fmt.Errorf("%w: %d gates exceed group order %d", plonkerr.ErrInvalidGroupOrder, len(wires), n)
	}

	a := poly.Zero(poly.Lagrange, n)
	b := poly.Zero(poly.Lagrange, n)
	c := poly.Zero(poly.Lagrange, n)
	for i, w := range wires {
		a.Values[i] = witness.Get(w.L)
		b.Values[i] = witness.Get(w.R)
		c.Values[i] = witness.Get(w.O)
	}
	p.a, p.b, p.c = a, b, c

	if !p.cfg.Force {
		if err := p.checkGateSatisfaction(); err != nil {
			return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
		}
	}

	var g errgroup.Group
	g.Go(func() (err error) { a1, err = p.setup.CommitLagrange(a, p.domain); return })
	g.Go(func() (err error) { b1, err = p.setup.CommitLagrange(b, p.domain); return })
	g.Go(func() (err error) { c1, err = p.setup.CommitLagrange(c, p.domain); return })
	if err := g.Wait(); err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	return a1, b1, c1, nil
}

// checkGateSatisfaction asserts A*QL + B*QR + A*B*QM + C*QO + PI + QC == 0
// pointwise on every evaluation domain slot. This is the arithmetization's
// core correctness statement; a failing witness means the circuit's
// constraints were not actually met.
func (p *Prover) checkGateSatisfaction() error {
	pk := p.pk

	aQL, err := poly.Mul(p.a, pk.QL)
	if err != nil {
		return err
	}
	bQR, err := poly.Mul(p.b, pk.QR)
	if err != nil {
		return err
	}
	ab, err := poly.Mul(p.a, p.b)
	if err != nil {
		return err
	}
	abQM, err := poly.Mul(ab, pk.QM)
	if err != nil {
		return err
	}
	cQO, err := poly.Mul(p.c, pk.QO)
	if err != nil {
		return err
	}

	sum := poly.Zero(poly.Lagrange, p.a.Size())
	for _, t := range []*poly.Polynomial{aQL, bQR, abQM, cQO, p.pi, pk.QC} {
		if sum, err = poly.Add(sum, t); err != nil {
			return err
		}
	}
	if !sum.IsZero() {
		return plonkerr.ErrWitnessDoesNotSatisfyCircuit
	}
	return nil
}
