package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/poly"
)

// round4 evaluates A, B, C, pk.S1, pk.S2 at ζ and Z at ζ·ω, the six
// openings the verifier needs to check the linearization identity without
// seeing the polynomials themselves.
func (p *Prover) round4() error {
	var err error
	if p.aBar, err = poly.BarycentricEval(p.a, p.zeta, p.domain); err != nil {
		return err
	}
	if p.bBar, err = poly.BarycentricEval(p.b, p.zeta, p.domain); err != nil {
		return err
	}
	if p.cBar, err = poly.BarycentricEval(p.c, p.zeta, p.domain); err != nil {
		return err
	}
	if p.s1Bar, err = poly.BarycentricEval(p.pk.S1, p.zeta, p.domain); err != nil {
		return err
	}
	if p.s2Bar, err = poly.BarycentricEval(p.pk.S2, p.zeta, p.domain); err != nil {
		return err
	}

	var zetaOmega fr.Element
	zetaOmega.Mul(&p.zeta, &p.domain.Generator)
	p.zOmegaBar, err = poly.BarycentricEval(p.z, zetaOmega, p.domain)
	return err
}
