package prover

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

// newBigInt is a small helper for the field exponentiations round 5 needs
// (zeta^n, zeta^2n); group orders fit comfortably in an int.
func newBigInt(n int) *big.Int {
	return big.NewInt(int64(n))
}

// round5 builds the linearization polynomial R and the two combined
// opening witnesses W_ζ, W_ζω, committing to each. Returns ([W_ζ]_1,
// [W_ζω]_1).
func (p *Prover) round5() (wZeta, wZetaOmega bn254.G1Affine, err error) {
	n := int(p.domain.Size)

	extend := func(src *poly.Polynomial) (*poly.Polynomial, error) {
		return poly.ToCosetExtendedLagrange(src, p.zetaCos, p.domain, p.extended)
	}

	t1Coset, err := extend(p.t1)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	t2Coset, err := extend(p.t2)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	t3Coset, err := extend(p.t3)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qlCoset, err := extend(p.pk.QL)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qrCoset, err := extend(p.pk.QR)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qmCoset, err := extend(p.pk.QM)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qoCoset, err := extend(p.pk.QO)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qcCoset, err := extend(p.pk.QC)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	zCoset, err := extend(p.z)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	s3Coset, err := extend(p.pk.S3)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// L0(ζ) and Z_H(ζ), both plain scalar evaluations at ζ itself (not on
	// the coset): L0 is 1 at ω^0 and 0 elsewhere, so barycentric_eval
	// degenerates to an explicit formula, but going through
	// BarycentricEval keeps this grounded in the same evaluation contract
	// round 4 uses.
	l0 := poly.Zero(poly.Lagrange, n)
	l0.Values[0].SetOne()
	l0Eval, err := poly.BarycentricEval(l0, p.zeta, p.domain)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	var zHEval, one fr.Element
	one.SetOne()
	zHEval.Exp(p.zeta, newBigInt(n))
	zHEval.Sub(&zHEval, &one)

	piEval, err := poly.BarycentricEval(p.pi, p.zeta, p.domain)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	var k1, k2 fr.Element
	k1.SetUint64(circuit.K1)
	k2.SetUint64(circuit.K2)
	var k1Zeta, k2Zeta fr.Element
	k1Zeta.Mul(&k1, &p.zeta)
	k2Zeta.Mul(&k2, &p.zeta)

	// gates = QM*a_bar*b_bar + QL*a_bar + QR*b_bar + QO*c_bar + PI(zeta) + QC
	var abBar fr.Element
	abBar.Mul(&p.aBar, &p.bBar)
	gates := poly.MulScalar(qmCoset, abBar)
	gates, err = poly.Add(gates, poly.MulScalar(qlCoset, p.aBar))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	gates, err = poly.Add(gates, poly.MulScalar(qrCoset, p.bBar))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	gates, err = poly.Add(gates, poly.MulScalar(qoCoset, p.cBar))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	gates = poly.AddScalar(gates, piEval)
	gates, err = poly.Add(gates, qcCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// permutation (scaled by alpha):
	// Z*rlc(a,zeta)*rlc(b,k1 zeta)*rlc(c,k2 zeta)
	//   - (beta*S3 + c_bar + gamma)*rlc(a,s1_bar)*rlc(b,s2_bar)*z_omega_bar
	rA := rlc(p.aBar, p.zeta, p.beta, p.gamma)
	rB := rlc(p.bBar, k1Zeta, p.beta, p.gamma)
	rC := rlc(p.cBar, k2Zeta, p.beta, p.gamma)
	var lhsScale fr.Element
	lhsScale.Mul(&rA, &rB)
	lhsScale.Mul(&lhsScale, &rC)
	lhsTerm := poly.MulScalar(zCoset, lhsScale)

	s3Scaled := poly.MulScalar(s3Coset, p.beta)
	var cPlusGamma fr.Element
	cPlusGamma.Add(&p.cBar, &p.gamma)
	s3Scaled = poly.AddScalar(s3Scaled, cPlusGamma)

	rS1 := rlc(p.aBar, p.s1Bar, p.beta, p.gamma)
	rS2 := rlc(p.bBar, p.s2Bar, p.beta, p.gamma)
	var rhsScale fr.Element
	rhsScale.Mul(&rS1, &rS2)
	rhsScale.Mul(&rhsScale, &p.zOmegaBar)
	rhsTerm := poly.MulScalar(s3Scaled, rhsScale)

	permutation, err := poly.Sub(lhsTerm, rhsTerm)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	sum, err := poly.Add(gates, poly.MulScalar(permutation, p.alpha))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// boundary (scaled by alpha^2): (Z - 1) * L0(zeta)
	var alphaSq fr.Element
	alphaSq.Mul(&p.alpha, &p.alpha)
	var boundaryScale fr.Element
	boundaryScale.Mul(&l0Eval, &alphaSq)
	boundary := poly.MulScalar(poly.SubScalar(zCoset, one), boundaryScale)
	sum, err = poly.Add(sum, boundary)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// quotient reconstruction: subtract (T1 + zeta^n T2 + zeta^2n T3) * Z_H(zeta)
	var zetaN, zeta2N fr.Element
	zetaN.Exp(p.zeta, newBigInt(n))
	zeta2N.Exp(p.zeta, newBigInt(2*n))

	quotRecon, err := poly.Add(t1Coset, poly.MulScalar(t2Coset, zetaN))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	quotRecon, err = poly.Add(quotRecon, poly.MulScalar(t3Coset, zeta2N))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	quotRecon = poly.MulScalar(quotRecon, zHEval)

	rCoset, err := poly.Sub(sum, quotRecon)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	rCoeffs, err := poly.CosetExtendedLagrangeToCoeffs(rCoset, p.zetaCos, p.extended)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	for _, v := range rCoeffs.Values[n:] {
		if !v.IsZero() {
			return bn254.G1Affine{}, bn254.G1Affine{}, plonkerr.ErrQuotientDegreeOverflow
		}
	}
	rMono := &poly.Polynomial{Basis: poly.Monomial, Values: append([]fr.Element(nil), rCoeffs.Values[:n]...)}
	rLagrange, err := poly.FFT(rMono, p.domain)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// R is never committed: the verifier never receives [R]_1, it
	// reconstructs R(zeta) itself from the other commitments and checks
	// the evaluation below is zero.
	rAtZeta, err := poly.BarycentricEval(rLagrange, p.zeta, p.domain)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	if !rAtZeta.IsZero() {
		return bn254.G1Affine{}, bn254.G1Affine{}, plonkerr.ErrQuotientDegreeOverflow
	}

	aCoset, err := extend(p.a)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	bCoset, err := extend(p.b)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	cCoset, err := extend(p.c)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	s1Coset, err := extend(p.pk.S1)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	s2Coset, err := extend(p.pk.S2)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	v2 := mulFr(p.v, p.v)
	v3 := mulFr(v2, p.v)
	v4 := mulFr(v3, p.v)
	v5 := mulFr(v4, p.v)

	wNumer, err := poly.Add(rCoset, poly.MulScalar(poly.SubScalar(aCoset, p.aBar), p.v))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	wNumer, err = poly.Add(wNumer, poly.MulScalar(poly.SubScalar(bCoset, p.bBar), v2))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	wNumer, err = poly.Add(wNumer, poly.MulScalar(poly.SubScalar(cCoset, p.cBar), v3))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	wNumer, err = poly.Add(wNumer, poly.MulScalar(poly.SubScalar(s1Coset, p.s1Bar), v4))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	wNumer, err = poly.Add(wNumer, poly.MulScalar(poly.SubScalar(s2Coset, p.s2Bar), v5))
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	extRoots := p.extended.RootsOfUnity()
	cosetPoints := poly.Zero(poly.CosetExtendedLagrange, len(extRoots))
	for i := range extRoots {
		cosetPoints.Values[i].Mul(&extRoots[i], &p.zetaCos)
	}
	xMinusZeta := poly.SubScalar(cosetPoints, p.zeta)

	wZetaCoset, err := poly.Div(wNumer, xMinusZeta)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	wZetaCoeffs, err := poly.CosetExtendedLagrangeToCoeffs(wZetaCoset, p.zetaCos, p.extended)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	for _, v := range wZetaCoeffs.Values[n:] {
		if !v.IsZero() {
			return bn254.G1Affine{}, bn254.G1Affine{}, plonkerr.ErrQuotientDegreeOverflow
		}
	}
	wZetaMono := &poly.Polynomial{Basis: poly.Monomial, Values: append([]fr.Element(nil), wZetaCoeffs.Values[:n]...)}
	if wZeta, err = p.setup.CommitPolynomial(wZetaMono); err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	var zetaOmega fr.Element
	zetaOmega.Mul(&p.zeta, &p.domain.Generator)
	xMinusZetaOmega := poly.SubScalar(cosetPoints, zetaOmega)
	zwNumer := poly.SubScalar(zCoset, p.zOmegaBar)
	wZetaOmegaCoset, err := poly.Div(zwNumer, xMinusZetaOmega)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	wZetaOmegaCoeffs, err := poly.CosetExtendedLagrangeToCoeffs(wZetaOmegaCoset, p.zetaCos, p.extended)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	for _, v := range wZetaOmegaCoeffs.Values[n:] {
		if !v.IsZero() {
			return bn254.G1Affine{}, bn254.G1Affine{}, plonkerr.ErrQuotientDegreeOverflow
		}
	}
	wZetaOmegaMono := &poly.Polynomial{Basis: poly.Monomial, Values: append([]fr.Element(nil), wZetaOmegaCoeffs.Values[:n]...)}
	if wZetaOmega, err = p.setup.CommitPolynomial(wZetaOmegaMono); err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	return wZeta, wZetaOmega, nil
}

func mulFr(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&a, &b)
	return out
}
