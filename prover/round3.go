package prover

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/sync/errgroup"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

// round3 builds the quotient polynomial T, splits it into three
// degree-<n chunks T1, T2, T3 (the trusted setup only has n powers of x),
// and commits to all three. Returns ([T1]_1, [T2]_1, [T3]_1).
//
// Everything here runs in the 4n-point coset-extended Lagrange basis so
// that division by the vanishing polynomial Z_H(X) = X^n-1, which is zero
// everywhere on the roots-of-unity domain itself, becomes ordinary
// pointwise division on a coset where Z_H never vanishes.
func (p *Prover) round3() (t1c, t2c, t3c bn254.G1Affine, err error) {
	n := int(p.domain.Size)
	extend := func(src *poly.Polynomial) (*poly.Polynomial, error) {
		return poly.ToCosetExtendedLagrange(src, p.zetaCos, p.domain, p.extended)
	}

	aCoset, err := extend(p.a)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	bCoset, err := extend(p.b)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	cCoset, err := extend(p.c)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	piCoset, err := extend(p.pi)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qlCoset, err := extend(p.pk.QL)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qrCoset, err := extend(p.pk.QR)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qmCoset, err := extend(p.pk.QM)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qoCoset, err := extend(p.pk.QO)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	qcCoset, err := extend(p.pk.QC)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	zCoset, err := extend(p.z)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	zShifted, err := poly.Shift(p.z, 1)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	zShiftedCoset, err := extend(zShifted)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	s1Coset, err := extend(p.pk.S1)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	s2Coset, err := extend(p.pk.S2)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	s3Coset, err := extend(p.pk.S3)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// cosetPoints[i] = ζ_cos·μ^i, the evaluation point itself at each of the
	// 4n coset positions. Coset-extending a degree-<n Lagrange polynomial
	// whose values happen to equal the roots of unity themselves would
	// recover exactly this (the unique low-degree interpolant through n
	// points of X is X), so this is computed directly rather than routing
	// through a redundant FFT.
	extRoots := p.extended.RootsOfUnity()
	cosetPoints := poly.Zero(poly.CosetExtendedLagrange, len(extRoots))
	for i := range extRoots {
		cosetPoints.Values[i].Mul(&extRoots[i], &p.zetaCos)
	}

	var k1, k2 fr.Element
	k1.SetUint64(circuit.K1)
	k2.SetUint64(circuit.K2)
	k1Points := poly.MulScalar(cosetPoints, k1)
	k2Points := poly.MulScalar(cosetPoints, k2)

	// zH[i] = (ζ_cos·μ^i)^n - 1, the vanishing polynomial evaluated on the
	// coset (never zero there for an honestly sampled ζ_cos).
	zH := poly.Zero(poly.CosetExtendedLagrange, len(extRoots))
	nBig := big.NewInt(int64(n))
	for i := range zH.Values {
		zH.Values[i].Exp(cosetPoints.Values[i], nBig)
	}
	zH = poly.SubScalar(zH, fr.One())

	// correctGates = (A*QL + B*QR + A*B*QM + C*QO + PI + QC) / Z_H
	ab, err := poly.Mul(aCoset, bCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	aQL, err := poly.Mul(aCoset, qlCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	bQR, err := poly.Mul(bCoset, qrCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	abQM, err := poly.Mul(ab, qmCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	cQO, err := poly.Mul(cCoset, qoCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	gateSum, err := sumPolys(aQL, bQR, abQM, cQO, piCoset, qcCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	correctGates, err := poly.Div(gateSum, zH)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// permutationAccum/Z_H = alpha * [ Z(x)*rlc(A,x)*rlc(B,k1 x)*rlc(C,k2 x)
	//                                  - Z(ωx)*rlc(A,S1)*rlc(B,S2)*rlc(C,S3) ] / Z_H
	aRlcX, err := polyRLC(aCoset, cosetPoints, p.beta, p.gamma)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	bRlcX, err := polyRLC(bCoset, k1Points, p.beta, p.gamma)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	cRlcX, err := polyRLC(cCoset, k2Points, p.beta, p.gamma)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	lhs, err := sumProd(aRlcX, bRlcX, cRlcX)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	lhs, err = poly.Mul(lhs, zCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	aRlcS1, err := polyRLC(aCoset, s1Coset, p.beta, p.gamma)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	bRlcS2, err := polyRLC(bCoset, s2Coset, p.beta, p.gamma)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	cRlcS3, err := polyRLC(cCoset, s3Coset, p.beta, p.gamma)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	rhs, err := sumProd(aRlcS1, bRlcS2, cRlcS3)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	rhs, err = poly.Mul(rhs, zShiftedCoset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	permNumer, err := poly.Sub(lhs, rhs)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	permNumer = poly.MulScalar(permNumer, p.alpha)
	permutationAccum, err := poly.Div(permNumer, zH)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	// boundaryTerm/Z_H = (Z - 1) * L0 * alpha^2 / Z_H, L0 the Lagrange
	// basis polynomial that is 1 at ω^0 and 0 at every other root of unity.
	l0 := poly.Zero(poly.Lagrange, n)
	l0.Values[0].SetOne()
	l0Coset, err := extend(l0)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	var alphaSq fr.Element
	alphaSq.Mul(&p.alpha, &p.alpha)
	l0Coset = poly.MulScalar(l0Coset, alphaSq)

	zMinusOne := poly.SubScalar(zCoset, fr.One())
	boundaryNumer, err := poly.Mul(zMinusOne, l0Coset)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	boundaryTerm, err := poly.Div(boundaryNumer, zH)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	quot, err := sumPolys(correctGates, permutationAccum, boundaryTerm)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	coeffs, err := poly.CosetExtendedLagrangeToCoeffs(quot, p.zetaCos, p.extended)
	if err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	for _, v := range coeffs.Values[3*n:] {
		if !v.IsZero() {
			return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, plonkerr.ErrQuotientDegreeOverflow
		}
	}

	t1Mono := &poly.Polynomial{Basis: poly.Monomial, Values: append([]fr.Element(nil), coeffs.Values[0:n]...)}
	t2Mono := &poly.Polynomial{Basis: poly.Monomial, Values: append([]fr.Element(nil), coeffs.Values[n:2*n]...)}
	t3Mono := &poly.Polynomial{Basis: poly.Monomial, Values: append([]fr.Element(nil), coeffs.Values[2*n:3*n]...)}

	// T1/T2/T3 are kept in Lagrange basis (round 5 needs to coset-extend
	// them again for the linearization polynomial), committing from the
	// monomial chunk directly rather than round-tripping Lagrange->Monomial
	// a second time inside Commit.
	if p.t1, err = poly.FFT(t1Mono, p.domain); err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	if p.t2, err = poly.FFT(t2Mono, p.domain); err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	if p.t3, err = poly.FFT(t3Mono, p.domain); err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}

	var g errgroup.Group
	g.Go(func() (err error) { t1c, err = p.setup.CommitPolynomial(t1Mono); return })
	g.Go(func() (err error) { t2c, err = p.setup.CommitPolynomial(t2Mono); return })
	g.Go(func() (err error) { t3c, err = p.setup.CommitPolynomial(t3Mono); return })
	if err := g.Wait(); err != nil {
		return bn254.G1Affine{}, bn254.G1Affine{}, bn254.G1Affine{}, err
	}
	return t1c, t2c, t3c, nil
}

func sumPolys(ps ...*poly.Polynomial) (*poly.Polynomial, error) {
	sum := ps[0].Clone()
	var err error
	for _, t := range ps[1:] {
		if sum, err = poly.Add(sum, t); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

func sumProd(ps ...*poly.Polynomial) (*poly.Polynomial, error) {
	prod := ps[0].Clone()
	var err error
	for _, t := range ps[1:] {
		if prod, err = poly.Mul(prod, t); err != nil {
			return nil, err
		}
	}
	return prod, nil
}
