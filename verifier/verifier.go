// Package verifier is a minimal, test-only counterpart to package prover: it
// checks a proof.Proof against a kzg.VerificationKey via the same five-round
// Fiat-Shamir transcript and two KZG opening pairing checks. The protocol's
// external interfaces explicitly leave the verifier out of scope; this
// package exists only so this module's own tests can confirm a proof it
// produced actually verifies, without standing up a separate repo.
package verifier

import (
	"fmt"
	"hash"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/kzg"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/proof"
	"github.com/plonkworks/bn254-prover/transcript"
)

var multiExpConfig = ecc.MultiExpConfig{}

// Verify reconstructs the Fiat-Shamir challenges from vk and p exactly as
// Prove would have derived them, reconstructs the linearization commitment
// [R]_1 as a linear combination of vk's and p's own commitments (the prover
// never commits to R; round 5 only checks R(ζ)=0), and checks the two KZG
// opening pairings, one for the batched W_ζ opening and one for W_ζω.
//
// publicInputs must be given in the same order the circuit's
// Program.PublicAssignments() lists them, and hashFactory must match
// whatever the prover was configured with (default: Keccak-256).
func Verify(vk *kzg.VerificationKey, groupOrder uint64, publicInputs []fr.Element, p *proof.Proof, hashFactory func() hash.Hash) error {
	if hashFactory == nil {
		hashFactory = sha3.NewLegacyKeccak256
	}

	tr, err := transcript.New(hashFactory())
	if err != nil {
		return err
	}
	if err := tr.BindPreprocessed(vk.QL, vk.QR, vk.QM, vk.QO, vk.QC, vk.S1, vk.S2, vk.S3, publicInputs); err != nil {
		return err
	}
	beta, gamma, err := tr.Round1(p.A, p.B, p.C)
	if err != nil {
		return err
	}
	alpha, zetaCos, err := tr.Round2(p.Z)
	if err != nil {
		return err
	}
	_ = zetaCos // the verifier never touches the coset; only the prover needs it.
	zeta, err := tr.Round3(p.T1, p.T2, p.T3)
	if err != nil {
		return err
	}
	v, err := tr.Round4(p.ABar, p.BBar, p.CBar, p.S1Bar, p.S2Bar, p.ZOmegaBar)
	if err != nil {
		return err
	}

	n := int(groupOrder)

	// L0(zeta) = (zeta^n - 1) / (n * (zeta - 1)), the standard closed form
	// for the Lagrange basis polynomial that is 1 at omega^0.
	var zetaN, one fr.Element
	one.SetOne()
	zetaN.Exp(zeta, big.NewInt(int64(n)))
	var zHEval fr.Element
	zHEval.Sub(&zetaN, &one)

	var nFr fr.Element
	nFr.SetUint64(groupOrder)
	var zetaMinusOne fr.Element
	zetaMinusOne.Sub(&zeta, &one)
	var l0Denom fr.Element
	l0Denom.Mul(&nFr, &zetaMinusOne)
	var l0Eval fr.Element
	l0Eval.Inverse(&l0Denom)
	l0Eval.Mul(&l0Eval, &zHEval)

	piEval := evalPublicInputs(publicInputs, groupOrder, zeta)

	var k1, k2 fr.Element
	k1.SetUint64(circuit.K1)
	k2.SetUint64(circuit.K2)
	var k1Zeta, k2Zeta fr.Element
	k1Zeta.Mul(&k1, &zeta)
	k2Zeta.Mul(&k2, &zeta)

	rA := rlc(p.ABar, zeta, beta, gamma)
	rB := rlc(p.BBar, k1Zeta, beta, gamma)
	rC := rlc(p.CBar, k2Zeta, beta, gamma)
	var zCoeff fr.Element
	zCoeff.Mul(&rA, &rB)
	zCoeff.Mul(&zCoeff, &rC)
	zCoeff.Mul(&zCoeff, &alpha)

	rS1 := rlc(p.ABar, p.S1Bar, beta, gamma)
	rS2 := rlc(p.BBar, p.S2Bar, beta, gamma)
	var s3Coeff fr.Element
	s3Coeff.Mul(&rS1, &rS2)
	s3Coeff.Mul(&s3Coeff, &p.ZOmegaBar)
	s3Coeff.Mul(&s3Coeff, &alpha)
	s3Coeff.Mul(&s3Coeff, &beta)
	s3Coeff.Neg(&s3Coeff)

	// boundary term adds alpha^2*L0(zeta) to Z's coefficient and contributes
	// -alpha^2*L0(zeta) to the constant (generator-scaled) term.
	var alphaSq fr.Element
	alphaSq.Mul(&alpha, &alpha)
	var boundaryZCoeff fr.Element
	boundaryZCoeff.Mul(&alphaSq, &l0Eval)
	zCoeff.Add(&zCoeff, &boundaryZCoeff)

	// constant (generator) coefficient: PI(zeta), minus
	// alpha*(s1_rlc*s2_rlc)*(c_bar+gamma)*z_omega_bar, minus alpha^2*L0(zeta).
	// QC is not part of it; it enters below as 1*[QC].
	cPlusGamma := new(fr.Element).Add(&p.CBar, &gamma)
	var rhsConst fr.Element
	rhsConst.Mul(&rS1, &rS2)
	rhsConst.Mul(&rhsConst, cPlusGamma)
	rhsConst.Mul(&rhsConst, &p.ZOmegaBar)
	rhsConst.Mul(&rhsConst, &alpha)

	var constCoeff fr.Element
	constCoeff.Sub(&piEval, &rhsConst)
	constCoeff.Sub(&constCoeff, &boundaryZCoeff)

	var zetaSq fr.Element
	zetaSq.Exp(zeta, big.NewInt(int64(2*n)))

	// [R]_1 = abar*bbar*[QM] + abar*[QL] + bbar*[QR] + cbar*[QO] + [QC]
	//       + zCoeff*[Z] + s3Coeff*[S3] + constCoeff*[1]_1
	//       - zH(zeta)*([T1] + zeta^n*[T2] + zeta^(2n)*[T3])
	var abBar fr.Element
	abBar.Mul(&p.ABar, &p.BBar)

	_, _, g1Gen, _ := bn254.Generators()

	rCommit, err := linearCombination(
		[]fr.Element{abBar, p.ABar, p.BBar, p.CBar, one, zCoeff, s3Coeff, constCoeff},
		[]bn254.G1Affine{vk.QM, vk.QL, vk.QR, vk.QO, vk.QC, p.Z, vk.S3, g1Gen},
	)
	if err != nil {
		return err
	}

	var negZH fr.Element
	negZH.Neg(&zHEval)
	var negZHZetaN, negZHZeta2N fr.Element
	negZHZetaN.Mul(&negZH, &zetaN)
	negZHZeta2N.Mul(&negZH, &zetaSq)
	quotCommit, err := linearCombination(
		[]fr.Element{negZH, negZHZetaN, negZHZeta2N},
		[]bn254.G1Affine{p.T1, p.T2, p.T3},
	)
	if err != nil {
		return err
	}
	var rCommitJac, quotCommitJac bn254.G1Jac
	rCommitJac.FromAffine(&rCommit)
	quotCommitJac.FromAffine(&quotCommit)
	rCommitJac.AddAssign(&quotCommitJac)
	var rFull bn254.G1Affine
	rFull.FromJacobian(&rCommitJac)

	v2 := mulFr(v, v)
	v3 := mulFr(v2, v)
	v4 := mulFr(v3, v)
	v5 := mulFr(v4, v)

	// F = [R]_1 + v*[A]_1 + v^2*[B]_1 + v^3*[C]_1 + v^4*[S1]_1 + v^5*[S2]_1
	fCommit, err := linearCombination(
		[]fr.Element{one, v, v2, v3, v4, v5},
		[]bn254.G1Affine{rFull, p.A, p.B, p.C, vk.S1, vk.S2},
	)
	if err != nil {
		return err
	}

	// E = (v*abar + v^2*bbar + v^3*cbar + v^4*s1bar + v^5*s2bar) * [1]_1
	// (R(zeta) is 0 by construction so it contributes nothing here).
	var eScalar fr.Element
	eScalar.Mul(&v, &p.ABar)
	eScalar.Add(&eScalar, mulFrPtr(v2, p.BBar))
	eScalar.Add(&eScalar, mulFrPtr(v3, p.CBar))
	eScalar.Add(&eScalar, mulFrPtr(v4, p.S1Bar))
	eScalar.Add(&eScalar, mulFrPtr(v5, p.S2Bar))

	var eCommit bn254.G1Affine
	eCommit.ScalarMultiplication(&g1Gen, eScalar.BigInt(new(big.Int)))

	// e([F]_1 - [E]_1 + zeta*[W_zeta]_1, [1]_2) == e([W_zeta]_1, [x]_2)
	var lhsZetaJac, eJac, wZetaScaledJac bn254.G1Jac
	lhsZetaJac.FromAffine(&fCommit)
	eJac.FromAffine(&eCommit)
	lhsZetaJac.SubAssign(&eJac)
	var wZetaJac bn254.G1Jac
	wZetaJac.FromAffine(&p.WZeta)
	wZetaScaledJac.ScalarMultiplication(&wZetaJac, zeta.BigInt(new(big.Int)))
	lhsZetaJac.AddAssign(&wZetaScaledJac)
	var lhsZeta bn254.G1Affine
	lhsZeta.FromJacobian(&lhsZetaJac)

	_, _, _, g2Gen := bn254.Generators()

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{lhsZeta, negAffine(p.WZeta)},
		[]bn254.G2Affine{g2Gen, vk.X2},
	)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: W_zeta opening", plonkerr.ErrVerificationFailed)
	}

	// e([Z]_1 - zOmegaBar*[1]_1 + zeta*omega*[W_zetaomega]_1, [1]_2) ==
	//   e([W_zetaomega]_1, [x]_2)
	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &vk.Omega)

	var zOmegaBarScaledJac, lhsOmegaJac bn254.G1Jac
	lhsOmegaJac.FromAffine(&p.Z)
	var zOmegaBarCommit bn254.G1Affine
	zOmegaBarCommit.ScalarMultiplication(&g1Gen, p.ZOmegaBar.BigInt(new(big.Int)))
	zOmegaBarScaledJac.FromAffine(&zOmegaBarCommit)
	lhsOmegaJac.SubAssign(&zOmegaBarScaledJac)

	var wZetaOmegaJac, wZetaOmegaScaledJac bn254.G1Jac
	wZetaOmegaJac.FromAffine(&p.WZetaOmega)
	wZetaOmegaScaledJac.ScalarMultiplication(&wZetaOmegaJac, zetaOmega.BigInt(new(big.Int)))
	lhsOmegaJac.AddAssign(&wZetaOmegaScaledJac)
	var lhsOmega bn254.G1Affine
	lhsOmega.FromJacobian(&lhsOmegaJac)

	ok, err = bn254.PairingCheck(
		[]bn254.G1Affine{lhsOmega, negAffine(p.WZetaOmega)},
		[]bn254.G2Affine{g2Gen, vk.X2},
	)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: W_zetaomega opening", plonkerr.ErrVerificationFailed)
	}
	return nil
}

// evalPublicInputs evaluates the public-input polynomial (value -v at slot
// i, 0 elsewhere) at zeta via the barycentric formula, mirroring
// prover.buildPublicInputPolynomial's sign convention.
func evalPublicInputs(publicInputs []fr.Element, groupOrder uint64, zeta fr.Element) fr.Element {
	var out fr.Element
	if len(publicInputs) == 0 {
		return out
	}

	n := int(groupOrder)
	var omega fr.Element
	omega.SetOne()
	g := generatorFor(groupOrder)

	var zetaN, one fr.Element
	one.SetOne()
	zetaN.Exp(zeta, big.NewInt(int64(n)))
	var zHEval fr.Element
	zHEval.Sub(&zetaN, &one)

	var nFr fr.Element
	nFr.SetUint64(groupOrder)

	for i := 0; i < len(publicInputs); i++ {
		var numer fr.Element
		numer.Neg(&publicInputs[i])
		numer.Mul(&numer, &omega)
		numer.Mul(&numer, &zHEval)

		var zetaMinusOmega fr.Element
		zetaMinusOmega.Sub(&zeta, &omega)
		var denom fr.Element
		denom.Mul(&nFr, &zetaMinusOmega)

		var term fr.Element
		term.Div(&numer, &denom)
		out.Add(&out, &term)

		omega.Mul(&omega, &g)
	}
	return out
}

// generatorFor recomputes the domain generator omega for groupOrder without
// pulling in the poly package, so the verifier stays a self-contained
// reference implementation independent of prover-internal helpers.
func generatorFor(groupOrder uint64) fr.Element {
	r := fr.Modulus()
	exponent := new(big.Int).Sub(r, big.NewInt(1))
	logSize := 0
	for s := groupOrder; s > 1; s >>= 1 {
		logSize++
	}
	exponent.Div(exponent, new(big.Int).Lsh(big.NewInt(1), uint(logSize)))

	var base, gen fr.Element
	base.SetUint64(5)
	gen.Exp(base, exponent)
	return gen
}

func rlc(term, shift, beta, gamma fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&shift, &beta)
	out.Add(&out, &term)
	out.Add(&out, &gamma)
	return out
}

func mulFr(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&a, &b)
	return out
}

func mulFrPtr(a, b fr.Element) *fr.Element {
	out := mulFr(a, b)
	return &out
}

func negAffine(p bn254.G1Affine) bn254.G1Affine {
	var out bn254.G1Affine
	out.Neg(&p)
	return out
}

// linearCombination computes sum(scalars[i] * points[i]) via MultiExp.
func linearCombination(scalars []fr.Element, points []bn254.G1Affine) (bn254.G1Affine, error) {
	var out bn254.G1Affine
	if _, err := out.MultiExp(points, scalars, multiExpConfig); err != nil {
		return bn254.G1Affine{}, err
	}
	return out, nil
}
