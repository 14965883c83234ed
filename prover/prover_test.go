package prover_test

import (
	"errors"
	"math/big"
	"math/rand"
	"strconv"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/internal/testcircuit"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
	"github.com/plonkworks/bn254-prover/prover"
	"github.com/plonkworks/bn254-prover/verifier"
)

func TestXYPlusZSatisfyingWitnessVerifies(t *testing.T) {
	fixture, err := testcircuit.XYPlusZEqualsSeven()
	require.NoError(t, err, "build fixture")
	setup, err := testcircuit.TrustedSetup(42, int(fixture.PK.GroupOrder))
	require.NoError(t, err, "trusted setup")

	pr, err := prover.New(setup, fixture.Program, fixture.PK)
	require.NoError(t, err, "new prover")
	proof, err := pr.Prove(testcircuit.XYPlusZWitness(1, 2, 5))
	require.NoError(t, err, "prove")

	vk, err := setup.VerificationKey(fixture.PK)
	require.NoError(t, err, "verification key")
	publicInputs := []fr.Element{elemT(7)}
	if err := verifier.Verify(vk, fixture.PK.GroupOrder, publicInputs, proof, nil); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestXYPlusZUnsatisfyingWitnessRejected(t *testing.T) {
	fixture, err := testcircuit.XYPlusZEqualsSeven()
	require.NoError(t, err, "build fixture")
	setup, err := testcircuit.TrustedSetup(42, int(fixture.PK.GroupOrder))
	require.NoError(t, err, "trusted setup")

	pr, err := prover.New(setup, fixture.Program, fixture.PK)
	require.NoError(t, err, "new prover")
	// x*y + z = 1*2+4 = 6, not 7: the witness's public "seven" still says 7.
	_, err = pr.Prove(testcircuit.XYPlusZWitness(1, 2, 4))
	if !errors.Is(err, plonkerr.ErrWitnessDoesNotSatisfyCircuit) {
		t.Fatalf("expected ErrWitnessDoesNotSatisfyCircuit, got %v", err)
	}
}

func TestCubicPlusXPlusFiveEndToEnd(t *testing.T) {
	fixture, err := testcircuit.CubicPlusXPlusFive()
	require.NoError(t, err, "build fixture")
	setup, err := testcircuit.TrustedSetup(7, int(fixture.PK.GroupOrder))
	require.NoError(t, err, "trusted setup")

	pr, err := prover.New(setup, fixture.Program, fixture.PK)
	require.NoError(t, err, "new prover")
	proof, err := pr.Prove(testcircuit.CubicPlusXPlusFiveWitness(3))
	require.NoError(t, err, "prove")

	vk, err := setup.VerificationKey(fixture.PK)
	require.NoError(t, err, "verification key")
	if err := verifier.Verify(vk, fixture.PK.GroupOrder, []fr.Element{elemT(35)}, proof, nil); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestABEqualsCEndToEndAndTamperDetection(t *testing.T) {
	fixture, err := testcircuit.ABEqualsC()
	require.NoError(t, err, "build fixture")
	setup, err := testcircuit.TrustedSetup(99, int(fixture.PK.GroupOrder))
	require.NoError(t, err, "trusted setup")

	pr, err := prover.New(setup, fixture.Program, fixture.PK)
	require.NoError(t, err, "new prover")
	proof, err := pr.Prove(testcircuit.ABEqualsCWitness(3, 4))
	require.NoError(t, err, "prove")

	vk, err := setup.VerificationKey(fixture.PK)
	require.NoError(t, err, "verification key")
	if err := verifier.Verify(vk, fixture.PK.GroupOrder, nil, proof, nil); err != nil {
		t.Fatalf("verify: %v", err)
	}

	tampered := *proof
	tampered.A.ScalarMultiplication(&tampered.A, big.NewInt(2))
	if err := verifier.Verify(vk, fixture.PK.GroupOrder, nil, &tampered, nil); err == nil {
		t.Fatal("expected verification to fail against a tampered commitment")
	}
}

func TestPermutationGrandProductClosesForRandomCircuit(t *testing.T) {
	const groupOrder = 16
	domain, err := poly.NewDomain(groupOrder)
	require.NoError(t, err, "new domain")

	rng := rand.New(rand.NewSource(1))
	gates := make([]circuit.GateWires, groupOrder)
	for i := range gates {
		// Label l_j sits in L at gate j, R at gate j-1 and O at gate j-2,
		// so each label forms a three-position cycle across L/R/O and
		// BuildPermutationPolynomials exercises nontrivial cycles, not just
		// self-loops.
		gates[i] = circuit.GateWires{
			L: circuit.WireLabel(label("l", i)),
			R: circuit.WireLabel(label("l", (i+1)%groupOrder)),
			O: circuit.WireLabel(label("l", (i+2)%groupOrder)),
		}
	}
	program := &testcircuit.Program{GateList: gates}

	s1, s2, s3, err := circuit.BuildPermutationPolynomials(program, domain)
	require.NoError(t, err, "build permutation polynomials")

	witness := circuit.Witness{}
	for i := 0; i < groupOrder; i++ {
		var v fr.Element
		v.SetUint64(uint64(rng.Intn(1000) + 1))
		witness[circuit.WireLabel(label("l", i))] = v
	}

	var beta, gamma fr.Element
	beta.SetUint64(5)
	gamma.SetUint64(7)

	var k1, k2 fr.Element
	k1.SetUint64(circuit.K1)
	k2.SetUint64(circuit.K2)

	roots := domain.RootsOfUnity()
	z := fr.One()
	for i := 0; i < groupOrder; i++ {
		a := witness.Get(gates[i].L)
		b := witness.Get(gates[i].R)
		c := witness.Get(gates[i].O)

		var w1, w2 fr.Element
		w1.Mul(&k1, &roots[i])
		w2.Mul(&k2, &roots[i])

		numer := rlcT(a, roots[i], beta, gamma)
		t1 := rlcT(b, w1, beta, gamma)
		numer.Mul(&numer, &t1)
		t2 := rlcT(c, w2, beta, gamma)
		numer.Mul(&numer, &t2)

		denom := rlcT(a, s1.Values[i], beta, gamma)
		d1 := rlcT(b, s2.Values[i], beta, gamma)
		denom.Mul(&denom, &d1)
		d2 := rlcT(c, s3.Values[i], beta, gamma)
		denom.Mul(&denom, &d2)

		var denomInv fr.Element
		denomInv.Inverse(&denom)
		z.Mul(&z, &numer)
		z.Mul(&z, &denomInv)
	}

	one := fr.One()
	if !z.Equal(&one) {
		t.Fatalf("grand product did not telescope to 1: got %v", z.String())
	}
}

func TestRound2RejectsInvalidPermutation(t *testing.T) {
	fixture, err := testcircuit.ABEqualsC()
	require.NoError(t, err, "build fixture")
	setup, err := testcircuit.TrustedSetup(11, int(fixture.PK.GroupOrder))
	require.NoError(t, err, "trusted setup")

	// Swap two entries of S1 so it no longer represents a valid
	// permutation of the wire topology; the gate equation still holds
	// (S1 doesn't enter round 1), but the grand product can't close.
	broken := fixture.PK.S1.Clone()
	broken.Values[0], broken.Values[1] = broken.Values[1], broken.Values[0]
	fixture.PK.S1 = broken

	pr, err := prover.New(setup, fixture.Program, fixture.PK)
	require.NoError(t, err, "new prover")
	_, err = pr.Prove(testcircuit.ABEqualsCWitness(3, 4))
	if !errors.Is(err, plonkerr.ErrPermutationProductDidNotClose) {
		t.Fatalf("expected ErrPermutationProductDidNotClose, got %v", err)
	}
}

func elemT(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func rlcT(term, shift, beta, gamma fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&shift, &beta)
	out.Add(&out, &term)
	out.Add(&out, &gamma)
	return out
}

func label(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}
