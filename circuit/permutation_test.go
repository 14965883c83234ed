package circuit_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/poly"
)

type fixedProgram struct {
	gates  []circuit.GateWires
	public []circuit.WireLabel
}

func (p *fixedProgram) Wires() []circuit.GateWires             { return p.gates }
func (p *fixedProgram) PublicAssignments() []circuit.WireLabel { return p.public }

func scale(e fr.Element, k uint64) fr.Element {
	var kE, out fr.Element
	kE.SetUint64(k)
	out.Mul(&e, &kE)
	return out
}

// TestUnsharedWireSelfLoops checks that a wire label appearing in exactly one
// gate position maps to itself: S1 at that slot reproduces the slot's own
// root of unity, and an Unused wire in R reproduces k1*omega^i.
func TestUnsharedWireSelfLoops(t *testing.T) {
	const n = 4
	domain, err := poly.NewDomain(n)
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	program := &fixedProgram{gates: []circuit.GateWires{
		{L: "a", R: circuit.Unused, O: "c"},
	}}

	s1, s2, s3, err := circuit.BuildPermutationPolynomials(program, domain)
	if err != nil {
		t.Fatalf("build permutation polynomials: %v", err)
	}

	roots := domain.RootsOfUnity()
	if !s1.Values[0].Equal(&roots[0]) {
		t.Fatalf("unshared L wire should self-loop to omega^0, got %v want %v", s1.Values[0], roots[0])
	}
	wantS2 := scale(roots[0], circuit.K1)
	if !s2.Values[0].Equal(&wantS2) {
		t.Fatalf("Unused R wire should self-loop to k1*omega^0, got %v want %v", s2.Values[0], wantS2)
	}
	wantS3 := scale(roots[0], circuit.K2)
	if !s3.Values[0].Equal(&wantS3) {
		t.Fatalf("unshared O wire should self-loop to k2*omega^0, got %v want %v", s3.Values[0], wantS3)
	}
}

// TestSharedWireFormsTwoCycle checks that a label repeated across two gate
// positions ties those two positions into a swap in the permutation: S1's
// entry for the first occurrence must land on the support point of the
// second occurrence, and vice versa.
func TestSharedWireFormsTwoCycle(t *testing.T) {
	const n = 4
	domain, err := poly.NewDomain(n)
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	program := &fixedProgram{gates: []circuit.GateWires{
		{L: "x", R: "y", O: "z"},
		{L: "w", R: "x", O: "u"},
	}}

	s1, s2, _, err := circuit.BuildPermutationPolynomials(program, domain)
	if err != nil {
		t.Fatalf("build permutation polynomials: %v", err)
	}

	roots := domain.RootsOfUnity()
	// "x" occupies L at gate 0 (support point omega^0) and R at gate 1
	// (support point k1*omega^1); BuildPermutationPolynomials must swap
	// these two support points between S1[0] and S2[1].
	wantS1At0 := scale(roots[1], circuit.K1)
	if !s1.Values[0].Equal(&wantS1At0) {
		t.Fatalf("S1[0] should point at x's other occurrence k1*omega^1, got %v want %v", s1.Values[0], wantS1At0)
	}
	if !s2.Values[1].Equal(&roots[0]) {
		t.Fatalf("S2[1] should point at x's other occurrence omega^0, got %v want %v", s2.Values[1], roots[0])
	}
}
