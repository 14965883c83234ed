// Package testcircuit hand-assembles small fixed circuits used by the
// prover's own tests. There is no circuit compiler in this module (out of
// scope per the protocol's external interfaces), so every fixture here
// wires gates and selector columns by hand the way a compiler's backend
// would emit them.
package testcircuit

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/poly"
)

// Program is a fixed, hand-wired circuit.Program.
type Program struct {
	GateList   []circuit.GateWires
	PublicVars []circuit.WireLabel
}

func (p *Program) Wires() []circuit.GateWires            { return p.GateList }
func (p *Program) PublicAssignments() []circuit.WireLabel { return p.PublicVars }

// Fixture bundles a Program with the preprocessed input built from its
// selector columns, ready to hand to prover.New.
type Fixture struct {
	Program *Program
	PK      *circuit.CommonPreprocessedInput
	Domain  *poly.Domain
}

func elem(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// selectors holds one gate's (QL, QR, QM, QO, QC) coefficients.
type selectors struct {
	L, R, M, O, C int64
}

// build assembles a Fixture from a groupOrder, gate wiring and matching
// per-gate selector coefficients. Gates beyond len(gates) are padded with
// the zero gate (Unused wires, all-zero selectors), which trivially
// satisfies the gate equation and self-loops in the permutation.
func build(groupOrder uint64, gates []circuit.GateWires, sels []selectors, public []circuit.WireLabel) (*Fixture, error) {
	program := &Program{GateList: gates, PublicVars: public}

	n := int(groupOrder)
	ql := poly.Zero(poly.Lagrange, n)
	qr := poly.Zero(poly.Lagrange, n)
	qm := poly.Zero(poly.Lagrange, n)
	qo := poly.Zero(poly.Lagrange, n)
	qc := poly.Zero(poly.Lagrange, n)
	for i, s := range sels {
		ql.Values[i] = elem(s.L)
		qr.Values[i] = elem(s.R)
		qm.Values[i] = elem(s.M)
		qo.Values[i] = elem(s.O)
		qc.Values[i] = elem(s.C)
	}

	domain, err := poly.NewDomain(groupOrder)
	if err != nil {
		return nil, err
	}
	s1, s2, s3, err := circuit.BuildPermutationPolynomials(program, domain)
	if err != nil {
		return nil, err
	}

	pk := &circuit.CommonPreprocessedInput{
		GroupOrder: groupOrder,
		QL:         ql, QR: qr, QM: qm, QO: qo, QC: qc,
		S1: s1, S2: s2, S3: s3,
	}
	return &Fixture{Program: program, PK: pk, Domain: domain}, nil
}

// XYPlusZEqualsSeven builds `x*y + z = 7` as two gates over group order 4:
//
//	gate 0 (PI slot): tmp + z - 7 = 0   (QL=1, QR=1, QC via PI)
//	gate 1:           x*y - tmp = 0    (QM=1, QO=-1)
//
// Gate order is irrelevant to soundness: the "tmp" wire label ties the two
// gates together through the permutation argument regardless of which gate
// is listed first.
func XYPlusZEqualsSeven() (*Fixture, error) {
	const tmp circuit.WireLabel = "tmp"
	gates := []circuit.GateWires{
		{L: tmp, R: "z", O: circuit.Unused},
		{L: "x", R: "y", O: tmp},
	}
	sels := []selectors{
		{L: 1, R: 1, M: 0, O: 0, C: 0},
		{L: 0, R: 0, M: 1, O: -1, C: 0},
	}
	return build(4, gates, sels, []circuit.WireLabel{"seven"})
}

// XYPlusZWitness returns the witness for XYPlusZEqualsSeven with x, y, z,
// and the public "seven" value, deriving tmp = x*y so the circuit checker
// can be satisfied or broken by passing a different z.
func XYPlusZWitness(x, y, z int64) circuit.Witness {
	return circuit.Witness{
		"x": elem(x), "y": elem(y), "z": elem(z),
		"tmp":   mul(elem(x), elem(y)),
		"seven": elem(7),
	}
}

// CubicPlusXPlusFive builds `x^3 + x + 5 = 35` over group order 4:
//
//	gate 0 (PI slot): x3 + x + 5 - 35 = 0  (QC=5, PI=-35)
//	gate 1: x*x - x2 = 0
//	gate 2: x2*x - x3 = 0
//
// Three real gates, one padding gate to reach the group order of 4. The PI
// gate comes first because the prover places the i-th public input on row i.
func CubicPlusXPlusFive() (*Fixture, error) {
	const x2 circuit.WireLabel = "x2"
	const x3 circuit.WireLabel = "x3"
	gates := []circuit.GateWires{
		{L: x3, R: "x", O: circuit.Unused}, // PI slot: x3 + x + 5 - 35 = 0
		{L: "x", R: "x", O: x2},           // x2 = x*x
		{L: x2, R: "x", O: x3},            // x3 = x2*x
	}
	sels := []selectors{
		{L: 1, R: 1, M: 0, O: 0, C: 5},
		{L: 0, R: 0, M: 1, O: -1, C: 0},
		{L: 0, R: 0, M: 1, O: -1, C: 0},
	}
	return build(4, gates, sels, []circuit.WireLabel{"thirtyfive"})
}

// CubicPlusXPlusFiveWitness returns the witness for CubicPlusXPlusFive.
func CubicPlusXPlusFiveWitness(x int64) circuit.Witness {
	xe := elem(x)
	x2e := mul(xe, xe)
	x3e := mul(x2e, xe)
	return circuit.Witness{
		"x": xe, "x2": x2e, "x3": x3e,
		"thirtyfive": elem(35),
	}
}

// ABEqualsC builds the empty-public-input circuit `a*b == c` over group
// order 8, padded with zero gates.
func ABEqualsC() (*Fixture, error) {
	gates := []circuit.GateWires{
		{L: "a", R: "b", O: "c"},
	}
	sels := []selectors{
		{L: 0, R: 0, M: 1, O: -1, C: 0},
	}
	return build(8, gates, sels, nil)
}

// ABEqualsCWitness returns the witness for ABEqualsC.
func ABEqualsCWitness(a, b int64) circuit.Witness {
	return circuit.Witness{
		"a": elem(a), "b": elem(b), "c": mul(elem(a), elem(b)),
	}
}

func mul(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&a, &b)
	return out
}
