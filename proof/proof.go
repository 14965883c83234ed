// Package proof defines the wire format of a finished PLONK proof: nine G1
// points and six Fr scalars, CBOR-encoded. Serialization is unspecified by
// the protocol itself, so this package's only job is a deterministic byte
// layout the prover and a would-be verifier agree on.
package proof

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
)

// Proof is the tuple of all five round messages.
type Proof struct {
	// Round 1
	A, B, C bn254.G1Affine
	// Round 2
	Z bn254.G1Affine
	// Round 3
	T1, T2, T3 bn254.G1Affine
	// Round 4
	ABar, BBar, CBar, S1Bar, S2Bar, ZOmegaBar fr.Element
	// Round 5
	WZeta, WZetaOmega bn254.G1Affine
}

// cborProof mirrors Proof with Marshal-friendly byte slices; gnark-crypto's
// G1Affine/fr.Element don't implement cbor.Marshaler themselves, so this
// package owns the mapping to their canonical compressed/regular byte
// encodings.
type cborProof struct {
	A, B, C            []byte
	Z                  []byte
	T1, T2, T3         []byte
	ABar, BBar, CBar   []byte
	S1Bar, S2Bar       []byte
	ZOmegaBar          []byte
	WZeta, WZetaOmega  []byte
}

// MarshalBinary implements encoding.BinaryMarshaler via CBOR.
func (p *Proof) MarshalBinary() ([]byte, error) {
	abar := p.ABar.Bytes()
	bbar := p.BBar.Bytes()
	cbar := p.CBar.Bytes()
	s1bar := p.S1Bar.Bytes()
	s2bar := p.S2Bar.Bytes()
	zwbar := p.ZOmegaBar.Bytes()

	a, b, c := p.A.Bytes(), p.B.Bytes(), p.C.Bytes()
	z := p.Z.Bytes()
	t1, t2, t3 := p.T1.Bytes(), p.T2.Bytes(), p.T3.Bytes()
	wz, wzw := p.WZeta.Bytes(), p.WZetaOmega.Bytes()

	wire := cborProof{
		A: a[:], B: b[:], C: c[:],
		Z:  z[:],
		T1: t1[:], T2: t2[:], T3: t3[:],
		ABar: abar[:], BBar: bbar[:], CBar: cbar[:],
		S1Bar: s1bar[:], S2Bar: s2bar[:],
		ZOmegaBar: zwbar[:],
		WZeta:     wz[:], WZetaOmega: wzw[:],
	}
	return cbor.Marshal(wire)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler via CBOR.
func (p *Proof) UnmarshalBinary(data []byte) error {
	var wire cborProof
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return err
	}

	if _, err := p.A.SetBytes(wire.A); err != nil {
		return err
	}
	if _, err := p.B.SetBytes(wire.B); err != nil {
		return err
	}
	if _, err := p.C.SetBytes(wire.C); err != nil {
		return err
	}
	if _, err := p.Z.SetBytes(wire.Z); err != nil {
		return err
	}
	if _, err := p.T1.SetBytes(wire.T1); err != nil {
		return err
	}
	if _, err := p.T2.SetBytes(wire.T2); err != nil {
		return err
	}
	if _, err := p.T3.SetBytes(wire.T3); err != nil {
		return err
	}
	if _, err := p.WZeta.SetBytes(wire.WZeta); err != nil {
		return err
	}
	if _, err := p.WZetaOmega.SetBytes(wire.WZetaOmega); err != nil {
		return err
	}

	p.ABar.SetBytes(wire.ABar)
	p.BBar.SetBytes(wire.BBar)
	p.CBar.SetBytes(wire.CBar)
	p.S1Bar.SetBytes(wire.S1Bar)
	p.S2Bar.SetBytes(wire.S2Bar)
	p.ZOmegaBar.SetBytes(wire.ZOmegaBar)
	return nil
}
