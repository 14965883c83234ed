package proof_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/plonkworks/bn254-prover/proof"
)

// pointComparer and scalarComparer teach go-cmp to compare bn254.G1Affine
// and fr.Element by their own Equal methods instead of diffing unexported
// field internals.
var (
	pointComparer  = cmp.Comparer(func(a, b bn254.G1Affine) bool { return a.Equal(&b) })
	scalarComparer = cmp.Comparer(func(a, b fr.Element) bool { return a.Equal(&b) })
)

func samplePoint(seed int64) bn254.G1Affine {
	_, _, g1Gen, _ := bn254.Generators()
	var out bn254.G1Affine
	out.ScalarMultiplication(&g1Gen, big.NewInt(seed))
	return out
}

func sampleScalar(seed int64) fr.Element {
	var e fr.Element
	e.SetInt64(seed)
	return e
}

func sampleProof() *proof.Proof {
	return &proof.Proof{
		A: samplePoint(1), B: samplePoint(2), C: samplePoint(3),
		Z:  samplePoint(4),
		T1: samplePoint(5), T2: samplePoint(6), T3: samplePoint(7),
		ABar: sampleScalar(8), BBar: sampleScalar(9), CBar: sampleScalar(10),
		S1Bar: sampleScalar(11), S2Bar: sampleScalar(12), ZOmegaBar: sampleScalar(13),
		WZeta: samplePoint(14), WZetaOmega: samplePoint(15),
	}
}

func TestProofMarshalUnmarshalRoundTrip(t *testing.T) {
	want := sampleProof()
	data, err := want.MarshalBinary()
	require.NoError(t, err)

	var got proof.Proof
	require.NoError(t, got.UnmarshalBinary(data))

	if diff := cmp.Diff(want, &got, pointComparer, scalarComparer); diff != "" {
		t.Fatalf("proof did not round-trip (-want +got):\n%s", diff)
	}
}

func TestProofUnmarshalRejectsGarbage(t *testing.T) {
	var p proof.Proof
	require.Error(t, p.UnmarshalBinary([]byte("not cbor")))
}
