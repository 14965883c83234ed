package transcript_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"

	"github.com/plonkworks/bn254-prover/transcript"
)

func big1(v int64) *big.Int {
	return big.NewInt(v)
}

func samplePreprocessed() (ql, qr, qm, qo, qc, s1, s2, s3 bn254.G1Affine) {
	_, _, g1Gen, _ := bn254.Generators()
	cols := []*bn254.G1Affine{&ql, &qr, &qm, &qo, &qc, &s1, &s2, &s3}
	for i, c := range cols {
		c.ScalarMultiplication(&g1Gen, big1(int64(i+1)))
	}
	return
}

func runRounds(t *testing.T, publicInputs []fr.Element) (beta, gamma, alpha, zetaCos, zeta, v fr.Element) {
	t.Helper()
	tr, err := transcript.New(sha3.NewLegacyKeccak256())
	if err != nil {
		t.Fatalf("new transcript: %v", err)
	}
	ql, qr, qm, qo, qc, s1, s2, s3 := samplePreprocessed()
	if err := tr.BindPreprocessed(ql, qr, qm, qo, qc, s1, s2, s3, publicInputs); err != nil {
		t.Fatalf("bind preprocessed: %v", err)
	}

	_, _, g1Gen, _ := bn254.Generators()
	var a, b, c bn254.G1Affine
	a.ScalarMultiplication(&g1Gen, big1(11))
	b.ScalarMultiplication(&g1Gen, big1(12))
	c.ScalarMultiplication(&g1Gen, big1(13))
	beta, gamma, err = tr.Round1(a, b, c)
	if err != nil {
		t.Fatalf("round1: %v", err)
	}

	var z bn254.G1Affine
	z.ScalarMultiplication(&g1Gen, big1(14))
	alpha, zetaCos, err = tr.Round2(z)
	if err != nil {
		t.Fatalf("round2: %v", err)
	}

	var t1, t2, t3 bn254.G1Affine
	t1.ScalarMultiplication(&g1Gen, big1(15))
	t2.ScalarMultiplication(&g1Gen, big1(16))
	t3.ScalarMultiplication(&g1Gen, big1(17))
	zeta, err = tr.Round3(t1, t2, t3)
	if err != nil {
		t.Fatalf("round3: %v", err)
	}

	var aBar, bBar, cBar, s1Bar, s2Bar, zOmegaBar fr.Element
	aBar.SetUint64(1)
	bBar.SetUint64(2)
	cBar.SetUint64(3)
	s1Bar.SetUint64(4)
	s2Bar.SetUint64(5)
	zOmegaBar.SetUint64(6)
	v, err = tr.Round4(aBar, bBar, cBar, s1Bar, s2Bar, zOmegaBar)
	if err != nil {
		t.Fatalf("round4: %v", err)
	}
	return
}

func TestTranscriptIsDeterministic(t *testing.T) {
	var pi fr.Element
	pi.SetUint64(99)
	b1, g1, a1, zc1, z1, v1 := runRounds(t, []fr.Element{pi})
	b2, g2, a2, zc2, z2, v2 := runRounds(t, []fr.Element{pi})

	if !b1.Equal(&b2) || !g1.Equal(&g2) || !a1.Equal(&a2) || !zc1.Equal(&zc2) || !z1.Equal(&z2) || !v1.Equal(&v2) {
		t.Fatal("identical transcript inputs produced different challenges")
	}
}

func TestTranscriptDiffersOnDifferentPublicInputs(t *testing.T) {
	var pi1, pi2 fr.Element
	pi1.SetUint64(99)
	pi2.SetUint64(100)
	b1, g1, a1, zc1, z1, v1 := runRounds(t, []fr.Element{pi1})
	b2, g2, a2, zc2, z2, v2 := runRounds(t, []fr.Element{pi2})

	if b1.Equal(&b2) && g1.Equal(&g2) && a1.Equal(&a2) && zc1.Equal(&zc2) && z1.Equal(&z2) && v1.Equal(&v2) {
		t.Fatal("different public inputs produced identical challenges")
	}
}
