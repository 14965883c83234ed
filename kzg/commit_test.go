package kzg_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/plonkworks/bn254-prover/internal/testcircuit"
	"github.com/plonkworks/bn254-prover/kzg"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

func TestCommitIsLinear(t *testing.T) {
	setup, err := testcircuit.TrustedSetup(13, 8)
	require.NoError(t, err, "trusted setup")

	p := make([]fr.Element, 4)
	q := make([]fr.Element, 4)
	sum := make([]fr.Element, 4)
	for i := range p {
		p[i].SetUint64(uint64(i + 1))
		q[i].SetUint64(uint64(2*i + 3))
		sum[i].Add(&p[i], &q[i])
	}

	commitP, err := setup.Commit(p)
	require.NoError(t, err, "commit p")
	commitQ, err := setup.Commit(q)
	require.NoError(t, err, "commit q")
	commitSum, err := setup.Commit(sum)
	require.NoError(t, err, "commit sum")

	var want bn254.G1Jac
	want.FromAffine(&commitP)
	var qJac bn254.G1Jac
	qJac.FromAffine(&commitQ)
	want.AddAssign(&qJac)

	var wantAffine bn254.G1Affine
	wantAffine.FromJacobian(&want)

	if !wantAffine.Equal(&commitSum) {
		t.Fatalf("commit(p)+commit(q) != commit(p+q): got %v, want %v", commitSum, wantAffine)
	}
}

func TestCommitScalarMultiple(t *testing.T) {
	setup, err := testcircuit.TrustedSetup(13, 8)
	require.NoError(t, err, "trusted setup")

	p := make([]fr.Element, 4)
	for i := range p {
		p[i].SetUint64(uint64(i + 1))
	}
	var c fr.Element
	c.SetUint64(7)
	scaled := make([]fr.Element, 4)
	for i := range p {
		scaled[i].Mul(&p[i], &c)
	}

	commitP, err := setup.Commit(p)
	require.NoError(t, err, "commit p")
	commitScaled, err := setup.Commit(scaled)
	require.NoError(t, err, "commit scaled")

	var want bn254.G1Affine
	want.ScalarMultiplication(&commitP, c.BigInt(new(big.Int)))

	if !want.Equal(&commitScaled) {
		t.Fatalf("commit(c*p) != c*commit(p): got %v, want %v", commitScaled, want)
	}
}

func TestCommitRejectsPolynomialLargerThanSetup(t *testing.T) {
	setup, err := testcircuit.TrustedSetup(13, 4)
	require.NoError(t, err, "trusted setup")

	values := make([]fr.Element, 8)
	for i := range values {
		values[i].SetUint64(uint64(i))
	}
	_, err = setup.Commit(values)
	if !errors.Is(err, plonkerr.ErrSetupTooSmall) {
		t.Fatalf("expected ErrSetupTooSmall, got %v", err)
	}
}

func TestCommitLagrangeMatchesCommitPolynomialAfterIFFT(t *testing.T) {
	setup, err := testcircuit.TrustedSetup(13, 8)
	require.NoError(t, err, "trusted setup")
	domain, err := poly.NewDomain(8)
	require.NoError(t, err, "new domain")

	values := make([]fr.Element, 8)
	for i := range values {
		values[i].SetUint64(uint64(i + 1))
	}
	lag := &poly.Polynomial{Basis: poly.Lagrange, Values: values}

	got, err := setup.CommitLagrange(lag, domain)
	require.NoError(t, err, "commit lagrange")

	mono, err := poly.IFFT(lag, domain)
	require.NoError(t, err, "ifft")
	want, err := setup.CommitPolynomial(mono)
	require.NoError(t, err, "commit polynomial")

	if !want.Equal(&got) {
		t.Fatalf("CommitLagrange disagrees with IFFT+CommitPolynomial: got %v, want %v", got, want)
	}
}

func TestCommitPolynomialRejectsNonMonomialBasis(t *testing.T) {
	setup, err := testcircuit.TrustedSetup(13, 8)
	require.NoError(t, err, "trusted setup")
	lag := poly.Zero(poly.Lagrange, 4)
	if _, err := setup.CommitPolynomial(lag); !errors.Is(err, plonkerr.ErrPolynomialBasisMismatch) {
		t.Fatalf("expected ErrPolynomialBasisMismatch, got %v", err)
	}
}
