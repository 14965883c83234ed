package kzg

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/poly"
)

// VerificationKey is the circuit-dependent data a verifier needs: commitments
// to the eight preprocessed columns, the setup's G2 point, and the domain's
// generator. It is not consumed anywhere in this module's prover-core path;
// it exists for the verifier test helper (see the verifier package) and for
// any out-of-module verifier built against the same CommonPreprocessedInput.
type VerificationKey struct {
	QL, QR, QM, QO, QC bn254.G1Affine
	S1, S2, S3         bn254.G1Affine
	X2                 bn254.G2Affine
	Omega              fr.Element
}

// VerificationKey commits to pk's eight preprocessed columns and bundles
// them with the setup's G2 point and the domain's generator, grounded on
// original_source/setup.py's Setup.verification_key().
func (s *Setup) VerificationKey(pk *circuit.CommonPreprocessedInput) (*VerificationKey, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	domain, err := poly.NewDomain(pk.GroupOrder)
	if err != nil {
		return nil, err
	}

	commit := func(p *poly.Polynomial) (bn254.G1Affine, error) {
		return s.CommitLagrange(p, domain)
	}

	var vk VerificationKey
	for _, col := range []struct {
		src *poly.Polynomial
		dst *bn254.G1Affine
	}{
		{pk.QL, &vk.QL}, {pk.QR, &vk.QR}, {pk.QM, &vk.QM}, {pk.QO, &vk.QO},
		{pk.QC, &vk.QC}, {pk.S1, &vk.S1}, {pk.S2, &vk.S2}, {pk.S3, &vk.S3},
	} {
		c, err := commit(col.src)
		if err != nil {
			return nil, err
		}
		*col.dst = c
	}
	vk.X2 = s.X2
	vk.Omega = domain.Generator
	return &vk, nil
}
