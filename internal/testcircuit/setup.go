package testcircuit

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/kzg"
)

// TrustedSetup builds an in-memory kzg.Setup from a known toxic-waste
// scalar tau, the same (g1, g1*tau, g1*tau^2, ...) powers a real ceremony
// produces, just without the multi-party computation. Tests use this
// instead of a .ptau file because the prover test suite never needs the
// setup to actually be trustworthy.
func TrustedSetup(tau int64, size int) (*kzg.Setup, error) {
	var tauFr fr.Element
	tauFr.SetInt64(tau)

	_, _, g1Gen, g2Gen := bn254.Generators()

	powers := make([]bn254.G1Affine, size)
	var tauPow fr.Element
	tauPow.SetOne()
	for i := 0; i < size; i++ {
		powers[i].ScalarMultiplication(&g1Gen, tauPow.BigInt(new(big.Int)))
		tauPow.Mul(&tauPow, &tauFr)
	}

	var x2 bn254.G2Affine
	x2.ScalarMultiplication(&g2Gen, tauFr.BigInt(new(big.Int)))

	return &kzg.Setup{PowersOfX: powers, X2: x2}, nil
}
