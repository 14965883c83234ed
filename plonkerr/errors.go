// Package plonkerr defines the sentinel errors surfaced by the prover.
//
// Every error here is fatal: the prover never retries or recovers from one.
// Callers should wrap these with fmt.Errorf("...: %w", ...) to attach the
// context (which round, which polynomial) without losing errors.Is matching.
package plonkerr

import "errors"

var (
	// ErrWitnessDoesNotSatisfyCircuit is returned by round 1 when the gate
	// check A*QL + B*QR + A*B*QM + C*QO + PI + QC != 0 on the evaluation
	// domain. A malicious or buggy witness triggers this.
	ErrWitnessDoesNotSatisfyCircuit = errors.New("plonk: witness does not satisfy circuit")

	// ErrPermutationProductDidNotClose is returned by round 2 when the
	// grand-product accumulator does not wrap around to 1.
	ErrPermutationProductDidNotClose = errors.New("plonk: permutation grand product did not close")

	// ErrQuotientDegreeOverflow is returned when the quotient or
	// linearization polynomial has non-zero coefficients above the degree
	// bound the protocol allows.
	ErrQuotientDegreeOverflow = errors.New("plonk: quotient polynomial degree overflow")

	// ErrPolynomialBasisMismatch is returned when an operation is attempted
	// between polynomials in different bases.
	ErrPolynomialBasisMismatch = errors.New("plonk: polynomial basis mismatch")

	// ErrPolynomialSizeMismatch is returned when an operation is attempted
	// between polynomials of different sizes.
	ErrPolynomialSizeMismatch = errors.New("plonk: polynomial size mismatch")

	// ErrDivisionByZeroOnCoset is returned when pointwise division
	// encounters a zero divisor evaluation, which signals an invalid
	// ζ_cos or ζ choice.
	ErrDivisionByZeroOnCoset = errors.New("plonk: division by zero evaluation on coset")

	// ErrSetupTooSmall is returned when a polynomial to commit is larger
	// than the number of available SRS powers.
	ErrSetupTooSmall = errors.New("plonk: trusted setup too small for commitment")

	// ErrSetupFileMalformed is returned by the trusted-setup file loader
	// when the binary layout does not match the expected format.
	ErrSetupFileMalformed = errors.New("plonk: trusted setup file malformed")

	// ErrInvalidGroupOrder is returned when a requested domain size is not
	// a power of two, or does not divide the scalar field's 2-adicity.
	ErrInvalidGroupOrder = errors.New("plonk: group order must be a power of two dividing the scalar field's 2-adic order")

	// ErrProverNotSingleUse is returned when Prove is invoked more than
	// once on the same Prover instance.
	ErrProverNotSingleUse = errors.New("plonk: prover instance already consumed")

	// ErrVerificationFailed is returned by the test-only verifier helper
	// when either of its two KZG opening pairing checks does not hold.
	ErrVerificationFailed = errors.New("plonk: proof verification failed")
)
