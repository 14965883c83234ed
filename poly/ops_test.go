package poly_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/plonkworks/bn254-prover/poly"
)

// genFrElements builds a generator of size-n fr.Element slices from small
// uint64 values, small enough that a human reading a failing case's shrunk
// counterexample can still follow the arithmetic.
func genFrElements(n int) gopter.Gen {
	return gen.SliceOfN(n, gen.UInt64Range(0, 1<<20)).Map(func(words []uint64) []fr.Element {
		values := make([]fr.Element, len(words))
		for i, w := range words {
			values[i].SetUint64(w)
		}
		return values
	})
}

func TestFFTRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	const n = 8
	domain, err := poly.NewDomain(n)
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}

	properties.Property("IFFT(FFT(p)) recovers p", prop.ForAll(
		func(values []fr.Element) bool {
			m := &poly.Polynomial{Basis: poly.Monomial, Values: values}
			lag, err := poly.FFT(m, domain)
			if err != nil {
				t.Fatalf("fft: %v", err)
			}
			back, err := poly.IFFT(lag, domain)
			if err != nil {
				t.Fatalf("ifft: %v", err)
			}
			return back.Equal(m)
		},
		genFrElements(n),
	))

	properties.TestingRun(t)
}

func TestBarycentricEvalMatchesDirectEvaluationAtRootOfUnity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	const n = 8
	domain, err := poly.NewDomain(n)
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}

	properties.Property("barycentric_eval(p, omega^i) == p.Values[i]", prop.ForAll(
		func(values []fr.Element, i int) bool {
			lag := &poly.Polynomial{Basis: poly.Lagrange, Values: values}
			var omegaI fr.Element
			omegaI.SetOne()
			for j := 0; j < i%n; j++ {
				omegaI.Mul(&omegaI, &domain.Generator)
			}
			got, err := poly.BarycentricEval(lag, omegaI, domain)
			if err != nil {
				t.Fatalf("barycentric_eval: %v", err)
			}
			return got.Equal(&values[i%n])
		},
		genFrElements(n),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestCosetRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	const n = 8
	domain, err := poly.NewDomain(n)
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	extended, err := domain.ExtendedDomain()
	if err != nil {
		t.Fatalf("extended domain: %v", err)
	}
	var shift fr.Element
	shift.SetUint64(5)

	properties.Property("CosetExtendedLagrangeToCoeffs undoes ToCosetExtendedLagrange", prop.ForAll(
		func(values []fr.Element) bool {
			lag := &poly.Polynomial{Basis: poly.Lagrange, Values: values}
			mono, err := poly.IFFT(lag, domain)
			if err != nil {
				t.Fatalf("ifft: %v", err)
			}

			coset, err := poly.ToCosetExtendedLagrange(lag, shift, domain, extended)
			if err != nil {
				t.Fatalf("to coset: %v", err)
			}
			coeffs, err := poly.CosetExtendedLagrangeToCoeffs(coset, shift, extended)
			if err != nil {
				t.Fatalf("from coset: %v", err)
			}
			// coeffs has 4n entries; only the low n should be non-zero and
			// must match the original monomial coefficients.
			for i := n; i < len(coeffs.Values); i++ {
				if !coeffs.Values[i].IsZero() {
					return false
				}
			}
			for i := 0; i < n; i++ {
				if !coeffs.Values[i].Equal(&mono.Values[i]) {
					return false
				}
			}
			return true
		},
		genFrElements(n),
	))

	properties.TestingRun(t)
}

func TestShiftIsCyclicRotation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	const n = 8

	properties.Property("Shift(p, k).Values[i] == p.Values[(i+k) mod n]", prop.ForAll(
		func(values []fr.Element, k int) bool {
			lag := &poly.Polynomial{Basis: poly.Lagrange, Values: values}
			shifted, err := poly.Shift(lag, k)
			if err != nil {
				t.Fatalf("shift: %v", err)
			}
			for i := 0; i < n; i++ {
				if !shifted.Values[i].Equal(&values[(i+k)%n]) {
					return false
				}
			}
			return true
		},
		genFrElements(n),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func TestShiftByOneMatchesRoundTripThroughOmega(t *testing.T) {
	// Shift(p, 1) should equal re-sampling p's underlying monomial
	// polynomial at omega*x: a cross-check between Shift's direct index
	// rotation and the FFT/IFFT engine it is meant to be a cheap shortcut
	// for (round 3's Z(omega*X) term).
	const n = 8
	domain, err := poly.NewDomain(n)
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}

	values := make([]fr.Element, n)
	for i := range values {
		values[i].SetUint64(uint64(i + 1))
	}
	lag := &poly.Polynomial{Basis: poly.Lagrange, Values: values}

	shifted, err := poly.Shift(lag, 1)
	if err != nil {
		t.Fatalf("shift: %v", err)
	}

	mono, err := poly.IFFT(lag, domain)
	if err != nil {
		t.Fatalf("ifft: %v", err)
	}
	scaled := poly.Zero(poly.Monomial, n)
	var omegaPow fr.Element
	omegaPow.SetOne()
	for i := 0; i < n; i++ {
		scaled.Values[i].Mul(&mono.Values[i], &omegaPow)
		omegaPow.Mul(&omegaPow, &domain.Generator)
	}
	rebuilt, err := poly.FFT(scaled, domain)
	if err != nil {
		t.Fatalf("fft: %v", err)
	}
	if !rebuilt.Equal(shifted) {
		t.Fatalf("shift-by-1 disagrees with FFT(monomial scaled by omega^i): got %+v, want %+v", rebuilt.Values, shifted.Values)
	}
}
