package kzg

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/icza/bitio"
	"golang.org/x/sync/errgroup"

	"github.com/plonkworks/bn254-prover/plonkerr"
)

// Byte layout of a snarkjs-style .ptau trusted setup file: see
// https://github.com/iden3/snarkjs#7-prepare-phase-2. Byte 60 holds
// log2(d); the 2d G1 field-element limbs (x0,y0,x1,y1,...) start at byte
// 80; the G2 section follows, located by a sentinel scan because its
// start position isn't fixed by a header field.
const (
	setupFilePowersPos    = 60
	setupFileG1StartPos   = 80
	g1LimbSize            = 32
	g2LimbSize            = 32
	g2SentinelSearchLimbs = 4
)

// LoadSetupFile reads and parses a trusted setup file from disk.
func LoadSetupFile(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plonkerr.ErrSetupFileMalformed, err)
	}
	return ParseSetupFile(data)
}

// ParseSetupFile decodes the in-memory contents of a trusted setup file,
// validating every curve point lies on its respective curve.
func ParseSetupFile(data []byte) (*Setup, error) {
	if len(data) <= setupFilePowersPos {
		return nil, fmt.Errorf("%w: file too short for header", plonkerr.ErrSetupFileMalformed)
	}

	logD := data[setupFilePowersPos]
	d := 1 << logD

	g1End := setupFileG1StartPos + g1LimbSize*d*2
	if len(data) < g1End {
		return nil, fmt.Errorf("%w: file too short for %d G1 points", plonkerr.ErrSetupFileMalformed, d)
	}

	limbs, err := readLimbsLE(data[setupFileG1StartPos:g1End], g1LimbSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plonkerr.ErrSetupFileMalformed, err)
	}

	_, _, g1Gen, g2Gen := bn254.Generators()

	var rawX0 fp.Element
	rawX0.SetBigInt(limbs[0])
	var factor fp.Element
	factor.Div(&rawX0, &g1Gen.X)
	if factor.IsZero() {
		return nil, fmt.Errorf("%w: zero montgomery factor", plonkerr.ErrSetupFileMalformed)
	}
	var factorInv fp.Element
	factorInv.Inverse(&factor)

	powers := make([]bn254.G1Affine, d)
	for i := 0; i < d; i++ {
		var x, y fp.Element
		x.SetBigInt(limbs[2*i])
		y.SetBigInt(limbs[2*i+1])
		x.Mul(&x, &factorInv)
		y.Mul(&y, &factorInv)
		powers[i].X = x
		powers[i].Y = y
	}

	if err := validateG1Points(powers); err != nil {
		return nil, err
	}

	// G2 sentinel: the first G2 generator X-coordinate (c0) scaled by the
	// same factor, found by scanning the trailing bytes byte-by-byte.
	var targetLimb fp.Element
	targetLimb.Mul(&g2Gen.X.A0, &factor)
	targetBytes := fieldToLE(&targetLimb)

	pos := g1End
	found := -1
	for pos+g1LimbSize <= len(data) {
		if bytes.Equal(data[pos:pos+g1LimbSize], targetBytes) {
			found = pos
			break
		}
		pos++
	}
	if found < 0 {
		return nil, fmt.Errorf("%w: G2 sentinel not found", plonkerr.ErrSetupFileMalformed)
	}

	x2Start := found + g2LimbSize*g2SentinelSearchLimbs
	x2End := x2Start + g2LimbSize*g2SentinelSearchLimbs
	if len(data) < x2End {
		return nil, fmt.Errorf("%w: file too short for X2", plonkerr.ErrSetupFileMalformed)
	}
	x2Limbs, err := readLimbsLE(data[x2Start:x2End], g2LimbSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plonkerr.ErrSetupFileMalformed, err)
	}

	var x2 bn254.G2Affine
	x2.X.A0.SetBigInt(x2Limbs[0])
	x2.X.A1.SetBigInt(x2Limbs[1])
	x2.Y.A0.SetBigInt(x2Limbs[2])
	x2.Y.A1.SetBigInt(x2Limbs[3])
	x2.X.A0.Mul(&x2.X.A0, &factorInv)
	x2.X.A1.Mul(&x2.X.A1, &factorInv)
	x2.Y.A0.Mul(&x2.Y.A0, &factorInv)
	x2.Y.A1.Mul(&x2.Y.A1, &factorInv)

	if !x2.IsOnCurve() {
		return nil, fmt.Errorf("%w: X2 point not on curve", plonkerr.ErrSetupFileMalformed)
	}

	return &Setup{PowersOfX: powers, X2: x2}, nil
}

// readLimbsLE splits buf into limbSize-byte little-endian chunks and decodes
// each as a big.Int, using icza/bitio for the sequential read and checking
// the error of every read.
func readLimbsLE(buf []byte, limbSize int) ([]*big.Int, error) {
	r := bitio.NewReader(bytes.NewReader(buf))
	limbs := make([]*big.Int, len(buf)/limbSize)
	chunk := make([]byte, limbSize)
	for i := range limbs {
		if _, err := r.Read(chunk); err != nil {
			return nil, err
		}
		limbs[i] = new(big.Int).SetBytes(reversed(chunk))
	}
	return limbs, nil
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func fieldToLE(e *fp.Element) []byte {
	bi := new(big.Int)
	e.BigInt(bi)
	be := bi.Bytes()
	out := make([]byte, g1LimbSize)
	copy(out[g1LimbSize-len(be):], be)
	return reversed(out)
}

// validateG1Points asserts every point lies on the BN254 G1 curve,
// validating in parallel since this runs once at setup-load time over
// potentially hundreds of thousands of points.
func validateG1Points(points []bn254.G1Affine) error {
	g, _ := errgroup.WithContext(context.Background())
	const chunkSize = 4096
	for start := 0; start < len(points); start += chunkSize {
		start := start
		end := start + chunkSize
		if end > len(points) {
			end = len(points)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if !points[i].IsOnCurve() {
					return fmt.Errorf("%w: G1 point %d not on curve", plonkerr.ErrSetupFileMalformed, i)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
