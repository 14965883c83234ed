package circuit

import (
	"bytes"
	"fmt"

	"github.com/consensys/compress/lzss"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
)

// CommonPreprocessedInput (pk) is the circuit-dependent, witness-independent
// data the prover and verifier share: the five selector polynomials and the
// three permutation polynomials, all Lagrange basis of size GroupOrder.
// Immutable once built; safe to share by reference across concurrently
// running independent proofs.
type CommonPreprocessedInput struct {
	GroupOrder uint64

	QL, QR, QM, QO, QC *poly.Polynomial
	S1, S2, S3         *poly.Polynomial
}

// Validate checks every selector/permutation polynomial is Lagrange basis
// of size GroupOrder.
func (pk *CommonPreprocessedInput) Validate() error {
	cols := map[string]*poly.Polynomial{
		"QL": pk.QL, "QR": pk.QR, "QM": pk.QM, "QO": pk.QO, "QC": pk.QC,
		"S1": pk.S1, "S2": pk.S2, "S3": pk.S3,
	}
	for name, p := range cols {
		if p.Basis != poly.Lagrange {
			return fmt.Errorf("%w: %s is %s, want Lagrange", plonkerr.ErrPolynomialBasisMismatch, name, p.Basis)
		}
		if uint64(p.Size()) != pk.GroupOrder {
			return fmt.Errorf("%w: %s has size %d, group order %d", plonkerr.ErrPolynomialSizeMismatch, name, p.Size(), pk.GroupOrder)
		}
	}
	return nil
}

// columnOrder is the fixed serialization order used by Save/Load.
var columnOrder = []string{"QL", "QR", "QM", "QO", "QC", "S1", "S2", "S3"}

func (pk *CommonPreprocessedInput) columns() map[string]*poly.Polynomial {
	return map[string]*poly.Polynomial{
		"QL": pk.QL, "QR": pk.QR, "QM": pk.QM, "QO": pk.QO, "QC": pk.QC,
		"S1": pk.S1, "S2": pk.S2, "S3": pk.S3,
	}
}

// Save serializes pk to a compact on-disk form. Since §3 of the prover
// spec treats pk as immutable and shareable, a circuit's preprocessed
// input is naturally something a deployment persists once and reloads
// across many proving sessions rather than rebuilding per proof; the raw
// field-element columns compress well because selector columns are sparse
// (mostly 0/1/-1) and permutation columns have long runs of consecutive
// roots of unity.
func (pk *CommonPreprocessedInput) Save() ([]byte, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	var raw bytes.Buffer
	fmt.Fprintf(&raw, "%d\n", pk.GroupOrder)
	cols := pk.columns()
	for _, name := range columnOrder {
		for _, v := range cols[name].Values {
			b := v.Bytes()
			raw.Write(b[:])
		}
	}
	c, err := lzss.NewCompressor(nil, lzss.BestCompression)
	if err != nil {
		return nil, err
	}
	return c.Compress(raw.Bytes())
}

// Load is the inverse of Save.
func (pk *CommonPreprocessedInput) Load(data []byte) error {
	raw, err := lzss.Decompress(data, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", plonkerr.ErrSetupFileMalformed, err)
	}

	nl := bytes.IndexByte(raw, '\n')
	if nl < 0 {
		return fmt.Errorf("%w: missing group order header", plonkerr.ErrSetupFileMalformed)
	}
	var groupOrder uint64
	if _, err := fmt.Sscanf(string(raw[:nl]), "%d", &groupOrder); err != nil {
		return fmt.Errorf("%w: %v", plonkerr.ErrSetupFileMalformed, err)
	}
	body := raw[nl+1:]

	const elemSize = fr.Bytes
	want := int(groupOrder) * elemSize * len(columnOrder)
	if len(body) != want {
		return fmt.Errorf("%w: expected %d bytes of columns, got %d", plonkerr.ErrSetupFileMalformed, want, len(body))
	}

	decoded := make(map[string]*poly.Polynomial, len(columnOrder))
	for i, name := range columnOrder {
		values := make([]fr.Element, groupOrder)
		for j := range values {
			off := i*int(groupOrder)*elemSize + j*elemSize
			var buf [fr.Bytes]byte
			copy(buf[:], body[off:off+elemSize])
			values[j].SetBytes(buf[:])
		}
		decoded[name] = &poly.Polynomial{Basis: poly.Lagrange, Values: values}
	}

	pk.GroupOrder = groupOrder
	pk.QL, pk.QR, pk.QM, pk.QO, pk.QC = decoded["QL"], decoded["QR"], decoded["QM"], decoded["QO"], decoded["QC"]
	pk.S1, pk.S2, pk.S3 = decoded["S1"], decoded["S2"], decoded["S3"]
	return pk.Validate()
}
