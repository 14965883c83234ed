// Package transcript implements the prover's Fiat-Shamir absorb/squeeze
// object: a domain-separated running hash that turns the five interactive
// PLONK rounds into a non-interactive protocol. The hash itself is a
// pluggable collaborator (see backend.ProverConfig.HashFactory); this
// package only fixes the absorb order and challenge names, which the
// verifier must mirror exactly.
package transcript

import (
	"fmt"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// domainTag seeds the transcript so a PLONK proof can never be replayed
// against a different protocol sharing the same hash function.
const domainTag = "plonk"

// challenge names, declared upfront as gnark-crypto's fiat-shamir
// Transcript requires.
const (
	challengeBeta    = "beta"
	challengeGamma   = "gamma"
	challengeAlpha   = "alpha"
	challengeZetaCos = "zeta_cos"
	challengeZeta    = "zeta"
	challengeV       = "v"
)

// Transcript is the prover's single-use Fiat-Shamir object: one per `prove`
// call, rounds applied strictly in order.
type Transcript struct {
	fs *fiatshamir.Transcript
}

// New builds a fresh Transcript over hFunc (reset and ready to use), seeded
// with the domain-separation tag "plonk".
func New(hFunc hash.Hash) (*Transcript, error) {
	hFunc.Reset()
	fs := fiatshamir.NewTranscript(hFunc, challengeBeta, challengeGamma, challengeAlpha, challengeZetaCos, challengeZeta, challengeV)
	t := &Transcript{fs: fs}
	if err := t.bindAll([]byte(domainTag)); err != nil {
		return nil, err
	}
	return t, nil
}

// BindPreprocessed absorbs the eight preprocessed-input commitments and the
// public inputs before round 1. This resolves the upstream implementation's
// open "hash pk and PI into the transcript" question: omitting it would let
// a prover reuse challenges across circuits or public inputs that share the
// same wire commitments.
func (t *Transcript) BindPreprocessed(ql, qr, qm, qo, qc, s1, s2, s3 bn254.G1Affine, publicInputs []fr.Element) error {
	for _, c := range []bn254.G1Affine{ql, qr, qm, qo, qc, s1, s2, s3} {
		if err := t.bindAll(c.Marshal()); err != nil {
			return err
		}
	}
	for i := range publicInputs {
		b := publicInputs[i].Bytes()
		if err := t.bindAll(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// Round1 absorbs msg_1 = ([A]_1, [B]_1, [C]_1) and squeezes (beta, gamma).
func (t *Transcript) Round1(a, b, c bn254.G1Affine) (beta, gamma fr.Element, err error) {
	for _, p := range []bn254.G1Affine{a, b, c} {
		if err = t.bind(challengeBeta, p.Marshal()); err != nil {
			return
		}
	}
	beta, err = t.squeeze(challengeBeta)
	if err != nil {
		return
	}
	gamma, err = t.squeeze(challengeGamma)
	return
}

// Round2 absorbs msg_2 = [Z]_1 and squeezes (alpha, zeta_cos).
func (t *Transcript) Round2(z bn254.G1Affine) (alpha, zetaCos fr.Element, err error) {
	if err = t.bind(challengeAlpha, z.Marshal()); err != nil {
		return
	}
	alpha, err = t.squeeze(challengeAlpha)
	if err != nil {
		return
	}
	zetaCos, err = t.squeeze(challengeZetaCos)
	return
}

// Round3 absorbs msg_3 = ([T1]_1, [T2]_1, [T3]_1) and squeezes zeta.
func (t *Transcript) Round3(t1, t2, t3 bn254.G1Affine) (zeta fr.Element, err error) {
	for _, p := range []bn254.G1Affine{t1, t2, t3} {
		if err = t.bind(challengeZeta, p.Marshal()); err != nil {
			return
		}
	}
	zeta, err = t.squeeze(challengeZeta)
	return
}

// Round4 absorbs msg_4 = (abar, bbar, cbar, s1bar, s2bar, zOmegaBar) and
// squeezes v.
func (t *Transcript) Round4(aBar, bBar, cBar, s1Bar, s2Bar, zOmegaBar fr.Element) (v fr.Element, err error) {
	for _, e := range []fr.Element{aBar, bBar, cBar, s1Bar, s2Bar, zOmegaBar} {
		b := e.Bytes()
		if err = t.bind(challengeV, b[:]); err != nil {
			return
		}
	}
	v, err = t.squeeze(challengeV)
	return
}

func (t *Transcript) bind(challenge string, data []byte) error {
	if err := t.fs.Bind(challenge, data); err != nil {
		return fmt.Errorf("transcript: bind %s: %w", challenge, err)
	}
	return nil
}

// bindAll binds data to every declared challenge, used for the
// pre-round-1 preprocessed-input/public-input absorption which must
// influence every subsequent squeeze.
func (t *Transcript) bindAll(data []byte) error {
	for _, name := range []string{challengeBeta, challengeGamma, challengeAlpha, challengeZetaCos, challengeZeta, challengeV} {
		if err := t.fs.Bind(name, data); err != nil {
			return fmt.Errorf("transcript: bind %s: %w", name, err)
		}
	}
	return nil
}

func (t *Transcript) squeeze(challenge string) (fr.Element, error) {
	b, err := t.fs.ComputeChallenge(challenge)
	if err != nil {
		return fr.Element{}, fmt.Errorf("transcript: compute %s: %w", challenge, err)
	}
	var e fr.Element
	e.SetBytes(b)
	return e, nil
}
