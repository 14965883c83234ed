// Package prover implements the five-round PLONK proving protocol: given a
// trusted setup, a circuit's preprocessed input and a satisfying witness, it
// produces a proof.Proof. Round order and the data each round threads to the
// next follow the protocol exactly; see round1.go..round5.go for the
// per-round math.
package prover

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/plonkworks/bn254-prover/backend"
	"github.com/plonkworks/bn254-prover/circuit"
	"github.com/plonkworks/bn254-prover/kzg"
	"github.com/plonkworks/bn254-prover/logger"
	"github.com/plonkworks/bn254-prover/plonkerr"
	"github.com/plonkworks/bn254-prover/poly"
	"github.com/plonkworks/bn254-prover/proof"
	"github.com/plonkworks/bn254-prover/transcript"
)

// Prover is a single-use proving session over one (setup, program, pk)
// triple. Build with New, consume with Prove; a second Prove call returns
// ErrProverNotSingleUse rather than silently reusing transcript state.
type Prover struct {
	cfg     backend.ProverConfig
	setup   *kzg.Setup
	program circuit.Program
	pk      *circuit.CommonPreprocessedInput

	domain   *poly.Domain
	extended *poly.Domain

	used bool

	tr *transcript.Transcript

	pi      *poly.Polynomial
	a, b, c *poly.Polynomial

	beta, gamma fr.Element

	z *poly.Polynomial

	alpha, zetaCos fr.Element

	t1, t2, t3 *poly.Polynomial

	zeta fr.Element

	aBar, bBar, cBar, s1Bar, s2Bar, zOmegaBar fr.Element

	v fr.Element
}

// New builds a Prover for the given trusted setup, circuit program and
// preprocessed input, applying opts over backend's default ProverConfig.
func New(setup *kzg.Setup, program circuit.Program, pk *circuit.CommonPreprocessedInput, opts ...backend.ProverOption) (*Prover, error) {
	cfg, err := backend.NewProverConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	domain, err := poly.NewDomain(pk.GroupOrder)
	if err != nil {
		return nil, err
	}
	extended, err := domain.ExtendedDomain()
	if err != nil {
		return nil, err
	}
	return &Prover{
		cfg:      cfg,
		setup:    setup,
		program:  program,
		pk:       pk,
		domain:   domain,
		extended: extended,
	}, nil
}

// Prove runs the five rounds over witness and returns the finished proof.
func (p *Prover) Prove(witness circuit.Witness) (*proof.Proof, error) {
	if p.used {
		return nil, plonkerr.ErrProverNotSingleUse
	}
	p.used = true

	// Defensive copy: the public-input polynomial, the transcript binding
	// and round1 all read witness, so a caller mutating its map
	// concurrently with Prove must not be able to change what gets proved.
	witness = witness.Clone()
	labels := witness.Labels()
	slices.Sort(labels)

	log := logger.Logger().With().Uint64("group_order", p.pk.GroupOrder).Int("witness_labels", len(labels)).Logger()

	var err error
	if p.tr, err = transcript.New(p.cfg.HashFactory()); err != nil {
		return nil, fmt.Errorf("prover: %w", err)
	}

	publicInputs := p.buildPublicInputPolynomial(witness)
	p.pi = publicInputs

	pkCommitments, err := p.commitPreprocessed()
	if err != nil {
		return nil, fmt.Errorf("prover: commit preprocessed input: %w", err)
	}
	// Bind the raw witness values (not buildPublicInputPolynomial's negated
	// Lagrange coefficients) so a caller reconstructing the transcript from
	// the public inputs it actually knows — see verifier.Verify — binds the
	// same bytes the prover did.
	piValues := make([]fr.Element, 0, len(p.program.PublicAssignments()))
	for _, label := range p.program.PublicAssignments() {
		piValues = append(piValues, witness.Get(label))
	}
	if err := p.tr.BindPreprocessed(
		pkCommitments.ql, pkCommitments.qr, pkCommitments.qm, pkCommitments.qo, pkCommitments.qc,
		pkCommitments.s1, pkCommitments.s2, pkCommitments.s3, piValues,
	); err != nil {
		return nil, fmt.Errorf("prover: %w", err)
	}

	a1, b1, c1, err := p.round1(witness)
	if err != nil {
		return nil, fmt.Errorf("prover: round 1: %w", err)
	}
	if p.beta, p.gamma, err = p.tr.Round1(a1, b1, c1); err != nil {
		return nil, fmt.Errorf("prover: round 1: %w", err)
	}
	log.Debug().Msg("round 1 complete")

	z1, err := p.round2()
	if err != nil {
		return nil, fmt.Errorf("prover: round 2: %w", err)
	}
	if p.alpha, p.zetaCos, err = p.tr.Round2(z1); err != nil {
		return nil, fmt.Errorf("prover: round 2: %w", err)
	}
	log.Debug().Msg("round 2 complete")

	t1c, t2c, t3c, err := p.round3()
	if err != nil {
		return nil, fmt.Errorf("prover: round 3: %w", err)
	}
	if p.zeta, err = p.tr.Round3(t1c, t2c, t3c); err != nil {
		return nil, fmt.Errorf("prover: round 3: %w", err)
	}
	log.Debug().Msg("round 3 complete")

	if err := p.round4(); err != nil {
		return nil, fmt.Errorf("prover: round 4: %w", err)
	}
	if p.v, err = p.tr.Round4(p.aBar, p.bBar, p.cBar, p.s1Bar, p.s2Bar, p.zOmegaBar); err != nil {
		return nil, fmt.Errorf("prover: round 4: %w", err)
	}
	log.Debug().Msg("round 4 complete")

	wZeta, wZetaOmega, err := p.round5()
	if err != nil {
		return nil, fmt.Errorf("prover: round 5: %w", err)
	}
	log.Debug().Msg("round 5 complete, proof assembled")

	return &proof.Proof{
		A: a1, B: b1, C: c1,
		Z:  z1,
		T1: t1c, T2: t2c, T3: t3c,
		ABar: p.aBar, BBar: p.bBar, CBar: p.cBar,
		S1Bar: p.s1Bar, S2Bar: p.s2Bar, ZOmegaBar: p.zOmegaBar,
		WZeta: wZeta, WZetaOmega: wZetaOmega,
	}, nil
}

// buildPublicInputPolynomial builds the PI polynomial: -witness[v] at each
// public-input slot (the first len(PublicAssignments()) gate rows), zero
// elsewhere. Negating here lets the gate identity stay a plain sum in round 1
// and round 3 instead of needing a subtraction.
func (p *Prover) buildPublicInputPolynomial(witness circuit.Witness) *poly.Polynomial {
	n := int(p.domain.Size)
	out := poly.Zero(poly.Lagrange, n)
	for i, label := range p.program.PublicAssignments() {
		v := witness.Get(label)
		out.Values[i].Neg(&v)
	}
	return out
}

type preprocessedCommitments struct {
	ql, qr, qm, qo, qc, s1, s2, s3 bn254.G1Affine
}

// commitPreprocessed commits to the eight preprocessed columns in parallel;
// none depends on another, and all must land in the transcript before round
// 1 per SPEC_FULL.md's resolution of the upstream "hash pk and PI" question.
func (p *Prover) commitPreprocessed() (preprocessedCommitments, error) {
	var out preprocessedCommitments
	targets := []struct {
		src *poly.Polynomial
		dst *bn254.G1Affine
	}{
		{p.pk.QL, &out.ql}, {p.pk.QR, &out.qr}, {p.pk.QM, &out.qm}, {p.pk.QO, &out.qo},
		{p.pk.QC, &out.qc}, {p.pk.S1, &out.s1}, {p.pk.S2, &out.s2}, {p.pk.S3, &out.s3},
	}

	var g errgroup.Group
	for _, t := range targets {
		t := t
		g.Go(func() error {
			c, err := p.setup.CommitLagrange(t.src, p.domain)
			if err != nil {
				return err
			}
			*t.dst = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return preprocessedCommitments{}, err
	}
	return out, nil
}

// rlc computes the random linear combination term+beta*shift+gamma used
// throughout the permutation argument.
func rlc(term, shift, beta, gamma fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&shift, &beta)
	out.Add(&out, &term)
	out.Add(&out, &gamma)
	return out
}

// polyRLC computes term + beta*shift + gamma pointwise; term and shift must
// share basis and size.
func polyRLC(term, shift *poly.Polynomial, beta, gamma fr.Element) (*poly.Polynomial, error) {
	scaled := poly.MulScalar(shift, beta)
	out, err := poly.Add(term, scaled)
	if err != nil {
		return nil, err
	}
	return poly.AddScalar(out, gamma), nil
}
