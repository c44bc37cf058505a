package proof

import (
	"fmt"
	"time"

	"subsetsum-zk/internal/hashx"
	"subsetsum-zk/merkle"
	"subsetsum-zk/params"
	"subsetsum-zk/prof"
	"subsetsum-zk/witness"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// Prover produces proofs for one parameter set. Its PRNG supplies all
// blinding randomness; inject a keyed PRNG for reproducible proofs.
type Prover struct {
	params params.Params
	h      hashx.Hasher
	prng   utils.PRNG
}

// NewProver validates p and returns a prover drawing from prng. A nil prng is
// replaced by a freshly keyed one.
func NewProver(p params.Params, prng utils.PRNG) (*Prover, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("proof: %w", err)
	}
	if prng == nil {
		var err error
		if prng, err = utils.NewPRNG(); err != nil {
			return nil, fmt.Errorf("proof: new prng: %w", err)
		}
	}
	return &Prover{params: p, h: hashx.MustByName(p.Hash), prng: prng}, nil
}

// Generate runs NumQueries rounds. Any precondition failure aborts the whole
// proof; no partial proof is returned.
func (pr *Prover) Generate(problem, assignment []int64) (*Proof, error) {
	defer prof.Track(time.Now(), "proof.Generate")
	tr := NewTranscript(pr.h, problem)
	out := &Proof{Hash: pr.h.Name(), Rounds: make([]Round, 0, pr.params.NumQueries)}
	for r := 0; r < pr.params.NumQueries; r++ {
		rd, err := pr.round(tr, problem, assignment)
		if err != nil {
			return nil, fmt.Errorf("proof: round %d: %w", r, err)
		}
		out.Rounds = append(out.Rounds, rd)
		dbg("round %d root=%s challenge=%d transcript=%d", r, rd.Root.Hex(), rd.Challenge, tr.Len())
	}
	return out, nil
}

func (pr *Prover) round(tr *Transcript, problem, assignment []int64) (Round, error) {
	defer prof.Track(time.Now(), "proof.round")
	w, err := witness.Generate(pr.prng, problem, assignment)
	if err != nil {
		return Round{}, err
	}
	mt, err := merkle.BuildMerkleTreeWithWorkers(pr.h, w, pr.prng, pr.params.Workers)
	if err != nil {
		return Round{}, err
	}
	root := mt.Root()
	size := mt.LogicalSize()

	c := tr.Challenge(size)
	a, pathA, err := mt.Open(c)
	if err != nil {
		return Round{}, err
	}
	b, pathB, err := mt.Open((c + 1) % size)
	if err != nil {
		return Round{}, err
	}
	tr.Append(root, c)

	return Round{Root: root, Challenge: c, ValueA: a, ValueB: b, PathA: pathA, PathB: pathB}, nil
}
