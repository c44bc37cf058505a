package proof

import (
	"fmt"
	"time"

	"subsetsum-zk/internal/hashx"
	"subsetsum-zk/merkle"
	"subsetsum-zk/params"
	"subsetsum-zk/prof"
	"subsetsum-zk/witness"

	"golang.org/x/sync/errgroup"
)

// RoundCheck holds the outcome of every check of one round.
type RoundCheck struct {
	Challenge bool // stored challenge matches the replayed transcript
	Step      bool // opened values are consistent with the problem
	PathA     bool
	PathB     bool
}

// OK reports whether every check of the round passed.
func (rc RoundCheck) OK() bool {
	return rc.Challenge && rc.Step && rc.PathA && rc.PathB
}

// Report collects per-round results. Every round is checked even after a
// failure.
type Report struct {
	Rounds []RoundCheck
}

// OK reports whether every round passed.
func (r *Report) OK() bool {
	ok := len(r.Rounds) > 0
	for _, rc := range r.Rounds {
		ok = rc.OK() && ok
	}
	return ok
}

// Failures lists the indices of failed rounds.
func (r *Report) Failures() []int {
	var out []int
	for i, rc := range r.Rounds {
		if !rc.OK() {
			out = append(out, i)
		}
	}
	return out
}

// Verifier checks proofs for one parameter set. It holds no randomness and
// rejects proofs with fewer than NumQueries rounds.
type Verifier struct {
	params params.Params
	h      hashx.Hasher
}

// NewVerifier validates p and returns a verifier.
func NewVerifier(p params.Params) (*Verifier, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("proof: %w", err)
	}
	return &Verifier{params: p, h: hashx.MustByName(p.Hash)}, nil
}

// Verify reports whether pf is a valid proof for problem. Soundness failures
// return false with a nil error; malformed proofs return an error.
func (v *Verifier) Verify(problem []int64, pf *Proof) (bool, error) {
	rep, err := v.Check(problem, pf)
	if err != nil {
		return false, err
	}
	if !rep.OK() {
		dbg("rejected rounds %v", rep.Failures())
	}
	return rep.OK(), nil
}

// Check replays the transcript and evaluates every check of every round.
func (v *Verifier) Check(problem []int64, pf *Proof) (*Report, error) {
	defer prof.Track(time.Now(), "proof.Check")
	if err := v.checkShape(problem, pf); err != nil {
		return nil, err
	}
	n := len(problem)
	size := n + 1

	// The transcript replay is sequential; the per-round checks are not.
	tr := NewTranscript(v.h, problem)
	expected := make([]int, len(pf.Rounds))
	for i, rd := range pf.Rounds {
		expected[i] = tr.Challenge(size)
		tr.Append(rd.Root, rd.Challenge)
	}

	rep := &Report{Rounds: make([]RoundCheck, len(pf.Rounds))}
	var eg errgroup.Group
	eg.SetLimit(v.params.Workers)
	for i := range pf.Rounds {
		i := i
		eg.Go(func() error {
			rd := &pf.Rounds[i]
			c := rd.Challenge
			rc := RoundCheck{Challenge: expected[i] == c}
			if c < n {
				rc.Step = witness.AbsDiff(rd.ValueA, rd.ValueB) == uint64(problem[c])
			} else {
				rc.Step = rd.ValueA == rd.ValueB
			}
			rc.PathA = merkle.VerifyPath(v.h, rd.Root, size, c, rd.ValueA, rd.PathA)
			rc.PathB = merkle.VerifyPath(v.h, rd.Root, size, (c+1)%size, rd.ValueB, rd.PathB)
			rep.Rounds[i] = rc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

func (v *Verifier) checkShape(problem []int64, pf *Proof) error {
	if err := witness.CheckProblem(problem); err != nil {
		return err
	}
	if pf == nil || len(pf.Rounds) == 0 {
		return fmt.Errorf("%w: no rounds", ErrMalformedProof)
	}
	if len(pf.Rounds) < v.params.NumQueries {
		return fmt.Errorf("%w: %d rounds, want at least %d", ErrMalformedProof, len(pf.Rounds), v.params.NumQueries)
	}
	if pf.Hash != v.h.Name() {
		return fmt.Errorf("%w: proof uses %q, verifier uses %q", ErrHashMismatch, pf.Hash, v.h.Name())
	}
	n := len(problem)
	for i, rd := range pf.Rounds {
		if rd.Challenge < 0 || rd.Challenge > n {
			return fmt.Errorf("%w: round %d challenge %d not in [0,%d]", ErrMalformedProof, i, rd.Challenge, n)
		}
	}
	return nil
}
