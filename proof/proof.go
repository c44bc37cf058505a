// Package proof implements the non-interactive subset-sum proof: a prover that
// commits to a freshly blinded witness every round and opens two adjacent
// values chosen by a Fiat–Shamir transcript, and a verifier that replays that
// transcript and checks every opening.
package proof

import (
	"errors"
	"log"
	"os"

	"subsetsum-zk/internal/hashx"
	"subsetsum-zk/merkle"
	"subsetsum-zk/params"
)

var (
	// ErrMalformedProof reports a proof whose shape cannot be checked at all.
	ErrMalformedProof = errors.New("proof: malformed proof")
	// ErrHashMismatch reports a proof built with a different hash primitive.
	ErrHashMismatch = errors.New("proof: hash primitive mismatch")
)

// Round is the prover's message for one query.
type Round struct {
	Root      hashx.Digest
	Challenge int   // witness index in [0, n]
	ValueA    int64 // witness[Challenge]
	ValueB    int64 // witness[(Challenge+1) mod (n+1)]
	PathA     merkle.Path
	PathB     merkle.Path
}

// Proof is the transcript-ordered list of rounds.
type Proof struct {
	Hash   string
	Rounds []Round
}

// Generate builds a proof with default parameters, numQueries rounds and a
// fresh random PRNG.
func Generate(problem, assignment []int64, numQueries int) (*Proof, error) {
	p := params.Default()
	p.NumQueries = numQueries
	pr, err := NewProver(p, nil)
	if err != nil {
		return nil, err
	}
	return pr.Generate(problem, assignment)
}

// Verify checks pf against problem using the hash primitive the proof names.
// Any round count k >= 1 is accepted; callers that need a minimum build a
// Verifier with the required NumQueries.
func Verify(problem []int64, pf *Proof) (bool, error) {
	p := params.Default()
	if pf != nil {
		if pf.Hash != "" {
			p.Hash = pf.Hash
		}
		if len(pf.Rounds) > 0 {
			p.NumQueries = len(pf.Rounds)
		}
	}
	v, err := NewVerifier(p)
	if err != nil {
		return false, err
	}
	return v.Verify(problem, pf)
}

var debugOn = os.Getenv("SUBSETSUM_DEBUG") == "1"

func dbg(f string, a ...any) {
	if debugOn {
		log.Printf("[proof] "+f, a...)
	}
}
