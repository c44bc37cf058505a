package proof

import (
	"strconv"

	"subsetsum-zk/internal/hashx"
)

// Transcript is the append-only Fiat–Shamir log. It starts with the decimal
// problem entries and grows by (hex root, decimal challenge) after each round.
// Prover and verifier each own a private copy.
type Transcript struct {
	h     hashx.Hasher
	parts [][]byte
}

// NewTranscript seeds a transcript with problem.
func NewTranscript(h hashx.Hasher, problem []int64) *Transcript {
	t := &Transcript{h: h, parts: make([][]byte, 0, len(problem)+2)}
	for _, x := range problem {
		t.parts = append(t.parts, []byte(strconv.FormatInt(x, 10)))
	}
	return t
}

// Challenge hashes the concatenated transcript and reduces the first digest
// byte modulo size.
func (t *Transcript) Challenge(size int) int {
	if size <= 0 {
		panic("Transcript.Challenge: size must be > 0")
	}
	d := t.h.Sum(t.parts...)
	return int(d[0]) % size
}

// Append binds a round's root and challenge into the transcript.
func (t *Transcript) Append(root hashx.Digest, challenge int) {
	t.parts = append(t.parts,
		[]byte(root.Hex()),
		[]byte(strconv.Itoa(challenge)),
	)
}

// Len returns the number of transcript entries.
func (t *Transcript) Len() int { return len(t.parts) }

// String returns the concatenated transcript.
func (t *Transcript) String() string {
	n := 0
	for _, p := range t.parts {
		n += len(p)
	}
	b := make([]byte, 0, n)
	for _, p := range t.parts {
		b = append(b, p...)
	}
	return string(b)
}
