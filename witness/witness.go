// Package witness turns a satisfying ±1 assignment into the blinded prefix-sum
// sequence committed by each proof round.
package witness

import (
	"errors"
	"fmt"
	"math"

	"subsetsum-zk/internal/sampling"

	"github.com/tuneinsight/lattigo/v4/utils"
)

var (
	ErrLengthMismatch    = errors.New("witness: problem and assignment lengths differ")
	ErrInvalidAssignment = errors.New("witness: assignment entry is not +1 or -1")
	ErrNegativeProblem   = errors.New("witness: problem entry is negative")
	ErrProblemRange      = errors.New("witness: problem entry exceeds MaxEntry")
	ErrUnsatisfied       = errors.New("witness: assignment does not satisfy the problem")
)

// MaxEntry bounds problem entries so prefix sums and the shift stay well
// inside int64.
const MaxEntry = math.MaxInt32

// Witness is the shifted prefix sum w[0..n] with w[0] == w[n].
type Witness []int64

// Generate draws a fresh obfuscator and shift from prng and returns the witness
// for (problem, assignment). Each proof round must call it with fresh randomness.
func Generate(prng utils.PRNG, problem, assignment []int64) (Witness, error) {
	if len(problem) != len(assignment) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(problem), len(assignment))
	}
	if err := CheckProblem(problem); err != nil {
		return nil, err
	}
	obf, err := sampling.Sign(prng)
	if err != nil {
		return nil, err
	}

	var mx, sum int64
	w := make(Witness, 1, len(problem)+1)
	for i, x := range problem {
		y := assignment[i]
		if y != 1 && y != -1 {
			return nil, fmt.Errorf("%w: assignment[%d] = %d", ErrInvalidAssignment, i, y)
		}
		sum += x * y * obf
		w = append(w, sum)
		if x > mx {
			mx = x
		}
	}
	if sum != 0 {
		return nil, fmt.Errorf("%w: dot product is %d", ErrUnsatisfied, sum*obf)
	}

	shift, err := sampling.Int64n(prng, mx)
	if err != nil {
		return nil, err
	}
	for i := range w {
		w[i] += shift
	}
	return w, nil
}

// CheckProblem rejects entries outside [0, MaxEntry].
func CheckProblem(problem []int64) error {
	for i, x := range problem {
		if x < 0 {
			return fmt.Errorf("%w: problem[%d] = %d", ErrNegativeProblem, i, x)
		}
		if x > MaxEntry {
			return fmt.Errorf("%w: problem[%d] = %d", ErrProblemRange, i, x)
		}
	}
	return nil
}

// Check verifies the public invariants of w against problem: the sequence
// returns to its start and every step has magnitude problem[i-1].
func (w Witness) Check(problem []int64) error {
	if len(w) != len(problem)+1 {
		return fmt.Errorf("witness: length %d, want %d", len(w), len(problem)+1)
	}
	if err := CheckProblem(problem); err != nil {
		return err
	}
	if w[0] != w[len(w)-1] {
		return fmt.Errorf("witness: w[0]=%d != w[n]=%d", w[0], w[len(w)-1])
	}
	for i, v := range w {
		if i == 0 {
			continue
		}
		if d := AbsDiff(v, w[i-1]); d != uint64(problem[i-1]) {
			return fmt.Errorf("witness: |w[%d]-w[%d]|=%d, want %d", i, i-1, d, problem[i-1])
		}
	}
	return nil
}

// AbsDiff returns |a-b| without wrapping.
func AbsDiff(a, b int64) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}
