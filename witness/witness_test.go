package witness

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v4/utils"
)

var (
	exampleProblem    = []int64{1, 2, 3, 6, 6, 6, 12}
	exampleAssignment = []int64{1, 1, 1, -1, -1, -1, 1}
)

func TestGenerateInvariants(t *testing.T) {
	prng, err := utils.NewPRNG()
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		w, err := Generate(prng, exampleProblem, exampleAssignment)
		require.NoError(t, err)
		require.Len(t, w, len(exampleProblem)+1)
		require.Equal(t, w[0], w[len(w)-1])
		require.NoError(t, w.Check(exampleProblem))
		require.GreaterOrEqual(t, w[0], int64(0))
		require.LessOrEqual(t, w[0], int64(12))
	}
}

func TestGenerateBlindingVaries(t *testing.T) {
	prng, err := utils.NewPRNG()
	require.NoError(t, err)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		w, err := Generate(prng, exampleProblem, exampleAssignment)
		require.NoError(t, err)
		seen[fmt.Sprint(w)] = true
	}
	// obfuscator and shift together give up to 26 distinct witnesses
	require.Greater(t, len(seen), 2)
}

func TestGenerateDeterministicWithKeyedPRNG(t *testing.T) {
	a, err := utils.NewKeyedPRNG([]byte("seed"))
	require.NoError(t, err)
	b, err := utils.NewKeyedPRNG([]byte("seed"))
	require.NoError(t, err)
	wa, err := Generate(a, exampleProblem, exampleAssignment)
	require.NoError(t, err)
	wb, err := Generate(b, exampleProblem, exampleAssignment)
	require.NoError(t, err)
	require.Equal(t, wa, wb)
}

func TestGenerateRejects(t *testing.T) {
	prng, err := utils.NewPRNG()
	require.NoError(t, err)

	cases := []struct {
		name       string
		problem    []int64
		assignment []int64
		want       error
	}{
		{"length", []int64{1, 1}, []int64{1}, ErrLengthMismatch},
		{"not-unit", []int64{1, 1}, []int64{1, 0}, ErrInvalidAssignment},
		{"two", []int64{2, 4}, []int64{2, -1}, ErrInvalidAssignment},
		{"negative", []int64{1, -1}, []int64{1, 1}, ErrNegativeProblem},
		{"range", []int64{1 << 62, 1 << 62, 1 << 62, 1 << 62}, []int64{1, 1, 1, 1}, ErrProblemRange},
		{"unsatisfied", exampleProblem, []int64{1, 1, 1, -1, -1, -1, -1}, ErrUnsatisfied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(prng, tc.problem, tc.assignment)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerateEmptyProblem(t *testing.T) {
	prng, err := utils.NewPRNG()
	require.NoError(t, err)
	w, err := Generate(prng, nil, nil)
	require.NoError(t, err)
	require.Equal(t, Witness{0}, w)
}

func TestCheckDetectsBrokenWitness(t *testing.T) {
	problem := []int64{4, 11, 8, 1}
	good := Witness{5, 9, -2, 6, 5}
	require.NoError(t, good.Check(problem))

	require.Error(t, Witness{5, 9, -2, 6}.Check(problem))
	require.Error(t, Witness{5, 9, -2, 6, 7}.Check(problem))
	require.Error(t, Witness{5, 8, -2, 6, 5}.Check(problem))
}

func TestGenerateAtMaxEntry(t *testing.T) {
	prng, err := utils.NewPRNG()
	require.NoError(t, err)
	problem := []int64{MaxEntry, 1, MaxEntry - 1}
	for i := 0; i < 50; i++ {
		w, err := Generate(prng, problem, []int64{1, -1, -1})
		require.NoError(t, err)
		require.NoError(t, w.Check(problem))
	}
}

func TestCheckDoesNotWrap(t *testing.T) {
	// MinInt64 - MaxInt64 wraps to 1 in int64 arithmetic
	w := Witness{math.MaxInt64, math.MinInt64, math.MaxInt64}
	require.Error(t, w.Check([]int64{1, 1}))

	wrapped := Witness{2983910733208907812, 7595596751636295716, -6239461303645867996, -1627775285218480092, 2983910733208907812}
	require.ErrorIs(t, wrapped.Check([]int64{1 << 62, 1 << 62, 1 << 62, 1 << 62}), ErrProblemRange)
}

func TestAbsDiff(t *testing.T) {
	require.Equal(t, uint64(7), AbsDiff(3, -4))
	require.Equal(t, uint64(7), AbsDiff(-4, 3))
	require.Equal(t, uint64(0), AbsDiff(5, 5))
	require.Equal(t, uint64(math.MaxUint64), AbsDiff(math.MaxInt64, math.MinInt64))
}
