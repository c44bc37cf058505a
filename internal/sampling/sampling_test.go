package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v4/utils"
)

func keyed(t *testing.T, key string) utils.PRNG {
	t.Helper()
	prng, err := utils.NewKeyedPRNG([]byte(key))
	require.NoError(t, err)
	return prng
}

func TestInt64nRange(t *testing.T) {
	prng := keyed(t, "range")
	seen := make(map[int64]bool)
	for i := 0; i < 2000; i++ {
		v, err := Int64n(prng, 6)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, int64(0))
		require.LessOrEqual(t, v, int64(6))
		seen[v] = true
	}
	require.Len(t, seen, 7, "every value in [0,6] should appear")
}

func TestInt64nEdges(t *testing.T) {
	prng := keyed(t, "edges")
	v, err := Int64n(prng, 0)
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = Int64n(prng, -1)
	require.Error(t, err)
}

func TestSignBothValues(t *testing.T) {
	prng := keyed(t, "sign")
	var plus, minus int
	for i := 0; i < 500; i++ {
		s, err := Sign(prng)
		require.NoError(t, err)
		switch s {
		case 1:
			plus++
		case -1:
			minus++
		default:
			t.Fatalf("unexpected sign %d", s)
		}
	}
	require.Positive(t, plus)
	require.Positive(t, minus)
}

func TestKeyedPRNGIsDeterministic(t *testing.T) {
	a, b := keyed(t, "same"), keyed(t, "same")
	for i := 0; i < 32; i++ {
		x, err := Uint32(a)
		require.NoError(t, err)
		y, err := Uint32(b)
		require.NoError(t, err)
		require.Equal(t, x, y)
	}
}
