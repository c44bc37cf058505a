package hashx

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumIsConcatenation(t *testing.T) {
	for _, name := range Names() {
		h := MustByName(name)
		require.Equal(t, h.Sum([]byte("ab"), []byte("cd")), h.Sum([]byte("abcd")), name)
		require.NotEqual(t, h.Sum([]byte("abcd")), h.Sum([]byte("abce")), name)
	}
}

func TestHashersDiffer(t *testing.T) {
	in := []byte("12")
	a := MustByName(SHAKE256).Sum(in)
	b := MustByName(SHA3).Sum(in)
	c := MustByName(BLAKE3).Sum(in)
	require.NotEqual(t, a, b)
	require.NotEqual(t, b, c)
	require.NotEqual(t, a, c)
}

func TestBlake3PoolReuse(t *testing.T) {
	h := MustByName(BLAKE3)
	first := h.Sum([]byte("x"))
	_ = h.Sum([]byte("something else entirely"))
	require.Equal(t, first, h.Sum([]byte("x")))
}

func TestDigestHex(t *testing.T) {
	d := MustByName(Default).Sum([]byte("root"))
	require.Len(t, d.Hex(), 2*Size)
	b, err := hex.DecodeString(d.String())
	require.NoError(t, err)
	require.Equal(t, d[:], b)
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("md5")
	require.Error(t, err)
	require.Panics(t, func() { MustByName("md5") })
}
