package proofio

import (
	"os"
	"path/filepath"
	"testing"

	"subsetsum-zk/proof"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

var example = Instance{
	Problem:    []int64{1, 2, 3, 6, 6, 6, 12},
	Assignment: []int64{1, 1, 1, -1, -1, -1, 1},
}

func TestInstanceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.json")
	require.NoError(t, SaveInstance(path, example))
	got, err := LoadInstance(path)
	require.NoError(t, err)
	require.Equal(t, example, got)
}

func TestLoadInstanceProblemOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"problem":[4,11,8,1]}`), 0o644))
	got, err := LoadInstance(path)
	require.NoError(t, err)
	require.Equal(t, []int64{4, 11, 8, 1}, got.Problem)
	require.Empty(t, got.Assignment)
}

func TestLoadInstanceErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadInstance(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	mismatch := filepath.Join(dir, "mismatch.json")
	require.NoError(t, os.WriteFile(mismatch, []byte(`{"problem":[1,1],"assignment":[1]}`), 0o644))
	_, err = LoadInstance(mismatch)
	require.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte(`[`), 0o644))
	_, err = LoadInstance(garbage)
	require.Error(t, err)
}

func TestProofFiles(t *testing.T) {
	pf, err := proof.Generate(example.Problem, example.Assignment, 20)
	require.NoError(t, err)

	for _, compress := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "proof.bin")
		require.NoError(t, WriteProof(path, pf, compress))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		if compress {
			require.Equal(t, zstdMagic, raw[:4])
		} else {
			require.Equal(t, pf.Size(), len(raw))
		}

		got, err := ReadProof(path)
		require.NoError(t, err)
		require.Equal(t, pf, got)
		ok, err := proof.Verify(example.Problem, got)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestReadProofErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadProof(filepath.Join(dir, "missing.bin"))
	require.Error(t, err)

	corrupt := filepath.Join(dir, "corrupt.bin")
	require.NoError(t, os.WriteFile(corrupt, append(append([]byte{}, zstdMagic...), 0xff, 0xff), 0o644))
	_, err = ReadProof(corrupt)
	require.Error(t, err)
}

func TestReadProofDecompressionLimit(t *testing.T) {
	old := maxProofBytes
	maxProofBytes = 1 << 20
	t.Cleanup(func() { maxProofBytes = old })

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	bomb := enc.EncodeAll(make([]byte, 4<<20), nil)
	require.NoError(t, enc.Close())
	require.Less(t, len(bomb), 1<<12)

	path := filepath.Join(t.TempDir(), "bomb.bin")
	require.NoError(t, os.WriteFile(path, bomb, 0o644))
	_, err = ReadProof(path)
	require.Error(t, err)

	pf, err := proof.Generate(example.Problem, example.Assignment, 8)
	require.NoError(t, err)
	small := filepath.Join(t.TempDir(), "proof.bin")
	require.NoError(t, WriteProof(small, pf, true))
	got, err := ReadProof(small)
	require.NoError(t, err)
	require.Equal(t, pf, got)
}
