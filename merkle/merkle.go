// Package merkle implements the salted commitment tree over a witness.
//
// The tree is an array-indexed binary heap: node 1 is the root, node k has
// children 2k and 2k+1, and the leaves occupy the upper half of the array.
// Every witness value is interleaved with a random salt, so value i lives at
// node 2*(i+P) and its salt at node 2*(i+P)+1, where P is the next power of
// two >= the logical size.
package merkle

import (
	"errors"
	"fmt"
	"strconv"

	"subsetsum-zk/internal/hashx"
	"subsetsum-zk/internal/sampling"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/sync/errgroup"
)

// ErrIndexOutOfRange is returned when opening a value outside [0, logical size).
var ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")

// Path is the list of sibling digests from a leaf up to, but excluding, the root.
type Path []hashx.Digest

// MerkleTree commits to a sequence of int64 values with one salt leaf per value.
type MerkleTree struct {
	h       hashx.Hasher
	nodes   []hashx.Digest // nodes[1] is the root, nodes[0] is H("")
	leaves  []int64        // interleaved value/salt payload, len = 2*pad
	logical int
	pad     int
}

// NextPow2 returns the smallest power of two >= n (1 for n <= 1).
func NextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// NodeIndex maps value index i of a logical sequence to its node in the tree.
// Prover and verifier must agree on logicalSize for paths to validate.
func NodeIndex(logicalSize, i int) int {
	return 2 * (i + NextPow2(logicalSize))
}

// BuildMerkleTree salts, pads and commits to values using a single goroutine.
func BuildMerkleTree(h hashx.Hasher, values []int64, prng utils.PRNG) (*MerkleTree, error) {
	return BuildMerkleTreeWithWorkers(h, values, prng, 1)
}

// BuildMerkleTreeWithWorkers is BuildMerkleTree with leaf hashing split across
// workers goroutines. Salts are always drawn sequentially from prng so the
// result for a keyed PRNG does not depend on workers.
func BuildMerkleTreeWithWorkers(h hashx.Hasher, values []int64, prng utils.PRNG, workers int) (*MerkleTree, error) {
	if h == nil {
		return nil, fmt.Errorf("merkle: nil hasher")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("merkle: empty value sequence")
	}
	pad := NextPow2(len(values))
	nLeaves := 2 * pad

	leaves := make([]int64, nLeaves)
	for i := 0; i < pad; i++ {
		if i < len(values) {
			leaves[2*i] = values[i]
		}
		salt, err := sampling.Uint32(prng)
		if err != nil {
			return nil, err
		}
		leaves[2*i+1] = int64(salt)
	}

	nodes := make([]hashx.Digest, 2*nLeaves)
	if workers < 1 {
		workers = 1
	}
	if workers > nLeaves {
		workers = nLeaves
	}
	chunk := (nLeaves + workers - 1) / workers
	var eg errgroup.Group
	for start := 0; start < nLeaves; start += chunk {
		lo, hi := start, min(start+chunk, nLeaves)
		eg.Go(func() error {
			for j := lo; j < hi; j++ {
				nodes[nLeaves+j] = leafHash(h, leaves[j])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for k := nLeaves - 1; k >= 1; k-- {
		nodes[k] = h.Sum(nodes[2*k][:], nodes[2*k+1][:])
	}
	nodes[0] = h.Sum()

	return &MerkleTree{h: h, nodes: nodes, leaves: leaves, logical: len(values), pad: pad}, nil
}

// Root returns the root digest.
func (mt *MerkleTree) Root() hashx.Digest {
	return mt.nodes[1]
}

// LogicalSize is the number of committed values before padding.
func (mt *MerkleTree) LogicalSize() int { return mt.logical }

// Depth is the authentication path length.
func (mt *MerkleTree) Depth() int {
	d := 0
	for n := 2 * mt.pad; n > 1; n >>= 1 {
		d++
	}
	return d
}

// Open returns value i and its authentication path.
func (mt *MerkleTree) Open(i int) (int64, Path, error) {
	if i < 0 || i >= mt.logical {
		return 0, nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, mt.logical)
	}
	idx := 2 * (i + mt.pad)
	value := mt.leaves[idx-2*mt.pad]
	path := make(Path, 0, mt.Depth())
	for ; idx > 1; idx >>= 1 {
		path = append(path, mt.nodes[idx^1])
	}
	return value, path, nil
}

// VerifyPath recomputes the root from value i of a logicalSize-long sequence.
// A path that does not end exactly at the root node is rejected.
func VerifyPath(h hashx.Hasher, root hashx.Digest, logicalSize, i int, value int64, path Path) bool {
	if h == nil || logicalSize <= 0 || i < 0 || i >= logicalSize {
		return false
	}
	idx := NodeIndex(logicalSize, i)
	cur := leafHash(h, value)
	for _, sib := range path {
		if idx <= 1 {
			return false
		}
		if idx&1 == 0 {
			cur = h.Sum(cur[:], sib[:])
		} else {
			cur = h.Sum(sib[:], cur[:])
		}
		idx >>= 1
	}
	return idx == 1 && cur == root
}

func leafHash(h hashx.Hasher, v int64) hashx.Digest {
	return h.Sum([]byte(strconv.FormatInt(v, 10)))
}
