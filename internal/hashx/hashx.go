// Package hashx provides the fixed-length hash primitive used by the commitment
// tree and the Fiat–Shamir transcript.
package hashx

import (
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Size is the digest length in bytes for every registered hasher.
const Size = 32

// Digest is a fixed-length hash output.
type Digest [Size]byte

// Hex returns the lowercase hex encoding of d.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string { return d.Hex() }

// Hasher hashes the concatenation of its inputs.
type Hasher interface {
	Name() string
	Sum(parts ...[]byte) Digest
}

const (
	SHAKE256 = "shake256"
	SHA3     = "sha3-256"
	BLAKE3   = "blake3"
)

// Default is the hasher name used when none is configured.
const Default = SHAKE256

type shakeHasher struct{}

func (shakeHasher) Name() string { return SHAKE256 }

func (shakeHasher) Sum(parts ...[]byte) Digest {
	var out Digest
	h := sha3.NewShake256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	_, _ = h.Read(out[:])
	return out
}

type sha3Hasher struct{}

func (sha3Hasher) Name() string { return SHA3 }

func (sha3Hasher) Sum(parts ...[]byte) Digest {
	h := sha3.New256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

type blake3Hasher struct {
	pool *sync.Pool
}

func (blake3Hasher) Name() string { return BLAKE3 }

func (b blake3Hasher) Sum(parts ...[]byte) Digest {
	h := b.pool.Get().(*blake3.Hasher)
	defer b.pool.Put(h)
	h.Reset()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

var registry = map[string]Hasher{
	SHAKE256: shakeHasher{},
	SHA3:     sha3Hasher{},
	BLAKE3: blake3Hasher{pool: &sync.Pool{
		New: func() interface{} {
			return blake3.New()
		},
	}},
}

// ByName returns the hasher registered under name.
func ByName(name string) (Hasher, error) {
	h, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("hashx: unknown hash %q (have %v)", name, Names())
	}
	return h, nil
}

// MustByName is ByName for names already checked by params validation.
func MustByName(name string) Hasher {
	h, err := ByName(name)
	if err != nil {
		panic(err)
	}
	return h
}

// Names lists the registered hasher names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
