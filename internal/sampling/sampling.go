// Package sampling draws the blinding values of the protocol from a lattigo PRNG.
package sampling

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// Uint64 reads 8 bytes from prng.
func Uint64(prng utils.PRNG) (uint64, error) {
	var buf [8]byte
	if _, err := prng.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("sampling: read prng: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Uint32 reads 4 bytes from prng.
func Uint32(prng utils.PRNG) (uint32, error) {
	var buf [4]byte
	if _, err := prng.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("sampling: read prng: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Int64n returns a uniform value in [0, bound]. Rejection sampling keeps the
// draw unbiased for any bound.
func Int64n(prng utils.PRNG, bound int64) (int64, error) {
	if bound < 0 {
		return 0, fmt.Errorf("sampling: bound must be >= 0, got %d", bound)
	}
	if bound == 0 {
		return 0, nil
	}
	span := uint64(bound) + 1
	if bound == math.MaxInt64 {
		v, err := Uint64(prng)
		return int64(v >> 1), err
	}
	limit := math.MaxUint64 - (math.MaxUint64 % span)
	for {
		v, err := Uint64(prng)
		if err != nil {
			return 0, err
		}
		if v < limit {
			return int64(v % span), nil
		}
	}
}

// Sign returns +1 or -1 with equal probability.
func Sign(prng utils.PRNG) (int64, error) {
	var b [1]byte
	if _, err := prng.Read(b[:]); err != nil {
		return 0, fmt.Errorf("sampling: read prng: %w", err)
	}
	return 1 - 2*int64(b[0]&1), nil
}
