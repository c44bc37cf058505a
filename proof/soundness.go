package proof

import "math"

// SoundnessError bounds the probability that a proof for an unsatisfiable
// problem of length n survives k rounds: (1 - 1/(n+1))^k. The bound assumes
// the challenge reaches every witness index, which holds for n+1 <= 256 since
// challenges come from one digest byte.
func SoundnessError(n, k int) float64 {
	return math.Pow(1-1/float64(n+1), float64(k))
}

// SoundnessBits is -log2(SoundnessError(n, k)).
func SoundnessBits(n, k int) float64 {
	e := SoundnessError(n, k)
	if e == 0 {
		return math.Inf(1)
	}
	return -math.Log2(e)
}

// RoundsFor returns the smallest round count reaching at least bits of
// soundness for a problem of length n.
func RoundsFor(n int, bits float64) int {
	if n <= 0 || bits <= 0 {
		return 1
	}
	perRound := -math.Log2(1 - 1/float64(n+1))
	k := int(math.Ceil(bits / perRound))
	if k < 1 {
		k = 1
	}
	return k
}
