package optimizer

import "math/bits"

// MaxCandidates is the widest candidate set a Mask can describe.
const MaxCandidates = 64

// Mask is a set of candidate positions; bit i stands for position i.
type Mask uint64

// Bit returns the mask holding only position i.
func Bit(i int) Mask {
	return Mask(1) << uint(i)
}

// FullMask returns the mask holding positions 0 through n-1.
func FullMask(n int) Mask {
	if n >= MaxCandidates {
		return ^Mask(0)
	}
	return Bit(n) - 1
}

// Has reports whether position i is in the mask.
func (m Mask) Has(i int) bool {
	return m&Bit(i) != 0
}

// With returns the mask with position i added.
func (m Mask) With(i int) Mask {
	return m | Bit(i)
}

// Len returns the number of positions in the mask.
func (m Mask) Len() int {
	return bits.OnesCount64(uint64(m))
}

// Positions returns the positions in the mask in ascending order.
func (m Mask) Positions() []int {
	out := make([]int, 0, m.Len())
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		out = append(out, bits.TrailingZeros64(rest))
	}
	return out
}
