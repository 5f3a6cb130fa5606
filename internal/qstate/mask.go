package qstate

import "github.com/bits-and-blooms/bitset"

// Mask is a per-index boolean buffer parallel in shape to a Buffer.
// Cell i gates whether a transform applies at amplitude index i. It is a
// dedicated bitset type, deliberately distinct from the complex amplitude
// buffer (the original substrate reused a float channel for this).
//
// Like a Buffer, a Mask is produced once (by the control-mask kernel) and
// consumed read-only by the gate kernel applied in the same column.
type Mask struct {
	bits *bitset.BitSet
	n    int
}

// MaskWords is the cell count of one backing word; mask producers that
// build word-parallel must write disjoint words.
const MaskWords = 64

// NewMask allocates a mask of n cells, all cleared.
func NewMask(n int) Mask {
	return Mask{bits: bitset.New(uint(n)), n: n}
}

// AllSet returns a mask of n cells with every cell set. This is the mask
// of the empty control set, which accepts every index.
func AllSet(n int) Mask {
	m := NewMask(n)
	if n > 0 {
		m.bits.FlipRange(0, uint(n))
	}
	return m
}

// FromWords builds a mask of n cells over the given packed 64-bit words
// (little-endian cell order, word w holding cells [64w, 64w+64)). Bits at
// positions >= n must be zero. The words are adopted, not copied.
func FromWords(words []uint64, n int) Mask {
	return Mask{bits: bitset.From(words), n: n}
}

// Len returns the number of cells.
func (m Mask) Len() int { return m.n }

// Test reports whether cell i is set.
func (m Mask) Test(i int) bool { return m.bits.Test(uint(i)) }

// Set sets cell i. Only mask-producing kernels may call this; consumers
// treat the mask as read-only.
func (m Mask) Set(i int) { m.bits.Set(uint(i)) }

// Count returns the number of set cells.
func (m Mask) Count() int { return int(m.bits.Count()) }
