package model

import (
	"fmt"
	"math/bits"
)

// Mask is a weekly time-slot occupancy bit-vector: bit i set means the atomic
// slot i is taken. A section meeting several times a week has several bits set.
type Mask uint64

// Conflicts reports whether a and b share at least one slot
func Conflicts(a, b Mask) bool {
	return a&b != 0
}

// Union returns the slots occupied by either a or b. The zero Mask is its identity.
func Union(a, b Mask) Mask {
	return a | b
}

func (mask Mask) Conflicts(other Mask) bool {
	return Conflicts(mask, other)
}

func (mask Mask) Union(other Mask) Mask {
	return Union(mask, other)
}

// Slots returns the number of occupied slots
func (mask Mask) Slots() int {
	return bits.OnesCount64(uint64(mask))
}

// Empty reports whether no slot is occupied
func (mask Mask) Empty() bool {
	return mask == 0
}

func (mask Mask) String() string {
	return fmt.Sprintf("%#b", uint64(mask))
}
