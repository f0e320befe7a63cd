// This file provides pooled scratch buffers for the division and
// exponentiation kernels, so that repeated long divisions do not churn the GC.

package digits

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scratch Pools
// ─────────────────────────────────────────────────────────────────────────────

// scratchPools pools digit slices by size class. The classes are powers of
// four starting at 4^2 = 16 digits, up to 256K digits (8 Mbit operands).
var scratchPools = [...]sync.Pool{
	{New: func() any { return make(Nat, 16) }},
	{New: func() any { return make(Nat, 64) }},
	{New: func() any { return make(Nat, 256) }},
	{New: func() any { return make(Nat, 1024) }},
	{New: func() any { return make(Nat, 4096) }},
	{New: func() any { return make(Nat, 16384) }},
	{New: func() any { return make(Nat, 65536) }},
	{New: func() any { return make(Nat, 262144) }},
}

// scratchSizes defines the size classes of scratchPools.
var scratchSizes = [...]int{16, 64, 256, 1024, 4096, 16384, 65536, 262144}

// scratchPoolIndex returns the pool index for a given size, or -1 if the size
// is too large for pooling. Index i holds slices of 4^(i+2) digits.
func scratchPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > scratchSizes[len(scratchSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 3) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Acquire returns a zeroed scratch buffer of length size. It should be handed
// back with Release once the caller no longer references it:
//
//	buf := digits.Acquire(n)
//	defer digits.Release(buf)
func Acquire(size int) Nat {
	idx := scratchPoolIndex(size)
	if idx < 0 {
		return make(Nat, size)
	}
	buf := scratchPools[idx].Get().(Nat)
	clear(buf)
	return buf[:size]
}

// Release returns a buffer obtained from Acquire to its pool. Buffers whose
// capacity does not match a size class were allocated directly and are left
// to the GC. Safe to call with nil.
func Release(buf Nat) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := scratchPoolIndex(c)
	if idx >= 0 && scratchSizes[idx] == c {
		scratchPools[idx].Put(buf[:c])
	}
}
