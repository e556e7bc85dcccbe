package circbuf

import (
	"math/bits"
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Bounded lock-free free list after Dmitry Vyukov's MPMC queue
// https://www.1024cores.net/home/lock-free-algorithms/queues/bounded-mpmc-queue
//
// PoolAllocator parks released blocks here so buffers built and released on
// different goroutines can share them.

type cell[E any] struct {
	seq atomic.Uint64 // position this cell is ready for (put: pos, get: pos+1)
	val E
}

type freeList[E any] struct {
	_      cpu.CacheLinePad
	mask   uint64
	depth  uint64
	cells  []cell[E]
	_      cpu.CacheLinePad
	putPos atomic.Uint64
	_      cpu.CacheLinePad
	getPos atomic.Uint64
	_      cpu.CacheLinePad
}

const yieldEvery = 64 // spins between runtime.Gosched() calls

// newFreeList creates a free list holding up to depth entries, rounded up to
// a power of two.
func newFreeList[E any](depth uint64) *freeList[E] {
	depth = roundPow2(depth)

	cells := make([]cell[E], depth)
	for i := uint64(0); i < depth; i++ {
		cells[i].seq.Store(i)
	}

	return &freeList[E]{
		mask:  depth - 1,
		depth: depth,
		cells: cells,
	}
}

func roundPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(n-1)
}

// put parks v. Returns false if the list is full.
func (f *freeList[E]) put(v E) bool {
	var spins uint32
	for {
		pos := f.putPos.Load()
		c := &f.cells[pos&f.mask]

		diff := int64(c.seq.Load()) - int64(pos)
		switch {
		case diff == 0:
			if f.putPos.CompareAndSwap(pos, pos+1) {
				c.val = v
				c.seq.Store(pos + 1)
				return true
			}
		case diff < 0:
			// the getter of the previous lap has not drained this cell
			return false
		}

		spins++
		if spins%yieldEvery == 0 {
			runtime.Gosched()
		}
	}
}

// get takes a parked entry. Returns (zero, false) if the list is empty.
func (f *freeList[E]) get() (E, bool) {
	var zero E
	var spins uint32
	for {
		pos := f.getPos.Load()
		c := &f.cells[pos&f.mask]

		diff := int64(c.seq.Load()) - int64(pos+1)
		switch {
		case diff == 0:
			if f.getPos.CompareAndSwap(pos, pos+1) {
				v := c.val
				c.val = zero
				// next lap reuses this cell at pos+depth
				c.seq.Store(pos + f.depth)
				return v, true
			}
		case diff < 0:
			return zero, false
		}

		spins++
		if spins%yieldEvery == 0 {
			runtime.Gosched()
		}
	}
}
