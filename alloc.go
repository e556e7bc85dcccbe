package circbuf

import (
	"fmt"
	"sync/atomic"
)

// Allocator is the allocation strategy for a Buffer's backing block.
//
// Allocate returns a block of exactly n slots. Deallocate receives a block
// previously returned by Allocate once the buffer no longer uses it; every
// live element has been reset to the zero value by then.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(block []T)
}

func checkLen(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrAllocation, n)
	}
	return nil
}

// HeapAllocator allocates with make and leaves reclamation to the GC.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if err := checkLen(n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

func (HeapAllocator[T]) Deallocate([]T) {}

// PoolAllocator recycles blocks of one fixed length. Released blocks are
// cleared and parked in a bounded lock-free free list; requests for any other
// length fall through to the heap.
//
// A PoolAllocator may be shared by buffers living on different goroutines.
type PoolAllocator[T any] struct {
	blockLen int
	free     *freeList[[]T]

	allocated atomic.Uint64
	reused    atomic.Uint64
	returned  atomic.Uint64
	dropped   atomic.Uint64
}

// PoolStats are the PoolAllocator counters.
type PoolStats struct {
	Allocated uint64 // fresh blocks made
	Reused    uint64 // blocks served from the free list
	Returned  uint64 // blocks parked on Deallocate
	Dropped   uint64 // blocks left to the GC: wrong length or free list full
}

// NewPoolAllocator creates a pool for blocks of blockLen slots that keeps up
// to depth idle blocks (rounded up to a power of two).
func NewPoolAllocator[T any](blockLen int, depth uint64) *PoolAllocator[T] {
	return &PoolAllocator[T]{
		blockLen: blockLen,
		free:     newFreeList[[]T](depth),
	}
}

func (p *PoolAllocator[T]) Allocate(n int) ([]T, error) {
	if err := checkLen(n); err != nil {
		return nil, err
	}
	if n == p.blockLen {
		if block, ok := p.free.get(); ok {
			p.reused.Add(1)
			return block, nil
		}
	}
	p.allocated.Add(1)
	return make([]T, n), nil
}

func (p *PoolAllocator[T]) Deallocate(block []T) {
	if len(block) != p.blockLen {
		p.dropped.Add(1)
		return
	}
	clear(block)
	if p.free.put(block) {
		p.returned.Add(1)
		return
	}
	p.dropped.Add(1)
}

// Stats retrieves the current counters.
func (p *PoolAllocator[T]) Stats() PoolStats {
	return PoolStats{
		Allocated: p.allocated.Load(),
		Reused:    p.reused.Load(),
		Returned:  p.returned.Load(),
		Dropped:   p.dropped.Load(),
	}
}

// LimitedAllocator caps the total number of slots outstanding through it and
// fails with ErrAllocation once the budget is spent.
type LimitedAllocator[T any] struct {
	next  Allocator[T]
	limit int64
	used  atomic.Int64
}

// NewLimitedAllocator wraps next (the heap when nil) with a budget of limit
// slots.
func NewLimitedAllocator[T any](next Allocator[T], limit int) *LimitedAllocator[T] {
	if next == nil {
		next = HeapAllocator[T]{}
	}
	return &LimitedAllocator[T]{next: next, limit: int64(limit)}
}

func (l *LimitedAllocator[T]) Allocate(n int) ([]T, error) {
	if err := checkLen(n); err != nil {
		return nil, err
	}

	want := int64(n)
	for {
		used := l.used.Load()
		if used+want > l.limit {
			return nil, fmt.Errorf("%w: %d slots requested, %d of %d in use", ErrAllocation, n, used, l.limit)
		}
		if l.used.CompareAndSwap(used, used+want) {
			break
		}
	}

	block, err := l.next.Allocate(n)
	if err != nil {
		l.used.Add(-want)
		return nil, err
	}
	return block, nil
}

func (l *LimitedAllocator[T]) Deallocate(block []T) {
	l.next.Deallocate(block)
	l.used.Add(-int64(len(block)))
}

// InUse returns the number of slots currently handed out.
func (l *LimitedAllocator[T]) InUse() int { return int(l.used.Load()) }
