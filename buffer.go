// Package circbuf implements a fixed-capacity FIFO ring buffer with
// random-access iterators over its logical order.
package circbuf

import "fmt"

// Buffer is a fixed-capacity FIFO ring buffer backed by one contiguous block.
// The block is allocated once by New and never grows; pushing onto a full
// buffer is rejected with ErrFull instead of overwriting the oldest element.
//
// Only the slots in the logical window [head, head+size) (mod capacity) are
// live. Every other slot holds the zero value of T.
//
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	alloc    Allocator[T]
	data     []T
	capacity int
	size     int
	head     int // physical slot of the logical first element
	tail     int // next write slot, always (head+size) % capacity
}

// Option configures a Buffer at construction time.
type Option[T any] func(*Buffer[T])

// WithAllocator sets the allocation strategy for the backing block.
// A nil allocator leaves the default heap allocator in place.
func WithAllocator[T any](a Allocator[T]) Option[T] {
	return func(b *Buffer[T]) {
		if a != nil {
			b.alloc = a
		}
	}
}

// New allocates a buffer able to hold capacity elements.
// A zero capacity is legal: the buffer is always empty and rejects every push.
// On error no buffer is returned and nothing is left allocated.
func New[T any](capacity int, opts ...Option[T]) (*Buffer[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}

	b := &Buffer[T]{alloc: HeapAllocator[T]{}}
	for _, opt := range opts {
		opt(b)
	}

	data, err := b.alloc.Allocate(capacity)
	if err != nil {
		return nil, fmt.Errorf("allocate %d slots: %w", capacity, err)
	}
	if len(data) != capacity {
		b.alloc.Deallocate(data)
		return nil, fmt.Errorf("%w: allocator returned %d slots, want %d", ErrAllocation, len(data), capacity)
	}

	clear(data)
	b.data = data
	b.capacity = capacity
	return b, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](capacity int, opts ...Option[T]) *Buffer[T] {
	b, err := New[T](capacity, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int { return b.size }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return b.capacity }

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool { return b.size == 0 }

// Full reports whether the buffer holds Cap elements.
// A zero-capacity buffer is empty and never full.
func (b *Buffer[T]) Full() bool { return b.capacity > 0 && b.size == b.capacity }

// slot translates a logical position into a physical slot.
// Callers guarantee capacity > 0.
func (b *Buffer[T]) slot(pos int) int { return (b.head + pos) % b.capacity }

// At returns a pointer to the element at logical index i, 0 <= i < Len.
// The pointer is valid until the next PushBack, Emplace, PopFront, Clear,
// Swap or Release.
func (b *Buffer[T]) At(i int) (*T, error) {
	if i < 0 || i >= b.size {
		return nil, fmt.Errorf("%w: index %d, len %d", ErrOutOfRange, i, b.size)
	}
	return &b.data[b.slot(i)], nil
}

// Front returns a pointer to the oldest element.
func (b *Buffer[T]) Front() (*T, error) {
	if b.size == 0 {
		return nil, ErrEmpty
	}
	return &b.data[b.head], nil
}

// Back returns a pointer to the most recently pushed element.
func (b *Buffer[T]) Back() (*T, error) {
	if b.size == 0 {
		return nil, ErrEmpty
	}
	return &b.data[(b.tail+b.capacity-1)%b.capacity], nil
}

// PushBack appends v at the tail.
// Returns ErrFull, leaving the buffer untouched, if there is no free slot.
func (b *Buffer[T]) PushBack(v T) error {
	p, err := b.Emplace()
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Emplace reserves the tail slot and returns a pointer to it so the caller
// can build the element in place. The slot starts as the zero value of T.
func (b *Buffer[T]) Emplace() (*T, error) {
	if b.size == b.capacity {
		return nil, ErrFull
	}

	var zero T
	p := &b.data[b.tail]
	*p = zero

	b.tail = (b.tail + 1) % b.capacity
	b.size++
	return p, nil
}

// PopFront removes the oldest element and returns it.
// The vacated slot is reset to the zero value.
func (b *Buffer[T]) PopFront() (T, error) {
	var zero T
	if b.size == 0 {
		return zero, ErrEmpty
	}

	v := b.data[b.head]
	b.data[b.head] = zero

	b.head = (b.head + 1) % b.capacity
	b.size--
	return v, nil
}

// Clear drops every live element, oldest first, and rewinds head and tail.
// Calling it on an empty buffer is a no-op.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := 0; i < b.size; i++ {
		b.data[b.slot(i)] = zero
	}
	b.size = 0
	b.head = 0
	b.tail = 0
}

// Swap exchanges storage, allocator and bookkeeping with other in O(1).
// No element is copied.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	if other == nil || other == b {
		return
	}
	*b, *other = *other, *b
}

// Clone returns an independent buffer with the same capacity and allocator,
// holding a copy of every live element in logical order. Elements are copied
// by assignment, so reference types inside T stay shared.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	c, err := New[T](b.capacity, WithAllocator(b.alloc))
	if err != nil {
		return nil, err
	}
	for i := 0; i < b.size; i++ {
		c.data[i] = b.data[b.slot(i)]
	}
	c.size = b.size
	if c.capacity > 0 {
		c.tail = c.size % c.capacity
	}
	return c, nil
}

// Release drops every live element and hands the backing block back to the
// allocator. The buffer is left with zero capacity. Release is idempotent,
// so it is safe to defer right after New.
func (b *Buffer[T]) Release() {
	b.Clear()
	if b.data != nil {
		b.alloc.Deallocate(b.data)
		b.data = nil
	}
	b.capacity = 0
}

// Begin returns an iterator at logical position 0.
func (b *Buffer[T]) Begin() Iterator[T] {
	return Iterator[T]{buf: b}
}

// End returns an iterator one past the last element. It must not be
// dereferenced.
func (b *Buffer[T]) End() Iterator[T] {
	return Iterator[T]{buf: b, pos: b.size}
}
