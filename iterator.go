package circbuf

import "cmp"

// Iterator is a random-access cursor over the logical order of a Buffer.
//
// It stores a logical position, not a physical slot; wraparound is resolved
// by Buffer.At on every dereference. The position may leave [0, Len] during
// arithmetic but may only be dereferenced inside [0, Len).
//
// The zero Iterator is unbound. It can be assigned to, but dereferencing it
// panics. Iterators are invalidated by any mutation of their buffer, and
// comparing iterators of different buffers is meaningless; neither is checked.
type Iterator[T any] struct {
	buf *Buffer[T]
	pos int
}

// Bound reports whether the iterator refers to a buffer.
func (it Iterator[T]) Bound() bool { return it.buf != nil }

// Pos returns the logical position.
func (it Iterator[T]) Pos() int { return it.pos }

// Inc moves the iterator one element forward (++it).
func (it *Iterator[T]) Inc() *Iterator[T] {
	it.pos++
	return it
}

// PostInc moves the iterator forward and returns its previous value (it++).
func (it *Iterator[T]) PostInc() Iterator[T] {
	old := *it
	it.pos++
	return old
}

// Dec moves the iterator one element back (--it).
func (it *Iterator[T]) Dec() *Iterator[T] {
	it.pos--
	return it
}

// PostDec moves the iterator back and returns its previous value (it--).
func (it *Iterator[T]) PostDec() Iterator[T] {
	old := *it
	it.pos--
	return old
}

// Advance moves the iterator n elements forward (it += n).
func (it *Iterator[T]) Advance(n int) *Iterator[T] {
	it.pos += n
	return it
}

// Retreat moves the iterator n elements back (it -= n).
func (it *Iterator[T]) Retreat(n int) *Iterator[T] {
	it.pos -= n
	return it
}

// Add returns it + n.
func (it Iterator[T]) Add(n int) Iterator[T] {
	it.pos += n
	return it
}

// Sub returns it - n.
func (it Iterator[T]) Sub(n int) Iterator[T] {
	it.pos -= n
	return it
}

// Distance returns it - other in elements.
func (it Iterator[T]) Distance(other Iterator[T]) int { return it.pos - other.pos }

// Deref returns a pointer to the element under the iterator (*it).
func (it Iterator[T]) Deref() (*T, error) { return it.buf.At(it.pos) }

// Index returns a pointer to the element n positions away (it[n]).
func (it Iterator[T]) Index(n int) (*T, error) { return it.buf.At(it.pos + n) }

// Equal reports whether both iterators refer to the same buffer and position.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.buf == other.buf && it.pos == other.pos
}

// Compare orders iterators by logical position: -1, 0 or +1.
func (it Iterator[T]) Compare(other Iterator[T]) int { return cmp.Compare(it.pos, other.pos) }

func (it Iterator[T]) Less(other Iterator[T]) bool           { return it.pos < other.pos }
func (it Iterator[T]) LessOrEqual(other Iterator[T]) bool    { return it.pos <= other.pos }
func (it Iterator[T]) Greater(other Iterator[T]) bool        { return it.pos > other.pos }
func (it Iterator[T]) GreaterOrEqual(other Iterator[T]) bool { return it.pos >= other.pos }
