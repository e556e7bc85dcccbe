package circbuf

import "iter"

// All yields (logical index, value) pairs from oldest to newest.
// Iteration stops early if the buffer shrinks underneath it.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for it, end := b.Begin(), b.End(); it.Less(end); it.Inc() {
			p, err := it.Deref()
			if err != nil || !yield(it.Pos(), *p) {
				return
			}
		}
	}
}

// Values yields the elements from oldest to newest.
func (b *Buffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range b.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward yields (logical index, value) pairs from newest to oldest,
// walking from End back to Begin.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		begin := b.Begin()
		for it := b.End(); it.Greater(begin); {
			it.Dec()
			p, err := it.Deref()
			if err != nil || !yield(it.Pos(), *p) {
				return
			}
		}
	}
}
