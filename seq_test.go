package circbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	b := MustNew[string](3)
	for _, s := range []string{"a", "b", "c"} {
		_ = b.PushBack(s)
	}
	_, _ = b.PopFront()
	_ = b.PushBack("d")

	var idx []int
	var vals []string
	for i, v := range b.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []string{"b", "c", "d"}, vals)
}

func TestBackward(t *testing.T) {
	b := MustNew[int](150)
	for i := 0; i < 100; i++ {
		_ = b.PushBack(i)
	}

	want := 99
	for i, v := range b.Backward() {
		assert.Equal(t, want, i)
		assert.Equal(t, want, v)
		want--
	}
	assert.Equal(t, -1, want)
}

func TestValuesEarlyBreak(t *testing.T) {
	b := MustNew[int](4)
	pushAll(t, b, 1, 2, 3, 4)

	var got []int
	for v := range b.Values() {
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestAllStopsWhenBufferShrinks(t *testing.T) {
	b := MustNew[int](4)
	pushAll(t, b, 1, 2, 3, 4)

	var got []int
	for _, v := range b.All() {
		got = append(got, v)
		_, _ = b.PopFront()
	}
	// positions 0 and 1 are read, then position 2 is past the shrunken end
	assert.Equal(t, []int{1, 3}, got)
}

func TestEmptyRanges(t *testing.T) {
	b := MustNew[int](0)
	for range b.All() {
		t.Fatal("unexpected element")
	}
	for range b.Backward() {
		t.Fatal("unexpected element")
	}
}
