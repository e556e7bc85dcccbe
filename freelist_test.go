package circbuf

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestFreeListSequential(t *testing.T) {
	const depth = 8
	f := newFreeList[int](depth)

	for i := 0; i < depth*2; i++ {
		ok := f.put(i)
		if i < depth && !ok {
			t.Fatalf("put failed at %d (list unexpectedly full)", i)
		}
		if i >= depth && ok {
			t.Fatalf("put succeeded at %d (list unexpectedly not full)", i)
		}
	}

	for i := 0; i < depth*2; i++ {
		v, ok := f.get()
		if i < depth {
			if !ok {
				t.Fatalf("get failed at %d (list unexpectedly empty)", i)
			}
			if v != i {
				t.Fatalf("expected %d, got %d (FIFO violated)", i, v)
			}
		} else if ok {
			t.Fatalf("get succeeded at %d (list unexpectedly not empty)", i)
		}
	}
}

func TestFreeListRoundsDepth(t *testing.T) {
	for in, want := range map[uint64]uint64{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 64: 64, 65: 128} {
		if got := newFreeList[int](in).depth; got != want {
			t.Fatalf("depth %d: expected %d, got %d", in, want, got)
		}
	}
}

func TestFreeListDropsReference(t *testing.T) {
	f := newFreeList[*int](2)
	x := 1
	f.put(&x)
	if _, ok := f.get(); !ok {
		t.Fatalf("get failed")
	}
	for i := range f.cells {
		if f.cells[i].val != nil {
			t.Fatalf("cell %d still holds a reference", i)
		}
	}
}

// Many putters, many getters: every value must come out exactly once.
func TestFreeListConcurrent(t *testing.T) {
	const (
		depth     = 1 << 8
		N         = 100_000
		putters   = 8
		getters   = 4
		perPutter = N / putters
	)

	f := newFreeList[int](depth)
	seen := make([]int32, N)
	var received atomic.Int64

	var wg sync.WaitGroup
	wg.Add(getters)
	for g := 0; g < getters; g++ {
		go func() {
			defer wg.Done()
			for received.Load() < N {
				v, ok := f.get()
				if !ok {
					runtime.Gosched()
					continue
				}
				if v < 0 || v >= N {
					t.Errorf("getter: out-of-range value %d", v)
					continue
				}
				atomic.AddInt32(&seen[v], 1)
				received.Add(1)
			}
		}()
	}

	var pg sync.WaitGroup
	pg.Add(putters)
	for p := 0; p < putters; p++ {
		go func(from, to int) {
			defer pg.Done()
			for i := from; i < to; i++ {
				for !f.put(i) {
					runtime.Gosched()
				}
			}
		}(p*perPutter, (p+1)*perPutter)
	}

	pg.Wait()
	wg.Wait()

	for i := 0; i < N; i++ {
		if seen[i] != 1 {
			t.Fatalf("value %d seen %d times (expected 1)", i, seen[i])
		}
	}
}

func BenchmarkFreeListPutGet(b *testing.B) {
	f := newFreeList[[]int](64)
	block := make([]int, 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.put(block)
		block, _ = f.get()
	}
}
