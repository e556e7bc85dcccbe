package circbuf_test

import (
	"errors"
	"fmt"

	"github.com/aradilov/circbuf"
)

func Example() {
	buf := circbuf.MustNew[int](3)
	defer buf.Release()

	for _, v := range []int{144, 239, 420, 1337} {
		if err := buf.PushBack(v); errors.Is(err, circbuf.ErrFull) {
			oldest, _ := buf.PopFront()
			fmt.Println("dropped", oldest)
			_ = buf.PushBack(v)
		}
	}

	for it := buf.Begin(); it.Less(buf.End()); it.Inc() {
		p, _ := it.Deref()
		fmt.Println(*p)
	}
	// Output:
	// dropped 144
	// 239
	// 420
	// 1337
}

func ExampleBuffer_Backward() {
	buf := circbuf.MustNew[string](4)
	for _, s := range []string{"a", "b", "c"} {
		_ = buf.PushBack(s)
	}

	for i, s := range buf.Backward() {
		fmt.Println(i, s)
	}
	// Output:
	// 2 c
	// 1 b
	// 0 a
}
