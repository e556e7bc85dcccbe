package circbuf

import "fmt"

var (
	ErrEmpty           = fmt.Errorf("buffer is empty")
	ErrFull            = fmt.Errorf("buffer is full")
	ErrOutOfRange      = fmt.Errorf("index out of range")
	ErrInvalidCapacity = fmt.Errorf("capacity must be >= 0")
	ErrAllocation      = fmt.Errorf("allocation failed")
)
